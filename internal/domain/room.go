package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room belongs to exactly one building; its name is unique only within that building.
type Room struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BuildingID uuid.UUID `json:"building_id" gorm:"type:uuid;not null;uniqueIndex:idx_rooms_building_name,priority:1"`
	Name       string    `json:"name" gorm:"not null;uniqueIndex:idx_rooms_building_name,priority:2"`
	Capacity   int       `json:"capacity" gorm:"not null;check:chk_rooms_capacity,capacity > 0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Building *Building `json:"-" gorm:"foreignKey:BuildingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
