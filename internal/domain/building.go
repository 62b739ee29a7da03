package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Building owns zero or more rooms. Name is unique across all buildings.
type Building struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_buildings_name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Building) TableName() string {
	return "buildings"
}

func (b *Building) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
