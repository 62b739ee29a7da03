package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking reserves a room for the half-open interval [StartTime, EndTime).
type Booking struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `json:"room_id" gorm:"type:uuid;not null;index:idx_bookings_room_time,priority:1"`
	StartTime time.Time `json:"start_time" gorm:"not null;index:idx_bookings_room_time,priority:2"`
	EndTime   time.Time `json:"end_time" gorm:"not null;check:chk_bookings_interval,end_time > start_time"`
	Purpose   string    `json:"purpose" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `json:"-" gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Overlaps reports whether the booking intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}
