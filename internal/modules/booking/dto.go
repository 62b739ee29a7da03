package booking

import (
	"time"

	"github.com/google/uuid"
)

// BookingInput carries the mutable fields of a booking. It is used for both
// create and update; an update overwrites every field.
type BookingInput struct {
	RoomID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Purpose   string
}

type BookingRequest struct {
	RoomID    string    `json:"room_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Purpose   string    `json:"purpose"`
}

func (r BookingRequest) Input() BookingInput {
	return BookingInput{
		RoomID:    uuid.MustParse(r.RoomID),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Purpose:   r.Purpose,
	}
}
