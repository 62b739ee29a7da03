package booking

import (
	"fmt"

	"roombooking/internal/domain"
)

var (
	ErrRoomNotFound      = fmt.Errorf("room %w", domain.ErrNotFound)
	ErrBookingNotFound   = fmt.Errorf("booking %w", domain.ErrNotFound)
	ErrRoomAlreadyBooked = fmt.Errorf("%w: room is already booked for the requested time", domain.ErrConflict)
	ErrInvalidSlot       = fmt.Errorf("%w: requested interval does not match a catalog slot", domain.ErrInvalidSlot)
	ErrInvalidInterval   = fmt.Errorf("%w: start time must be before end time", domain.ErrValidation)
	ErrInvalidDate       = fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
)
