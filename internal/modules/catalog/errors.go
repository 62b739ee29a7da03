package catalog

import (
	"fmt"

	"roombooking/internal/domain"
)

var (
	ErrBuildingNotFound      = fmt.Errorf("building %w", domain.ErrNotFound)
	ErrRoomNotFound          = fmt.Errorf("room %w", domain.ErrNotFound)
	ErrDuplicateBuildingName = fmt.Errorf("%w: a building with this name already exists", domain.ErrDuplicateName)
	ErrDuplicateRoomName     = fmt.Errorf("%w: the building already has a room with this name", domain.ErrDuplicateName)
	ErrBuildingHasRooms      = fmt.Errorf("%w: building still has rooms", domain.ErrInUse)
	ErrRoomHasBookings       = fmt.Errorf("%w: room still has bookings", domain.ErrInUse)
	ErrInvalidCapacity       = fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	ErrBlankName             = fmt.Errorf("%w: name must not be blank", domain.ErrValidation)
)
