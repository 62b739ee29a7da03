package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"roombooking/internal/domain"
	"roombooking/internal/repository"
)

const DateLayout = "2006-01-02"

type SlotStatus string

const (
	StatusAvailable SlotStatus = "Available"
	StatusBooked    SlotStatus = "Booked"
)

type SlotAvailability struct {
	Label  string
	Status SlotStatus
}

// DayAvailability is the per-slot grid for one room and day, in catalog
// order.
type DayAvailability []SlotAvailability

// Status returns the status for label and whether the label is present.
func (d DayAvailability) Status(label string) (SlotStatus, bool) {
	for _, s := range d {
		if s.Label == label {
			return s.Status, true
		}
	}
	return "", false
}

// Ordered returns the grid as a label -> status map that iterates and
// encodes in catalog order.
func (d DayAvailability) Ordered() *orderedmap.OrderedMap[string, SlotStatus] {
	om := orderedmap.New[string, SlotStatus](len(d))
	for _, s := range d {
		om.Set(s.Label, s.Status)
	}
	return om
}

// MarshalJSON encodes the grid as an object keyed by slot label, keeping
// catalog order.
func (d DayAvailability) MarshalJSON() ([]byte, error) {
	return d.Ordered().MarshalJSON()
}

// ParseDate reads a YYYY-MM-DD date in the catalog's time zone.
func (s *Service) ParseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, s.catalog.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// DayAvailability classifies every catalog slot on date for roomID.
func (s *Service) DayAvailability(ctx context.Context, roomID uuid.UUID, date string) (DayAvailability, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.AvailabilityOn(ctx, roomID, day)
}

// AvailabilityOn is DayAvailability for an already parsed day.
func (s *Service) AvailabilityOn(ctx context.Context, roomID uuid.UUID, day time.Time) (DayAvailability, error) {
	loc := s.catalog.Location()
	var grid DayAvailability

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Rooms.GetByID(ctx, roomID); err != nil {
			if repository.IsNotFound(err) {
				return ErrRoomNotFound
			}
			return err
		}

		from, to := s.catalog.Span(day)
		bookings, err := tx.Bookings.ListForRoomBetween(ctx, roomID, from, to)
		if err != nil {
			return err
		}

		slots := s.catalog.Slots()
		grid = make(DayAvailability, 0, len(slots))
		for _, sl := range slots {
			start, end := sl.On(day, loc)
			grid = append(grid, SlotAvailability{
				Label:  sl.Label(),
				Status: classify(bookings, start, end),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grid, nil
}

func classify(bookings []domain.Booking, start, end time.Time) SlotStatus {
	for i := range bookings {
		if bookings[i].Overlaps(start, end) {
			return StatusBooked
		}
	}
	return StatusAvailable
}
