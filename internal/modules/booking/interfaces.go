package booking

import (
	"context"

	"roombooking/internal/domain"
)

// Notifier receives committed booking changes. Implementations must not
// block for long; they run on the request goroutine after commit.
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	// BookingUpdated gets the record as it was before and after the update.
	// The room may differ between the two.
	BookingUpdated(ctx context.Context, before, after *domain.Booking)
	BookingDeleted(ctx context.Context, b *domain.Booking)
}

type nopNotifier struct{}

func (nopNotifier) BookingCreated(context.Context, *domain.Booking)                  {}
func (nopNotifier) BookingUpdated(context.Context, *domain.Booking, *domain.Booking) {}
func (nopNotifier) BookingDeleted(context.Context, *domain.Booking)                  {}
