package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roombooking/internal/domain"
	"roombooking/internal/pkg/keylock"
	"roombooking/internal/repository"
	"roombooking/internal/slot"
)

type Service struct {
	store    *repository.Store
	catalog  *slot.Catalog
	locks    *keylock.Locker
	notifier Notifier
	log      *zap.Logger

	slotValidation bool
}

type Option func(*Service)

// WithNotifier registers a receiver for committed booking changes.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithSlotValidation toggles the catalog membership check on create and
// update. It is on by default.
func WithSlotValidation(enabled bool) Option {
	return func(s *Service) { s.slotValidation = enabled }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(store *repository.Store, catalog *slot.Catalog, opts ...Option) *Service {
	s := &Service{
		store:          store,
		catalog:        catalog,
		locks:          keylock.New(),
		notifier:       nopNotifier{},
		log:            zap.NewNop(),
		slotValidation: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.slotValidation {
		s.log.Warn("booking slot validation is disabled; any interval is accepted")
	}
	return s
}

func (s *Service) Catalog() *slot.Catalog {
	return s.catalog
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.store.Bookings.List(ctx)
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.store.Bookings.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// CreateBooking reserves in.RoomID for [in.StartTime, in.EndTime).
func (s *Service) CreateBooking(ctx context.Context, in BookingInput) (*domain.Booking, error) {
	if err := s.checkShape(in); err != nil {
		s.rejected("create", err, zap.String("room_id", in.RoomID.String()))
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, in.RoomID.String())
	if err != nil {
		s.rejected("create", err, zap.String("room_id", in.RoomID.String()))
		return nil, err
	}
	defer unlock()

	var created *domain.Booking
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := lockRoom(ctx, tx, in.RoomID); err != nil {
			return err
		}
		if err := s.checkSlot(in); err != nil {
			return err
		}
		if err := checkFree(ctx, tx, in, uuid.Nil); err != nil {
			return err
		}

		b := &domain.Booking{
			RoomID:    in.RoomID,
			StartTime: in.StartTime.UTC(),
			EndTime:   in.EndTime.UTC(),
			Purpose:   in.Purpose,
		}
		if err := tx.Bookings.Create(ctx, b); err != nil {
			return mapWriteError(err)
		}
		created = b
		return nil
	})
	if err != nil {
		s.rejected("create", err,
			zap.String("room_id", in.RoomID.String()),
			zap.Time("start_time", in.StartTime),
			zap.Time("end_time", in.EndTime),
		)
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", created.ID.String()),
		zap.String("room_id", created.RoomID.String()),
		zap.Time("start_time", created.StartTime),
		zap.Time("end_time", created.EndTime),
	)
	s.notifier.BookingCreated(ctx, created)
	return created, nil
}

// UpdateBooking overwrites every mutable field of booking id. The booking
// may move to another room; conflicts are checked against the target room
// while ignoring the booking itself.
func (s *Service) UpdateBooking(ctx context.Context, id uuid.UUID, in BookingInput) (*domain.Booking, error) {
	if err := s.checkShape(in); err != nil {
		s.rejected("update", err, zap.String("booking_id", id.String()))
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, in.RoomID.String())
	if err != nil {
		s.rejected("update", err, zap.String("booking_id", id.String()))
		return nil, err
	}
	defer unlock()

	var before, after *domain.Booking
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Bookings.GetByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if err := lockRoom(ctx, tx, in.RoomID); err != nil {
			return err
		}
		if err := s.checkSlot(in); err != nil {
			return err
		}
		if err := checkFree(ctx, tx, in, id); err != nil {
			return err
		}

		updated := *current
		updated.Room = nil
		updated.RoomID = in.RoomID
		updated.StartTime = in.StartTime.UTC()
		updated.EndTime = in.EndTime.UTC()
		updated.Purpose = in.Purpose
		updated.UpdatedAt = time.Now().UTC()
		if err := tx.Bookings.Update(ctx, &updated); err != nil {
			if repository.IsNotFound(err) {
				return ErrBookingNotFound
			}
			return mapWriteError(err)
		}

		before, after = current, &updated
		return nil
	})
	if err != nil {
		s.rejected("update", err,
			zap.String("booking_id", id.String()),
			zap.String("room_id", in.RoomID.String()),
			zap.Time("start_time", in.StartTime),
			zap.Time("end_time", in.EndTime),
		)
		return nil, err
	}

	s.log.Info("booking updated",
		zap.String("booking_id", after.ID.String()),
		zap.String("room_id", after.RoomID.String()),
		zap.String("previous_room_id", before.RoomID.String()),
	)
	s.notifier.BookingUpdated(ctx, before, after)
	return after, nil
}

// DeleteBooking removes booking id and returns the removed record.
func (s *Service) DeleteBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var deleted *domain.Booking
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrBookingNotFound
			}
			return err
		}
		if err := tx.Bookings.Delete(ctx, id); err != nil {
			if repository.IsNotFound(err) {
				return ErrBookingNotFound
			}
			return err
		}
		deleted = b
		return nil
	})
	if err != nil {
		s.rejected("delete", err, zap.String("booking_id", id.String()))
		return nil, err
	}

	s.log.Info("booking deleted",
		zap.String("booking_id", deleted.ID.String()),
		zap.String("room_id", deleted.RoomID.String()),
	)
	s.notifier.BookingDeleted(ctx, deleted)
	return deleted, nil
}

// rejected records a mutation that did not commit.
func (s *Service) rejected(action string, err error, fields ...zap.Field) {
	s.log.Debug("booking "+action+" rejected", append(fields, zap.Error(err))...)
}

// checkShape rejects empty and inverted intervals before any store access.
func (s *Service) checkShape(in BookingInput) error {
	if in.StartTime.IsZero() || in.EndTime.IsZero() || !domain.ValidInterval(in.StartTime, in.EndTime) {
		return ErrInvalidInterval
	}
	return nil
}

func (s *Service) checkSlot(in BookingInput) error {
	if !s.slotValidation {
		return nil
	}
	if _, ok := s.catalog.Match(in.StartTime, in.EndTime); !ok {
		return ErrInvalidSlot
	}
	return nil
}

// lockRoom verifies the room exists and holds its row lock until the
// transaction ends.
func lockRoom(ctx context.Context, tx *repository.Store, roomID uuid.UUID) error {
	if _, err := tx.Rooms.LockByID(ctx, roomID); err != nil {
		if repository.IsNotFound(err) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

func checkFree(ctx context.Context, tx *repository.Store, in BookingInput, exclude uuid.UUID) error {
	busy, err := tx.Bookings.Overlaps(ctx, in.RoomID, in.StartTime, in.EndTime, exclude)
	if err != nil {
		return err
	}
	if busy {
		return ErrRoomAlreadyBooked
	}
	return nil
}

// mapWriteError translates constraint violations raised by the final
// statement. The exclusion constraint only exists on PostgreSQL.
func mapWriteError(err error) error {
	switch {
	case repository.IsOverlapViolation(err):
		return ErrRoomAlreadyBooked
	case repository.IsForeignKeyViolation(err):
		return ErrRoomNotFound
	default:
		return err
	}
}
