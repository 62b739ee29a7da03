package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Buildings *BuildingRepository
	Rooms     *RoomRepository
	Bookings  *BookingRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Buildings: NewBuildingRepository(db),
		Rooms:     NewRoomRepository(db),
		Bookings:  NewBookingRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back when fn returns an
// error, panics, or ctx is cancelled before commit.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
