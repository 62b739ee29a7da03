package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roombooking/internal/database"
	"roombooking/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Connect(dsn, database.Options{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return NewStore(db)
}

func seedRoom(t *testing.T, s *Store) *domain.Room {
	t.Helper()
	ctx := context.Background()
	b := &domain.Building{Name: "HQ-" + uuid.NewString()[:8], Location: "Downtown"}
	require.NoError(t, s.Buildings.Create(ctx, b))
	r := &domain.Room{BuildingID: b.ID, Name: "Blue", Capacity: 4}
	require.NoError(t, s.Rooms.Create(ctx, r))
	return r
}

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func hours(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func TestBookingRepository_Overlaps(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	room := seedRoom(t, s)

	existing := &domain.Booking{RoomID: room.ID, StartTime: hours(10), EndTime: hours(12)}
	require.NoError(t, s.Bookings.Create(ctx, existing))

	cases := []struct {
		name       string
		start, end int
		exclude    uuid.UUID
		want       bool
	}{
		{"inside", 10, 11, uuid.Nil, true},
		{"straddles start", 9, 11, uuid.Nil, true},
		{"straddles end", 11, 13, uuid.Nil, true},
		{"touches start", 8, 10, uuid.Nil, false},
		{"touches end", 12, 14, uuid.Nil, false},
		{"excluded self", 10, 12, existing.ID, false},
		{"excluding another id", 10, 12, uuid.New(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Bookings.Overlaps(ctx, room.ID, hours(tc.start), hours(tc.end), tc.exclude)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	got, err := s.Bookings.Overlaps(ctx, uuid.New(), hours(10), hours(12), uuid.Nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestBookingRepository_ListForRoomBetweenAndPurge(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	room := seedRoom(t, s)

	for _, h := range []int{1, 9, 30} {
		require.NoError(t, s.Bookings.Create(ctx, &domain.Booking{
			RoomID: room.ID, StartTime: hours(h), EndTime: hours(h + 1),
		}))
	}

	got, err := s.Bookings.ListForRoomBetween(ctx, room.ID, hours(8), hours(18))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartTime.Equal(hours(9)))

	n, err := s.Bookings.DeleteEndedBefore(ctx, hours(24))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := s.Bookings.CountByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)
}

func TestBookingRepository_UpdateDeleteMissing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	err := s.Bookings.Update(ctx, &domain.Booking{ID: uuid.New(), RoomID: uuid.New(), StartTime: hours(1), EndTime: hours(2)})
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(s.Bookings.Delete(ctx, uuid.New())))
}

func TestStore_TransactionRollsBack(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	room := seedRoom(t, s)

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Bookings.Create(ctx, &domain.Booking{RoomID: room.ID, StartTime: hours(1), EndTime: hours(2)}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Bookings.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRoomAndBuildingNameTaken(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	room := seedRoom(t, s)

	taken, err := s.Rooms.NameTaken(ctx, room.BuildingID, "Blue", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.Rooms.NameTaken(ctx, room.BuildingID, "Blue", room.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.Rooms.NameTaken(ctx, uuid.New(), "Blue", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, taken)

	b, err := s.Buildings.GetByID(ctx, room.BuildingID)
	require.NoError(t, err)
	taken, err = s.Buildings.NameTaken(ctx, b.Name, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	dup := &domain.Room{BuildingID: room.BuildingID, Name: "Blue", Capacity: 2}
	assert.True(t, IsUniqueViolation(s.Rooms.Create(ctx, dup)))
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsOverlapViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsOverlapViolation(errors.New("23P01")))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
}
