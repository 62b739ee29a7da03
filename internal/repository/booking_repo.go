package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roombooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).Order("start_time, id").Find(&out).Error
	return out, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Overlaps reports whether roomID has a booking intersecting [start, end)
// other than excludeID (uuid.Nil excludes nothing).
// Two ranges overlap if: start1 < end2 AND end1 > start2
func (r *BookingRepository) Overlaps(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ?", roomID).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC())
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Limit(1).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListForRoomBetween returns the room's bookings intersecting [from, to),
// ordered by start time.
func (r *BookingRepository) ListForRoomBetween(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
		Order("start_time").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ?", roomID).
		Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	return r.db.WithContext(ctx).Create(b).Error
}

// Update overwrites every mutable column of the booking.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"room_id":    b.RoomID,
			"start_time": b.StartTime,
			"end_time":   b.EndTime,
			"purpose":    b.Purpose,
			"updated_at": b.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteEndedBefore removes bookings whose interval ended before cutoff.
func (r *BookingRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("end_time < ?", cutoff.UTC()).
		Delete(&domain.Booking{})
	return res.RowsAffected, res.Error
}
