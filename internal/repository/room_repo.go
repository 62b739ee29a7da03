package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roombooking/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns rooms ordered by name; buildingID filters when not uuid.Nil.
func (r *RoomRepository) List(ctx context.Context, buildingID uuid.UUID) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Order("name")
	if buildingID != uuid.Nil {
		q = q.Where("building_id = ?", buildingID)
	}
	var out []domain.Room
	err := q.Find(&out).Error
	return out, err
}

func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// LockByID reads the room with SELECT ... FOR UPDATE so that concurrent
// booking transactions for the same room queue behind each other.
// SQLite ignores the locking clause.
func (r *RoomRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// NameTaken reports whether buildingID already has another room called name.
func (r *RoomRepository) NameTaken(ctx context.Context, buildingID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("building_id = ? AND name = ?", buildingID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RoomRepository) CountByBuilding(ctx context.Context, buildingID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("building_id = ?", buildingID).
		Count(&cnt).Error
	return cnt, err
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]any{
			"building_id": room.BuildingID,
			"name":        room.Name,
			"capacity":    room.Capacity,
			"updated_at":  room.UpdatedAt,
		}).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Room{}).Error
}
