package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roombooking/internal/domain"
)

type BuildingRepository struct {
	db *gorm.DB
}

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) List(ctx context.Context) ([]domain.Building, error) {
	var out []domain.Building
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *BuildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	var b domain.Building
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// LockByID is GetByID with a row lock held until the transaction ends.
func (r *BuildingRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	var b domain.Building
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// NameTaken reports whether another building already uses name.
// excludeID may be uuid.Nil.
func (r *BuildingRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Building{}).Where("name = ?", name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *BuildingRepository) Create(ctx context.Context, b *domain.Building) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BuildingRepository) Update(ctx context.Context, b *domain.Building) error {
	return r.db.WithContext(ctx).
		Model(&domain.Building{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"name":       b.Name,
			"location":   b.Location,
			"updated_at": b.UpdatedAt,
		}).Error
}

func (r *BuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Building{}).Error
}
