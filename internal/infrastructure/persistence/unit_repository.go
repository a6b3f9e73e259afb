package persistence

import (
	"context"
	"errors"

	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitRepository implements catalog.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByIDForTenant finds a unit by ID within a tenant
func (r *GormUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Unit, error) {
	var unit catalog.Unit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByIDsForTenant batch-loads units by ID
func (r *GormUnitRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var units []catalog.Unit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindAllForTenant lists the units of a tenant
func (r *GormUnitRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Unit, error) {
	var units []catalog.Unit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save persists a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}
