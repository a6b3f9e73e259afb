package persistence

import (
	"context"
	"errors"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEquipmentRepository implements brewing.EquipmentRepository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByIDForTenant finds equipment by ID within a tenant
func (r *GormEquipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*brewing.Equipment, error) {
	var equipment brewing.Equipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// FindByIDForUpdate loads equipment under a SELECT ... FOR UPDATE row lock.
// Two batches racing for the same unit serialize here; the loser sees the
// winner's claim and fails its own.
func (r *GormEquipmentRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*brewing.Equipment, error) {
	var equipment brewing.Equipment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// FindAllForTenant lists all equipment of a tenant
func (r *GormEquipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]brewing.Equipment, error) {
	var units []brewing.Equipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save persists equipment
func (r *GormEquipmentRepository) Save(ctx context.Context, equipment *brewing.Equipment) error {
	return r.db.WithContext(ctx).Save(equipment).Error
}
