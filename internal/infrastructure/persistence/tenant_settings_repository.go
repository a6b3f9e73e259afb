package persistence

import (
	"context"
	"errors"

	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantSettingsRepository implements catalog.TenantSettingsRepository using GORM
type GormTenantSettingsRepository struct {
	db *gorm.DB
}

// NewGormTenantSettingsRepository creates a new GormTenantSettingsRepository
func NewGormTenantSettingsRepository(db *gorm.DB) *GormTenantSettingsRepository {
	return &GormTenantSettingsRepository{db: db}
}

// FindForTenant returns the tenant's settings row. Tenants that never saved
// settings get the defaults, not an error.
func (r *GormTenantSettingsRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID) (*catalog.TenantSettings, error) {
	var settings catalog.TenantSettings
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.NewTenantSettings(tenantID), nil
		}
		return nil, err
	}
	return &settings, nil
}

// Save persists tenant settings
func (r *GormTenantSettingsRepository) Save(ctx context.Context, settings *catalog.TenantSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
