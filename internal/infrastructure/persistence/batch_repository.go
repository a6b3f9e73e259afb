package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements brewing.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByIDForTenant finds a batch by ID within a tenant
func (r *GormBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*brewing.Batch, error) {
	var batch brewing.Batch
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAllForTenant lists batches for a tenant
func (r *GormBatchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]brewing.Batch, error) {
	var batches []brewing.Batch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&brewing.Batch{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// CountForTenant counts batches matching the filter
func (r *GormBatchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&brewing.Batch{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *brewing.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter)
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, BatchSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	search := strings.TrimSpace(filter.Search)
	if search == "" {
		return query
	}
	return query.Where("batch_number ILIKE ? OR lot_number ILIKE ?", "%"+search+"%", "%"+search+"%")
}
