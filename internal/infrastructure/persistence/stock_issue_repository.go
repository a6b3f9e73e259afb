package persistence

import (
	"context"
	"errors"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockIssueRepository implements stock.StockIssueRepository using GORM
type GormStockIssueRepository struct {
	db *gorm.DB
}

// NewGormStockIssueRepository creates a new GormStockIssueRepository
func NewGormStockIssueRepository(db *gorm.DB) *GormStockIssueRepository {
	return &GormStockIssueRepository{db: db}
}

// FindByIDForTenant loads a stock document with its lines in line order
func (r *GormStockIssueRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*stock.StockIssue, error) {
	var issue stock.StockIssue
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// FindAllForTenant lists stock documents for a tenant
func (r *GormStockIssueRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]stock.StockIssue, error) {
	var issues []stock.StockIssue
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ?", tenantID).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// FindActiveReceiptForBatch returns the non-cancelled PRODUCTION_IN document
// of a batch. At most one can exist; the partial unique index guarantees it.
func (r *GormStockIssueRepository) FindActiveReceiptForBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*stock.StockIssue, error) {
	var issue stock.StockIssue
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Where("tenant_id = ? AND batch_id = ? AND purpose = ? AND status <> ?",
			tenantID, batchID, stock.MovementPurposeProductionIn, stock.IssueStatusCancelled).
		First(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// FindConfirmedIssueLinesForBatch returns the lines of every confirmed
// PRODUCTION_OUT document of a batch
func (r *GormStockIssueRepository) FindConfirmedIssueLinesForBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]stock.StockIssueLine, error) {
	var lines []stock.StockIssueLine
	if err := r.db.WithContext(ctx).
		Joins("JOIN stock_issues ON stock_issues.id = stock_issue_lines.issue_id").
		Where("stock_issues.tenant_id = ? AND stock_issues.batch_id = ? AND stock_issues.purpose = ? AND stock_issues.status = ?",
			tenantID, batchID, stock.MovementPurposeProductionOut, stock.IssueStatusConfirmed).
		Order("stock_issue_lines.line_no ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save persists the document and swaps its stored lines for the aggregate's
// current ones. Line replacement keeps the stored set exactly in sync with
// ReplaceLines and AddLine semantics.
func (r *GormStockIssueRepository) Save(ctx context.Context, issue *stock.StockIssue) error {
	if err := r.db.WithContext(ctx).Omit("Lines").Save(issue).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("issue_id = ?", issue.ID).
		Delete(&stock.StockIssueLine{}).Error; err != nil {
		return err
	}
	if len(issue.Lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&issue.Lines).Error
}
