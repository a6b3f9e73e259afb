package persistence

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchNoteRepository implements brewing.BatchNoteRepository using GORM
type GormBatchNoteRepository struct {
	db *gorm.DB
}

// NewGormBatchNoteRepository creates a new GormBatchNoteRepository
func NewGormBatchNoteRepository(db *gorm.DB) *GormBatchNoteRepository {
	return &GormBatchNoteRepository{db: db}
}

// Append inserts a note. Notes are never updated or deleted.
func (r *GormBatchNoteRepository) Append(ctx context.Context, note *brewing.BatchNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindByBatch lists the notes of a batch, newest first
func (r *GormBatchNoteRepository) FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]brewing.BatchNote, error) {
	var notes []brewing.BatchNote
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
