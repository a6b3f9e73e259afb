package brewing

import (
	"strings"
	"time"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BatchNote is an append-only audit note attached to a batch. Lifecycle
// transitions append one whenever the caller supplied a note, whatever the
// resulting status.
type BatchNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    BatchStatus `gorm:"size:20;not null"` // status the batch held after the note was taken
	Note      string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (BatchNote) TableName() string {
	return "batch_notes"
}

// NewBatchNote creates a new audit note
func NewBatchNote(tenantID, batchID uuid.UUID, status BatchStatus, note string) (*BatchNote, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note cannot be empty")
	}

	return &BatchNote{
		ID:        uuid.New(),
		TenantID:  tenantID,
		BatchID:   batchID,
		Status:    status,
		Note:      note,
		CreatedAt: time.Now(),
	}, nil
}
