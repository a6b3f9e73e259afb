package brewing

import (
	"context"

	"github.com/google/uuid"
)

// Document types handed to the numberer
const (
	DocTypeBatch      = "BATCH"
	DocTypeWithdrawal = "WITHDRAWAL"
	DocTypeReceipt    = "RECEIPT"
)

// DocumentNumberer hands out sequential document codes per tenant and
// document type. Uniqueness and formatting are its problem, not ours.
type DocumentNumberer interface {
	Next(ctx context.Context, tenantID uuid.UUID, docType string) (string, error)
}
