package stock

import "github.com/brewhouse/backend/internal/domain/shared"

// Domain errors raised by stock document handling
var (
	// ErrNotDraft is returned when an operation requires a draft document
	ErrNotDraft = shared.NewDomainError("NOT_DRAFT", "Stock document is not a draft")
)
