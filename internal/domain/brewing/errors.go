package brewing

import (
	"fmt"

	"github.com/brewhouse/backend/internal/domain/shared"
)

// Domain errors raised by batch lifecycle and equipment handling
var (
	ErrNoteRequired   = shared.NewDomainError("NOTE_REQUIRED", "Dumping a batch requires a note")
	ErrEquipmentInUse = shared.NewDomainError("EQUIPMENT_IN_USE", "Equipment is already claimed by another batch")
)

// ErrInvalidTransition builds the error for a disallowed status move
func ErrInvalidTransition(from, to BatchStatus) *shared.DomainError {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition batch from %s to %s", from, to))
}
