package brewing

import "github.com/brewhouse/backend/internal/domain/shared"

// Tagged errors returned by production operations. These are expected
// outcomes callers branch on; unexpected repository failures are logged and
// collapsed into the generic *_FAILED errors instead of leaking internals.
var (
	ErrBatchNotFound        = shared.NewDomainError("BATCH_NOT_FOUND", "Batch not found")
	ErrNoRecipe             = shared.NewDomainError("NO_RECIPE", "Batch has no recipe")
	ErrNoIngredients        = shared.NewDomainError("NO_INGREDIENTS", "Recipe has no ingredient lines")
	ErrAllIssued            = shared.NewDomainError("ALL_ISSUED", "All ingredients have already been issued")
	ErrNoWarehouse          = shared.NewDomainError("NO_WAREHOUSE", "No active warehouse configured")
	ErrNoProductionItem     = shared.NewDomainError("NO_PRODUCTION_ITEM", "Batch has no production item")
	ErrNoBottlingData       = shared.NewDomainError("NO_BOTTLING_DATA", "Batch has no bottling data")
	ErrReceiptAlreadyExists = shared.NewDomainError("RECEIPT_ALREADY_EXISTS", "A production receipt already exists for this batch")
	ErrReceiptExists        = shared.NewDomainError("RECEIPT_EXISTS", "Bottling data is frozen: finished goods were already stocked")
	ErrReceiptFailed        = shared.NewDomainError("RECEIPT_FAILED", "Creating the production receipt failed")
	ErrIssueFailed          = shared.NewDomainError("ISSUE_FAILED", "Creating the material withdrawal failed")
)
