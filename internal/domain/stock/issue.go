package stock

import (
	"time"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType says which way a stock document moves goods
type MovementType string

const (
	MovementTypeIssue   MovementType = "ISSUE"   // goods leave the warehouse
	MovementTypeReceipt MovementType = "RECEIPT" // goods enter the warehouse
)

// MovementPurpose says why a stock document exists
type MovementPurpose string

const (
	// MovementPurposeProductionOut withdraws raw ingredients against a
	// batch's recipe.
	MovementPurposeProductionOut MovementPurpose = "PRODUCTION_OUT"
	// MovementPurposeProductionIn stocks finished goods from a batch's
	// bottling data.
	MovementPurposeProductionIn MovementPurpose = "PRODUCTION_IN"
)

// IssueStatus is the document lifecycle
type IssueStatus string

const (
	IssueStatusDraft     IssueStatus = "DRAFT"
	IssueStatusConfirmed IssueStatus = "CONFIRMED"
	IssueStatusCancelled IssueStatus = "CANCELLED"
)

// StockIssue is a stock document aggregate: a material withdrawal for a batch
// (ISSUE/PRODUCTION_OUT) or a goods receipt of its finished output
// (RECEIPT/PRODUCTION_IN). At most one non-cancelled PRODUCTION_IN document
// may exist per batch; the schema enforces this with a partial unique index.
type StockIssue struct {
	shared.TenantAggregateRoot
	Code        string          `gorm:"size:50;not null;uniqueIndex:idx_stock_issue_tenant_code,priority:2"`
	Type        MovementType    `gorm:"size:10;not null"`
	Purpose     MovementPurpose `gorm:"size:20;not null"`
	Status      IssueStatus     `gorm:"size:10;not null;index"`
	BatchID     *uuid.UUID      `gorm:"type:uuid;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ConfirmedAt *time.Time
	CancelledAt *time.Time

	Lines []StockIssueLine `gorm:"foreignKey:IssueID;references:ID"`
}

// TableName returns the table name for GORM
func (StockIssue) TableName() string {
	return "stock_issues"
}

// StockIssueLine is one item line of a stock document. RecipeItemID ties a
// withdrawal line back to the recipe ingredient line it fulfills, which is
// what makes partial-fulfillment accounting possible. Lot number and expiry
// date are set on receipt lines only.
type StockIssueLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	IssueID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo       int             `gorm:"not null"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null"`
	RecipeItemID *uuid.UUID      `gorm:"type:uuid;index"`
	RequestedQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IssuedQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingQty decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LotNumber    string          `gorm:"size:50"`
	ExpiryDate   *time.Time
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (StockIssueLine) TableName() string {
	return "stock_issue_lines"
}

// NewStockIssue creates a new draft stock document
func NewStockIssue(tenantID uuid.UUID, code string, movementType MovementType, purpose MovementPurpose, warehouseID uuid.UUID, batchID *uuid.UUID) (*StockIssue, error) {
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_CODE", "Document code must be 1-50 characters")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &StockIssue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Type:                movementType,
		Purpose:             purpose,
		Status:              IssueStatusDraft,
		BatchID:             batchID,
		WarehouseID:         warehouseID,
		TotalCost:           decimal.Zero,
	}, nil
}

// IsDraft returns true while the document can still be edited
func (s *StockIssue) IsDraft() bool {
	return s.Status == IssueStatusDraft
}

// AddLine appends a line to a draft document. Line numbers are assigned in
// append order, starting at 1.
func (s *StockIssue) AddLine(itemID uuid.UUID, recipeItemID *uuid.UUID, requestedQty, unitPrice decimal.Decimal) (*StockIssueLine, error) {
	if !s.IsDraft() {
		return nil, ErrNotDraft
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if requestedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	line := StockIssueLine{
		ID:           uuid.New(),
		IssueID:      s.ID,
		LineNo:       len(s.Lines) + 1,
		ItemID:       itemID,
		RecipeItemID: recipeItemID,
		RequestedQty: requestedQty,
		IssuedQty:    decimal.Zero,
		RemainingQty: requestedQty,
		UnitPrice:    unitPrice,
		TotalCost:    decimal.Zero,
		CreatedAt:    time.Now(),
	}
	s.Lines = append(s.Lines, line)
	s.Touch()
	return &s.Lines[len(s.Lines)-1], nil
}

// ReplaceLines swaps all lines of a draft document for new ones, renumbering
// from 1. Used to re-sync an in-progress withdrawal after the ledger moved.
func (s *StockIssue) ReplaceLines(lines []StockIssueLine) error {
	if !s.IsDraft() {
		return ErrNotDraft
	}
	for i := range lines {
		lines[i].IssueID = s.ID
		lines[i].LineNo = i + 1
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
	}
	s.Lines = lines
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RelinkBatch points the document at a batch
func (s *StockIssue) RelinkBatch(batchID uuid.UUID) error {
	if !s.IsDraft() {
		return ErrNotDraft
	}
	s.BatchID = &batchID
	s.Touch()
	return nil
}

// Confirm finalizes the document: every line's requested quantity becomes its
// issued quantity and the document total is recomputed. The caller is
// responsible for writing the matching stock movements in the same
// transaction.
func (s *StockIssue) Confirm() error {
	if !s.IsDraft() {
		return ErrNotDraft
	}
	if len(s.Lines) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Cannot confirm a document without lines")
	}

	now := time.Now()
	total := decimal.Zero
	for i := range s.Lines {
		line := &s.Lines[i]
		line.IssuedQty = line.RequestedQty
		line.RemainingQty = decimal.Zero
		line.TotalCost = line.IssuedQty.Mul(line.UnitPrice)
		total = total.Add(line.TotalCost)
	}
	s.TotalCost = total
	s.Status = IssueStatusConfirmed
	s.ConfirmedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewStockIssueConfirmedEvent(s))
	return nil
}

// Cancel voids a draft document. Confirmed documents are immutable history
// and cannot be cancelled here.
func (s *StockIssue) Cancel() error {
	if !s.IsDraft() {
		return ErrNotDraft
	}
	now := time.Now()
	s.Status = IssueStatusCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}
