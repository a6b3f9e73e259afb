package stock

import (
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStockIssue = "StockIssue"

// Event type constants
const (
	EventTypeStockIssueConfirmed = "StockIssueConfirmed"
)

// StockIssueConfirmedEvent is raised when a stock document is confirmed and
// its movements become real.
type StockIssueConfirmedEvent struct {
	shared.BaseDomainEvent
	IssueID   uuid.UUID       `json:"issue_id"`
	Code      string          `json:"code"`
	Type      MovementType    `json:"type"`
	Purpose   MovementPurpose `json:"purpose"`
	BatchID   *uuid.UUID      `json:"batch_id,omitempty"`
	TotalCost decimal.Decimal `json:"total_cost"`
	LineCount int             `json:"line_count"`
}

// NewStockIssueConfirmedEvent creates a new StockIssueConfirmedEvent
func NewStockIssueConfirmedEvent(issue *StockIssue) *StockIssueConfirmedEvent {
	return &StockIssueConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIssueConfirmed, AggregateTypeStockIssue, issue.ID, issue.TenantID),
		IssueID:         issue.ID,
		Code:            issue.Code,
		Type:            issue.Type,
		Purpose:         issue.Purpose,
		BatchID:         issue.BatchID,
		TotalCost:       issue.TotalCost,
		LineCount:       len(issue.Lines),
	}
}

// EventType returns the event type name
func (e *StockIssueConfirmedEvent) EventType() string {
	return EventTypeStockIssueConfirmed
}
