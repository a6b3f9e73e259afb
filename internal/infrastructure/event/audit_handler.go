package event

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// ProductionAuditHandler writes a structured audit line for every production
// lifecycle event. The zap output is the audit trail until a dedicated sink
// is needed.
type ProductionAuditHandler struct {
	logger *zap.Logger
}

// NewProductionAuditHandler creates a new ProductionAuditHandler
func NewProductionAuditHandler(logger *zap.Logger) *ProductionAuditHandler {
	return &ProductionAuditHandler{logger: logger}
}

// EventTypes returns the lifecycle events this handler audits
func (h *ProductionAuditHandler) EventTypes() []string {
	return []string{
		brewing.EventTypeBatchPlanned,
		brewing.EventTypeBatchStatusChanged,
		brewing.EventTypeBottlingRecorded,
		brewing.EventTypeEquipmentClaimed,
		brewing.EventTypeEquipmentReleased,
		stock.EventTypeStockIssueConfirmed,
	}
}

// Handle logs the event with its type-specific fields
func (h *ProductionAuditHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.String("tenant_id", evt.TenantID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	}

	switch e := evt.(type) {
	case *brewing.BatchPlannedEvent:
		fields = append(fields, zap.String("batch_number", e.BatchNumber))
	case *brewing.BatchStatusChangedEvent:
		fields = append(fields,
			zap.String("batch_number", e.BatchNumber),
			zap.String("from_status", string(e.FromStatus)),
			zap.String("to_status", string(e.ToStatus)),
		)
	case *brewing.BottlingRecordedEvent:
		fields = append(fields, zap.String("total_base_units", e.TotalBaseUnits.String()))
		if e.PackagingLossL != nil {
			fields = append(fields, zap.String("packaging_loss_l", e.PackagingLossL.String()))
		}
	case *brewing.EquipmentClaimedEvent:
		fields = append(fields, zap.String("batch_id", e.BatchID.String()))
	case *stock.StockIssueConfirmedEvent:
		fields = append(fields,
			zap.String("code", e.Code),
			zap.String("purpose", string(e.Purpose)),
			zap.String("total_cost", e.TotalCost.String()),
		)
	}

	h.logger.Info(evt.EventType(), fields...)
	return nil
}

var _ shared.EventHandler = (*ProductionAuditHandler)(nil)
