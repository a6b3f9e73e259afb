package brewing

import (
	"context"
	"errors"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BottlingService records how a batch's tank volume was split into packaged
// and bulk output. Saves replace all rows of the batch and recompute the
// packaging loss; once finished goods were stocked the data is frozen.
type BottlingService struct {
	txScope      TransactionScope
	batchRepo    brewing.BatchRepository
	bottlingRepo brewing.BottlingItemRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

func NewBottlingService(
	txScope TransactionScope,
	batchRepo brewing.BatchRepository,
	bottlingRepo brewing.BottlingItemRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *BottlingService {
	return &BottlingService{
		txScope:      txScope,
		batchRepo:    batchRepo,
		bottlingRepo: bottlingRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// SaveBottling replaces the bottling rows of a batch and recomputes its
// packaging loss as tank volume minus the liters accounted for. Rejected
// with RECEIPT_EXISTS once a production receipt was created for the batch.
func (s *BottlingService) SaveBottling(ctx context.Context, tenantID, batchID uuid.UUID, req SaveBottlingRequest) (*BottlingResponse, error) {
	var batch *brewing.Batch
	var items []brewing.BottlingItem
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}

		switch _, err := repos.IssueRepo().FindActiveReceiptForBatch(ctx, tenantID, batchID); {
		case err == nil:
			return ErrReceiptExists
		case !errors.Is(err, shared.ErrNotFound):
			s.logger.Error("check existing receipt failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("batch_id", batchID.String()),
				zap.Error(err))
			return ErrReceiptFailed
		}

		items = make([]brewing.BottlingItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			// Only lines with a positive quantity are stored.
			if line.Quantity.LessThanOrEqual(decimal.Zero) {
				continue
			}
			item, err := s.buildLine(ctx, repos, tenantID, batchID, line)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		if err := repos.BottlingRepo().ReplaceForBatch(ctx, tenantID, batchID, items); err != nil {
			return err
		}

		batch.RecordBottling(req.BottledDate, brewing.TotalBaseUnits(items))
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, batch)
	s.logger.Info("bottling saved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batchID.String()),
		zap.Int("lines", len(items)))

	return s.toResponse(batch, items), nil
}

// buildLine validates one request row against the catalog and constructs the
// bottling row. Packaged rows take their fill size from the item; the item
// must declare one. Bulk rows count liters directly.
func (s *BottlingService) buildLine(ctx context.Context, repos TransactionalRepositories, tenantID, batchID uuid.UUID, line BottlingLineRequest) (*brewing.BottlingItem, error) {
	kind := brewing.BottlingKind(line.Kind)

	item, err := repos.ItemRepo().FindByIDForTenant(ctx, tenantID, line.ItemID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	unitSize := decimal.NewFromInt(1)
	if kind == brewing.BottlingKindPackaged {
		unitSize = item.BaseItemQuantity
	}
	if line.UnitSize != nil {
		unitSize = *line.UnitSize
	}

	return brewing.NewBottlingItem(tenantID, batchID, line.ItemID, kind, line.Quantity, unitSize)
}

// GetBottling returns the stored bottling split of a batch
func (s *BottlingService) GetBottling(ctx context.Context, tenantID, batchID uuid.UUID) (*BottlingResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, ErrBatchNotFound
	}
	items, err := s.bottlingRepo.FindByBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(batch, items), nil
}

func (s *BottlingService) toResponse(batch *brewing.Batch, items []brewing.BottlingItem) *BottlingResponse {
	out := make([]BottlingItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BottlingItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			Kind:      string(it.Kind),
			Quantity:  it.Quantity,
			BaseUnits: it.BaseUnits,
		})
	}
	return &BottlingResponse{
		BatchID:        batch.ID,
		Items:          out,
		TotalBaseUnits: brewing.TotalBaseUnits(items),
		PackagingLossL: batch.PackagingLossL,
		BottledDate:    batch.BottledDate,
	}
}

func (s *BottlingService) publish(ctx context.Context, batch *brewing.Batch) {
	if s.publisher == nil {
		return
	}
	for _, event := range batch.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish event failed",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	batch.ClearDomainEvents()
}
