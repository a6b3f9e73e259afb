package brewing

import (
	"context"
	"errors"
	"time"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptService turns a batch's bottling data into a confirmed goods
// receipt: one priced line per bottling row, matching IN movements and
// on-hand increases, all in a single transaction. A batch gets at most one
// non-cancelled receipt; repeat calls fail with RECEIPT_ALREADY_EXISTS.
type ReceiptService struct {
	txScope   TransactionScope
	issueRepo stock.StockIssueRepository
	numberer  DocumentNumberer
	pricing   *PricingResolver
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func NewReceiptService(
	txScope TransactionScope,
	issueRepo stock.StockIssueRepository,
	numberer DocumentNumberer,
	pricing *PricingResolver,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		txScope:   txScope,
		issueRepo: issueRepo,
		numberer:  numberer,
		pricing:   pricing,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateReceipt stocks the finished goods of a batch. Preconditions, in
// order: the batch exists, no non-cancelled receipt exists yet, the batch
// has a production item and at least one bottling row, and an operational
// warehouse is configured. Everything after the preconditions runs in one
// transaction and either lands completely or not at all.
func (s *ReceiptService) CreateReceipt(ctx context.Context, tenantID, batchID uuid.UUID) (*CreateReceiptResult, error) {
	code, err := s.numberer.Next(ctx, tenantID, DocTypeReceipt)
	if err != nil {
		s.logger.Error("generate receipt code failed", zap.Error(err))
		return nil, ErrReceiptFailed
	}

	var receipt *stock.StockIssue
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}

		switch _, err := repos.IssueRepo().FindActiveReceiptForBatch(ctx, tenantID, batchID); {
		case err == nil:
			return ErrReceiptAlreadyExists
		case !errors.Is(err, shared.ErrNotFound):
			return s.fail("check existing receipt", tenantID, batchID, err)
		}

		if !batch.HasProductionItem() {
			return ErrNoProductionItem
		}

		rows, err := repos.BottlingRepo().FindByBatch(ctx, tenantID, batchID)
		if err != nil {
			return s.fail("load bottling rows", tenantID, batchID, err)
		}
		if len(rows) == 0 {
			return ErrNoBottlingData
		}

		warehouse, err := repos.WarehouseRepo().FindOperational(ctx, tenantID)
		if err != nil {
			return ErrNoWarehouse
		}

		settings, err := repos.SettingsRepo().FindForTenant(ctx, tenantID)
		if err != nil {
			return s.fail("load tenant settings", tenantID, batchID, err)
		}

		productionItem, err := repos.ItemRepo().FindByIDForTenant(ctx, tenantID, *batch.ItemID)
		if err != nil {
			return ErrNoProductionItem
		}

		var recipe *brewing.RecipeSnapshot
		if batch.HasRecipe() {
			recipe, err = repos.RecipeRepo().FindByIDForTenant(ctx, tenantID, *batch.RecipeID)
			if err != nil {
				recipe = nil
			}
		}

		productionPrice := s.pricing.UnitPrice(settings.ProductionPricingMode, productionItem, recipe)
		expiryDate := expiryFrom(batch, recipe)
		lotNumber := batch.LotNumber
		if lotNumber == "" {
			lotNumber = batch.BatchNumber
		}

		items, err := s.loadRowItems(ctx, repos, tenantID, rows)
		if err != nil {
			return s.fail("load receipt items", tenantID, batchID, err)
		}

		receipt, err = stock.NewStockIssue(tenantID, code, stock.MovementTypeReceipt, stock.MovementPurposeProductionIn, warehouse.ID, &batch.ID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			item := items[row.ItemID]
			price := ReceiptLinePrice(productionPrice, item, row.Kind)
			line, err := receipt.AddLine(row.ItemID, nil, row.Quantity, price)
			if err != nil {
				return err
			}
			line.LotNumber = lotNumber
			line.ExpiryDate = expiryDate
		}

		if err := receipt.Confirm(); err != nil {
			return err
		}

		for _, line := range receipt.Lines {
			movement, err := stock.NewStockMovement(
				tenantID, line.ItemID, warehouse.ID,
				stock.MovementDirectionIn,
				line.IssuedQty, line.UnitPrice,
				line.ID, &batch.ID, line.LotNumber,
			)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return s.fail("append movement", tenantID, batchID, err)
			}
			if err := repos.LevelRepo().ApplyDelta(ctx, tenantID, line.ItemID, warehouse.ID, line.IssuedQty); err != nil {
				return s.fail("apply stock delta", tenantID, batchID, err)
			}
		}

		if err := repos.IssueRepo().Save(ctx, receipt); err != nil {
			return s.fail("save receipt", tenantID, batchID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, receipt)
	s.logger.Info("production receipt created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batchID.String()),
		zap.String("code", receipt.Code),
		zap.String("total_cost", receipt.TotalCost.String()))

	return &CreateReceiptResult{ReceiptID: receipt.ID, ReceiptCode: receipt.Code}, nil
}

// GetReceipt returns the active production receipt of a batch
func (s *ReceiptService) GetReceipt(ctx context.Context, tenantID, batchID uuid.UUID) (*StockIssueResponse, error) {
	receipt, err := s.issueRepo.FindActiveReceiptForBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	resp := ToStockIssueResponse(receipt)
	return &resp, nil
}

func (s *ReceiptService) loadRowItems(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, rows []brewing.BottlingItem) (map[uuid.UUID]*catalog.Item, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ItemID]; ok {
			continue
		}
		seen[row.ItemID] = struct{}{}
		ids = append(ids, row.ItemID)
	}
	items, err := repos.ItemRepo().FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return byID, nil
}

// expiryFrom derives the expiry date of the receipt lines: bottling date plus
// the recipe's shelf life, when both are known.
func expiryFrom(batch *brewing.Batch, recipe *brewing.RecipeSnapshot) *time.Time {
	if recipe == nil || recipe.ShelfLifeDays == nil || batch.BottledDate == nil {
		return nil
	}
	expiry := batch.BottledDate.AddDate(0, 0, *recipe.ShelfLifeDays)
	return &expiry
}

func (s *ReceiptService) fail(op string, tenantID, batchID uuid.UUID, err error) error {
	s.logger.Error("receipt "+op+" failed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batchID.String()),
		zap.Error(err))
	return ErrReceiptFailed
}

func (s *ReceiptService) publish(ctx context.Context, receipt *stock.StockIssue) {
	if s.publisher == nil {
		return
	}
	for _, event := range receipt.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish event failed",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	receipt.ClearDomainEvents()
}
