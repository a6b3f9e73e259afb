package brewing

import (
	"context"
	"fmt"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IssueService manages material withdrawals for batches: drafting a document
// from the outstanding ledger, re-syncing drafts, confirming and cancelling.
type IssueService struct {
	txScope   TransactionScope
	batchRepo brewing.BatchRepository
	sources   issuanceSources
	numberer  DocumentNumberer
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func NewIssueService(
	txScope TransactionScope,
	batchRepo brewing.BatchRepository,
	recipeRepo brewing.RecipeRepository,
	itemRepo catalog.ItemRepository,
	unitRepo catalog.UnitRepository,
	issueRepo stock.StockIssueRepository,
	movementRepo stock.StockMovementRepository,
	numberer DocumentNumberer,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *IssueService {
	return &IssueService{
		txScope:   txScope,
		batchRepo: batchRepo,
		sources: issuanceSources{
			recipes:   recipeRepo,
			items:     itemRepo,
			units:     unitRepo,
			issues:    issueRepo,
			movements: movementRepo,
		},
		numberer:  numberer,
		publisher: publisher,
		logger:    logger,
	}
}

// issuanceSources are the read dependencies of the issuance ledger, usable
// both inside and outside a transaction scope.
type issuanceSources struct {
	recipes   brewing.RecipeRepository
	items     catalog.ItemRepository
	units     catalog.UnitRepository
	issues    stock.StockIssueRepository
	movements stock.StockMovementRepository
}

func sourcesFrom(repos TransactionalRepositories) issuanceSources {
	return issuanceSources{
		recipes:   repos.RecipeRepo(),
		items:     repos.ItemRepo(),
		units:     repos.UnitRepo(),
		issues:    repos.IssueRepo(),
		movements: repos.MovementRepo(),
	}
}

// load gathers the ledger input for a batch. The batch must carry a recipe
// with at least one ingredient line.
func (src issuanceSources) load(ctx context.Context, tenantID uuid.UUID, batch *brewing.Batch) (IssuanceInput, error) {
	var in IssuanceInput

	if !batch.HasRecipe() {
		return in, ErrNoRecipe
	}
	recipe, err := src.recipes.FindByIDForTenant(ctx, tenantID, *batch.RecipeID)
	if err != nil {
		return in, ErrNoRecipe
	}
	if len(recipe.Items) == 0 {
		return in, ErrNoIngredients
	}
	in.Recipe = recipe

	itemIDs := make([]uuid.UUID, 0, len(recipe.Items))
	unitIDSet := make(map[uuid.UUID]struct{}, len(recipe.Items))
	for _, ri := range recipe.Items {
		itemIDs = append(itemIDs, ri.ItemID)
		unitIDSet[ri.UnitID] = struct{}{}
	}

	items, err := src.items.FindByIDsForTenant(ctx, tenantID, itemIDs)
	if err != nil {
		return in, fmt.Errorf("load ingredient items: %w", err)
	}
	in.Items = make(map[uuid.UUID]catalog.Item, len(items))
	for _, item := range items {
		in.Items[item.ID] = item
		if item.HasStockUnit() {
			unitIDSet[*item.StockUnitID] = struct{}{}
		}
	}

	unitIDs := make([]uuid.UUID, 0, len(unitIDSet))
	for id := range unitIDSet {
		unitIDs = append(unitIDs, id)
	}
	units, err := src.units.FindByIDsForTenant(ctx, tenantID, unitIDs)
	if err != nil {
		return in, fmt.Errorf("load units: %w", err)
	}
	in.Units = make(map[uuid.UUID]catalog.Unit, len(units))
	for _, unit := range units {
		in.Units[unit.ID] = unit
	}

	in.ConfirmedLines, err = src.issues.FindConfirmedIssueLinesForBatch(ctx, tenantID, batch.ID)
	if err != nil {
		return in, fmt.Errorf("load confirmed withdrawal lines: %w", err)
	}

	lineIDs := make([]uuid.UUID, 0, len(in.ConfirmedLines))
	for _, l := range in.ConfirmedLines {
		lineIDs = append(lineIDs, l.ID)
	}
	if len(lineIDs) > 0 {
		in.OutMovements, err = src.movements.FindOutByIssueLines(ctx, tenantID, lineIDs)
		if err != nil {
			return in, fmt.Errorf("load movements: %w", err)
		}
	}

	return in, nil
}

// GetIssuancePlan returns the ingredient reconciliation ledger for a batch:
// required, issued and missing per recipe line.
func (s *IssueService) GetIssuancePlan(ctx context.Context, tenantID, batchID uuid.UUID) (*IssuancePlanResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, ErrBatchNotFound
	}
	in, err := s.sources.load(ctx, tenantID, batch)
	if err != nil {
		return nil, err
	}
	return &IssuancePlanResponse{
		BatchID: batch.ID,
		Lines:   ComputeIssuance(in),
	}, nil
}

// CreateIssue drafts a withdrawal document covering everything the batch's
// recipe still needs. Lines are the outstanding quantities in stock units,
// priced at the item's current cost. Fails with ALL_ISSUED when the ledger
// has no outstanding line.
func (s *IssueService) CreateIssue(ctx context.Context, tenantID, batchID uuid.UUID) (*StockIssueResponse, error) {
	code, err := s.numberer.Next(ctx, tenantID, DocTypeWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("generate document code: %w", err)
	}

	var issue *stock.StockIssue
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}

		in, err := sourcesFrom(repos).load(ctx, tenantID, batch)
		if err != nil {
			return err
		}
		outstanding := OutstandingLines(ComputeIssuance(in))
		if len(outstanding) == 0 {
			return ErrAllIssued
		}

		warehouse, err := repos.WarehouseRepo().FindOperational(ctx, tenantID)
		if err != nil {
			return ErrNoWarehouse
		}

		issue, err = stock.NewStockIssue(tenantID, code, stock.MovementTypeIssue, stock.MovementPurposeProductionOut, warehouse.ID, &batch.ID)
		if err != nil {
			return err
		}
		for _, line := range outstanding {
			recipeItemID := line.RecipeItemID
			unitPrice := in.Items[line.ItemID].CostPrice
			if _, err := issue.AddLine(line.ItemID, &recipeItemID, line.MissingStockQty, unitPrice); err != nil {
				return err
			}
		}

		if err := repos.IssueRepo().Save(ctx, issue); err != nil {
			s.logger.Error("save withdrawal failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("batch_id", batchID.String()),
				zap.Error(err))
			return ErrIssueFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal drafted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batchID.String()),
		zap.String("code", issue.Code),
		zap.Int("lines", len(issue.Lines)))

	resp := ToStockIssueResponse(issue)
	return &resp, nil
}

// RefillIssue re-syncs a draft withdrawal with the current ledger: the
// document is relinked to the given batch and its lines are replaced by the
// outstanding quantities as of now. Confirmed and cancelled documents are
// immutable and rejected with NOT_DRAFT.
func (s *IssueService) RefillIssue(ctx context.Context, tenantID, issueID, batchID uuid.UUID) (*StockIssueResponse, error) {
	var issue *stock.StockIssue
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		issue, err = repos.IssueRepo().FindByIDForTenant(ctx, tenantID, issueID)
		if err != nil {
			return shared.ErrNotFound
		}
		if err := issue.RelinkBatch(batchID); err != nil {
			return err
		}

		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}

		in, err := sourcesFrom(repos).load(ctx, tenantID, batch)
		if err != nil {
			return err
		}
		outstanding := OutstandingLines(ComputeIssuance(in))
		if len(outstanding) == 0 {
			return ErrAllIssued
		}

		lines := make([]stock.StockIssueLine, 0, len(outstanding))
		for _, line := range outstanding {
			recipeItemID := line.RecipeItemID
			lines = append(lines, stock.StockIssueLine{
				ItemID:       line.ItemID,
				RecipeItemID: &recipeItemID,
				RequestedQty: line.MissingStockQty,
				RemainingQty: line.MissingStockQty,
				UnitPrice:    in.Items[line.ItemID].CostPrice,
			})
		}
		if err := issue.ReplaceLines(lines); err != nil {
			return err
		}
		return repos.IssueRepo().Save(ctx, issue)
	})
	if err != nil {
		return nil, err
	}

	resp := ToStockIssueResponse(issue)
	return &resp, nil
}

// ConfirmIssue finalizes a draft withdrawal: every line is issued in full,
// an OUT movement is appended per line and the warehouse on-hand levels drop
// accordingly, all in one transaction.
func (s *IssueService) ConfirmIssue(ctx context.Context, tenantID, issueID uuid.UUID) (*StockIssueResponse, error) {
	var issue *stock.StockIssue
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		issue, err = repos.IssueRepo().FindByIDForTenant(ctx, tenantID, issueID)
		if err != nil {
			return shared.ErrNotFound
		}
		if err := issue.Confirm(); err != nil {
			return err
		}

		for _, line := range issue.Lines {
			movement, err := stock.NewStockMovement(
				tenantID, line.ItemID, issue.WarehouseID,
				stock.MovementDirectionOut,
				line.IssuedQty, line.UnitPrice,
				line.ID, issue.BatchID, line.LotNumber,
			)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return fmt.Errorf("append movement: %w", err)
			}
			if err := repos.LevelRepo().ApplyDelta(ctx, tenantID, line.ItemID, issue.WarehouseID, line.IssuedQty.Neg()); err != nil {
				return fmt.Errorf("apply stock delta: %w", err)
			}
		}

		return repos.IssueRepo().Save(ctx, issue)
	})
	if err != nil {
		return nil, err
	}

	s.publishIssue(ctx, issue)
	s.logger.Info("withdrawal confirmed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("code", issue.Code),
		zap.String("total_cost", issue.TotalCost.String()))

	resp := ToStockIssueResponse(issue)
	return &resp, nil
}

// CancelIssue voids a draft withdrawal
func (s *IssueService) CancelIssue(ctx context.Context, tenantID, issueID uuid.UUID) (*StockIssueResponse, error) {
	var issue *stock.StockIssue
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		issue, err = repos.IssueRepo().FindByIDForTenant(ctx, tenantID, issueID)
		if err != nil {
			return shared.ErrNotFound
		}
		if err := issue.Cancel(); err != nil {
			return err
		}
		return repos.IssueRepo().Save(ctx, issue)
	})
	if err != nil {
		return nil, err
	}

	resp := ToStockIssueResponse(issue)
	return &resp, nil
}

// GetIssue returns one stock document with its lines
func (s *IssueService) GetIssue(ctx context.Context, tenantID, issueID uuid.UUID) (*StockIssueResponse, error) {
	issue, err := s.sources.issues.FindByIDForTenant(ctx, tenantID, issueID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	resp := ToStockIssueResponse(issue)
	return &resp, nil
}

func (s *IssueService) publishIssue(ctx context.Context, issue *stock.StockIssue) {
	if s.publisher == nil {
		return
	}
	for _, event := range issue.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish event failed",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	issue.ClearDomainEvents()
}
