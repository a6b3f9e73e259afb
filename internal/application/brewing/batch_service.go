package brewing

import (
	"context"
	"fmt"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchService orchestrates the batch lifecycle: planning, status
// transitions, equipment assignment and measured facts.
type BatchService struct {
	txScope   TransactionScope
	batchRepo brewing.BatchRepository
	noteRepo  brewing.BatchNoteRepository
	numberer  DocumentNumberer
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func NewBatchService(
	txScope TransactionScope,
	batchRepo brewing.BatchRepository,
	noteRepo brewing.BatchNoteRepository,
	numberer DocumentNumberer,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *BatchService {
	return &BatchService{
		txScope:   txScope,
		batchRepo: batchRepo,
		noteRepo:  noteRepo,
		numberer:  numberer,
		publisher: publisher,
		logger:    logger,
	}
}

// PlanBatch creates a new batch in PLANNED status with a generated batch
// number. Equipment is recorded but not claimed until brewing starts.
func (s *BatchService) PlanBatch(ctx context.Context, tenantID uuid.UUID, req PlanBatchRequest) (*BatchResponse, error) {
	number, err := s.numberer.Next(ctx, tenantID, DocTypeBatch)
	if err != nil {
		return nil, fmt.Errorf("generate batch number: %w", err)
	}

	batch, err := brewing.NewBatch(tenantID, number, req.RecipeID, req.ItemID, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	batch.LotNumber = req.LotNumber
	batch.ActualVolumeL = req.ActualVolumeL

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.RecipeID != nil {
			if _, err := repos.RecipeRepo().FindByIDForTenant(ctx, tenantID, *req.RecipeID); err != nil {
				return fmt.Errorf("recipe lookup: %w", err)
			}
		}
		if req.EquipmentID != nil {
			if _, err := repos.EquipmentRepo().FindByIDForTenant(ctx, tenantID, *req.EquipmentID); err != nil {
				return fmt.Errorf("equipment lookup: %w", err)
			}
		}
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, batch)
	s.logger.Info("batch planned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batch.ID.String()),
		zap.String("batch_number", batch.BatchNumber))

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// Transition moves a batch to a new status. Entering BREWING claims the
// assigned equipment under a row lock; reaching a terminal status releases
// it. A provided note is recorded on any transition.
func (s *BatchService) Transition(ctx context.Context, tenantID, batchID uuid.UUID, req TransitionRequest) (*BatchResponse, error) {
	newStatus := brewing.BatchStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, brewing.ErrInvalidTransition("", newStatus)
	}

	var batch *brewing.Batch
	var equipment *brewing.Equipment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}

		if err := batch.Transition(newStatus, req.Note); err != nil {
			return err
		}

		if batch.EquipmentID != nil {
			switch {
			case newStatus == brewing.BatchStatusBrewing:
				equipment, err = repos.EquipmentRepo().FindByIDForUpdate(ctx, tenantID, *batch.EquipmentID)
				if err != nil {
					return fmt.Errorf("equipment lookup: %w", err)
				}
				if err := equipment.ClaimFor(batch.ID); err != nil {
					return err
				}
			case newStatus.IsTerminal():
				equipment, err = repos.EquipmentRepo().FindByIDForUpdate(ctx, tenantID, *batch.EquipmentID)
				if err != nil {
					return fmt.Errorf("equipment lookup: %w", err)
				}
				equipment.Release()
			}
			if equipment != nil {
				if err := repos.EquipmentRepo().Save(ctx, equipment); err != nil {
					return fmt.Errorf("save equipment: %w", err)
				}
			}
		}

		if req.Note != "" {
			note, err := brewing.NewBatchNote(tenantID, batch.ID, newStatus, req.Note)
			if err != nil {
				return err
			}
			if err := repos.NoteRepo().Append(ctx, note); err != nil {
				return fmt.Errorf("append note: %w", err)
			}
		}

		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, batch)
	if equipment != nil {
		s.publish(ctx, equipment)
	}
	s.logger.Info("batch transitioned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batch.ID.String()),
		zap.String("status", string(newStatus)))

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// AssignEquipment changes the equipment of a batch. While the batch is in
// an active status the old equipment is released and the new one claimed
// inside the same transaction, so the in-use marker follows the batch.
func (s *BatchService) AssignEquipment(ctx context.Context, tenantID, batchID uuid.UUID, req AssignEquipmentRequest) (*BatchResponse, error) {
	var batch *brewing.Batch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}

		previous := batch.EquipmentID
		active := batch.Status.IsActive()

		if active && previous != nil && (req.EquipmentID == nil || *previous != *req.EquipmentID) {
			old, err := repos.EquipmentRepo().FindByIDForUpdate(ctx, tenantID, *previous)
			if err != nil {
				return fmt.Errorf("equipment lookup: %w", err)
			}
			old.Release()
			if err := repos.EquipmentRepo().Save(ctx, old); err != nil {
				return fmt.Errorf("save equipment: %w", err)
			}
		}

		if req.EquipmentID != nil {
			next, err := repos.EquipmentRepo().FindByIDForUpdate(ctx, tenantID, *req.EquipmentID)
			if err != nil {
				return fmt.Errorf("equipment lookup: %w", err)
			}
			if active {
				if err := next.ClaimFor(batch.ID); err != nil {
					return err
				}
				if err := repos.EquipmentRepo().Save(ctx, next); err != nil {
					return fmt.Errorf("save equipment: %w", err)
				}
			}
		}

		batch.AssignEquipment(req.EquipmentID)
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, batch)

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// UpdateDetails records measured facts on a batch outside the lifecycle,
// such as the tank volume after the boil.
func (s *BatchService) UpdateDetails(ctx context.Context, tenantID, batchID uuid.UUID, req UpdateBatchDetailsRequest) (*BatchResponse, error) {
	var batch *brewing.Batch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = repos.BatchRepo().FindByIDForTenant(ctx, tenantID, batchID)
		if err != nil {
			return ErrBatchNotFound
		}
		if req.ActualVolumeL != nil {
			batch.ActualVolumeL = req.ActualVolumeL
		}
		if req.LotNumber != nil {
			batch.LotNumber = *req.LotNumber
		}
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// GetBatch returns one batch by ID
func (s *BatchService) GetBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, ErrBatchNotFound
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// ListBatches returns batches for a tenant, newest first
func (s *BatchService) ListBatches(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[BatchResponse], error) {
	batches, err := s.batchRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[BatchResponse]{}, fmt.Errorf("list batches: %w", err)
	}
	total, err := s.batchRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[BatchResponse]{}, fmt.Errorf("count batches: %w", err)
	}
	items := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		items = append(items, ToBatchResponse(&batches[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ListNotes returns the note trail of a batch, newest first
func (s *BatchService) ListNotes(ctx context.Context, tenantID, batchID uuid.UUID) ([]brewing.BatchNote, error) {
	if _, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID); err != nil {
		return nil, ErrBatchNotFound
	}
	return s.noteRepo.FindByBatch(ctx, tenantID, batchID)
}

func (s *BatchService) publish(ctx context.Context, aggregate interface {
	DomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.publisher == nil {
		return
	}
	for _, event := range aggregate.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish event failed",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}
