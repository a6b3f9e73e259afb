package brewing

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateEquipmentRequest registers a new vessel
type CreateEquipmentRequest struct {
	Name      string           `json:"name" binding:"required,max=100"`
	CapacityL *decimal.Decimal `json:"capacity_l"`
}

// EquipmentResponse represents a piece of equipment in API responses
type EquipmentResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Status         string           `json:"status"`
	CapacityL      *decimal.Decimal `json:"capacity_l,omitempty"`
	CurrentBatchID *uuid.UUID       `json:"current_batch_id,omitempty"`
}

// EquipmentService maintains the equipment registry. Claiming and releasing
// happen through the batch lifecycle, not here.
type EquipmentService struct {
	txScope       TransactionScope
	equipmentRepo brewing.EquipmentRepository
	logger        *zap.Logger
}

func NewEquipmentService(txScope TransactionScope, equipmentRepo brewing.EquipmentRepository, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{txScope: txScope, equipmentRepo: equipmentRepo, logger: logger}
}

// CreateEquipment registers a new vessel, available for claiming
func (s *EquipmentService) CreateEquipment(ctx context.Context, tenantID uuid.UUID, req CreateEquipmentRequest) (*EquipmentResponse, error) {
	equipment, err := brewing.NewEquipment(tenantID, req.Name, req.CapacityL)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.EquipmentRepo().Save(ctx, equipment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("equipment_id", equipment.ID.String()))

	resp := toEquipmentResponse(equipment)
	return &resp, nil
}

// ListEquipment returns all equipment of the tenant
func (s *EquipmentService) ListEquipment(ctx context.Context, tenantID uuid.UUID) ([]EquipmentResponse, error) {
	units, err := s.equipmentRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]EquipmentResponse, 0, len(units))
	for i := range units {
		out = append(out, toEquipmentResponse(&units[i]))
	}
	return out, nil
}

// GetEquipment returns one piece of equipment
func (s *EquipmentService) GetEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	equipment, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}
	resp := toEquipmentResponse(equipment)
	return &resp, nil
}

func toEquipmentResponse(e *brewing.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:             e.ID,
		Name:           e.Name,
		Status:         string(e.Status),
		CapacityL:      e.CapacityL,
		CurrentBatchID: e.CurrentBatchID,
	}
}
