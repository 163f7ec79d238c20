package shift

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shift"
)

// ProductionService records what the stand produced during a shift
type ProductionService struct {
	shiftRepo      shift.ShiftRepository
	productionRepo shift.ProductionRepository
	logger         *zap.Logger
}

// NewProductionService creates a new production service
func NewProductionService(
	shiftRepo shift.ShiftRepository,
	productionRepo shift.ProductionRepository,
	logger *zap.Logger,
) *ProductionService {
	return &ProductionService{
		shiftRepo:      shiftRepo,
		productionRepo: productionRepo,
		logger:         logger,
	}
}

// RegisterProduction appends a production entry to the caller's open shift
func (s *ProductionService) RegisterProduction(ctx context.Context, input RegisterProductionInput) (*ProductionEntryDTO, error) {
	sh, err := s.shiftRepo.FindByID(ctx, input.ShiftID)
	if err != nil {
		return nil, err
	}
	if !sh.IsOpen() {
		return nil, shared.NewDomainError("SHIFT_CLOSED", "Cannot record production on a closed shift")
	}

	entry, err := shift.NewProductionEntry(input.Date, input.BasketsCount, input.LitersProduced, input.UserID, input.ShiftID)
	if err != nil {
		return nil, err
	}

	if err := s.productionRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to save production entry", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record production")
	}

	s.logger.Info("Production recorded",
		zap.String("shift_id", input.ShiftID.String()),
		zap.Int("baskets", input.BasketsCount),
		zap.String("liters", input.LitersProduced.String()),
	)
	return toProductionDTO(entry), nil
}

// ListByShift returns a shift's production entries, oldest first
func (s *ProductionService) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]ProductionEntryDTO, error) {
	entries, err := s.productionRepo.FindByShift(ctx, shiftID)
	if err != nil {
		s.logger.Error("Failed to list production entries", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list production")
	}

	out := make([]ProductionEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *toProductionDTO(&entries[i]))
	}
	return out, nil
}

func toProductionDTO(e *shift.ProductionEntry) *ProductionEntryDTO {
	return &ProductionEntryDTO{
		ID:             e.GetID(),
		Date:           e.Date,
		BasketsCount:   e.BasketsCount,
		LitersProduced: e.LitersProduced,
		UserID:         e.UserID,
		ShiftID:        e.ShiftID,
	}
}
