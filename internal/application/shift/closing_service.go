package shift

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
)

// TxRunner runs a function with repositories bound to a single transaction
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos *persistence.Repositories) error) error
}

// ClosingService performs the end-of-day cash reconciliation. The whole
// closing is one transaction: the closing row, the shift close and nothing
// else, or a full rollback.
type ClosingService struct {
	uow         TxRunner
	closingRepo shift.ClosingRepository
	revoker     auth.SessionRevoker
	logger      *zap.Logger
}

// NewClosingService creates a new closing service
func NewClosingService(uow TxRunner, closingRepo shift.ClosingRepository, revoker auth.SessionRevoker, logger *zap.Logger) *ClosingService {
	return &ClosingService{
		uow:         uow,
		closingRepo: closingRepo,
		revoker:     revoker,
		logger:      logger,
	}
}

// CloseShift reconciles the drawer against production and registered sales,
// then writes the DailyClosing and closes the shift. A non-zero difference
// without a justification aborts: the breakdown comes back with
// shared.ErrUnjustifiedMismatch and nothing is persisted. On success the
// caller's session is revoked, forcing a fresh login for the next shift.
func (s *ClosingService) CloseShift(ctx context.Context, input CloseShiftInput) (*CloseShiftResult, error) {
	if input.LeftoverLiters.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LEFTOVER", "Leftover liters cannot be negative")
	}

	now := time.Now()
	var result *CloseShiftResult

	err := s.uow.WithinTx(ctx, func(repos *persistence.Repositories) error {
		sh, err := repos.Shifts.FindByID(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		if sh.UserID != input.UserID {
			return shared.ErrForbidden
		}
		if !sh.IsOpen() {
			return shared.NewDomainError("SHIFT_ALREADY_CLOSED", "Shift is already closed")
		}

		existing, err := repos.Closings.FindByShift(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("SHIFT_ALREADY_CLOSED", "Shift already has a closing")
		}

		cfg, err := repos.Configs.FindEffectiveAt(ctx, calendar.DayOf(now))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrNoConfigForDate
			}
			return err
		}

		litersProduced, err := repos.Production.SumLitersByShift(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		nonCredit, err := repos.Sales.SumNonCreditByShift(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		linkedCredit, err := repos.Ledger.SumPurchasesByShift(ctx, input.ShiftID)
		if err != nil {
			return err
		}
		manualCredit, err := repos.Sales.SumManualCreditByShift(ctx, input.ShiftID)
		if err != nil {
			return err
		}

		rec := shift.Reconcile(litersProduced, input.LeftoverLiters, cfg.SellPricePerLiter, nonCredit, linkedCredit, manualCredit)
		result = &CloseShiftResult{
			Date:      now,
			Balanced:  rec.Balanced(),
			Breakdown: toBreakdown(rec),
		}

		closing, err := shift.NewDailyClosing(now, rec, input.Justification, input.UserID, input.ShiftID)
		if err != nil {
			return err
		}

		if err := repos.Closings.Save(ctx, closing); err != nil {
			return err
		}
		if err := sh.Close(now); err != nil {
			return err
		}
		if err := repos.Shifts.Save(ctx, sh); err != nil {
			return err
		}

		result.ClosingID = closing.GetID()
		result.Justification = closing.Justification
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrUnjustifiedMismatch) {
			// Hand the breakdown back so the attendant can recount or justify.
			s.logger.Warn("Closing aborted on unjustified cash mismatch",
				zap.String("shift_id", input.ShiftID.String()),
				zap.String("difference", result.Breakdown.Difference.String()),
			)
			return result, shared.ErrUnjustifiedMismatch
		}
		return nil, err
	}

	// The session dies with the shift. Revocation is outside the transaction;
	// if it fails the closing stands and the token still expires on idle.
	if input.TokenJTI != "" {
		if err := s.revoker.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to revoke session after closing", zap.Error(err))
		}
	}

	s.logger.Info("Shift closed",
		zap.String("shift_id", input.ShiftID.String()),
		zap.String("closing_id", result.ClosingID.String()),
		zap.Bool("balanced", result.Balanced),
		zap.String("difference", result.Breakdown.Difference.String()),
	)
	return result, nil
}

// GetClosingByShift returns the closing written for a shift, nil if the
// shift is still open
func (s *ClosingService) GetClosingByShift(ctx context.Context, shiftID uuid.UUID) (*ClosingDTO, error) {
	closing, err := s.closingRepo.FindByShift(ctx, shiftID)
	if err != nil {
		s.logger.Error("Failed to load closing", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load closing")
	}
	if closing == nil {
		return nil, nil
	}
	return toClosingDTO(closing), nil
}

func toBreakdown(rec shift.Reconciliation) ReconciliationBreakdown {
	return ReconciliationBreakdown{
		LitersProduced:    rec.LitersProduced,
		LeftoverLiters:    rec.LeftoverLiters,
		PricePerLiter:     rec.PricePerLiter,
		NonCreditSales:    rec.NonCreditSales,
		LinkedCreditSales: rec.LinkedCreditSales,
		ManualCreditSales: rec.ManualCreditSales,
		ExpectedAmount:    rec.ExpectedAmount,
		ActualAmount:      rec.ActualAmount,
		Difference:        rec.Difference,
	}
}

func toClosingDTO(c *shift.DailyClosing) *ClosingDTO {
	return &ClosingDTO{
		ID:             c.GetID(),
		Date:           c.Date,
		ExpectedAmount: c.ExpectedAmount,
		ActualAmount:   c.ActualAmount,
		Difference:     c.Difference,
		LeftoverLiters: c.LeftoverLiters,
		Justification:  c.Justification,
		Status:         c.Status.String(),
		UserID:         c.UserID,
		ShiftID:        c.ShiftID,
	}
}
