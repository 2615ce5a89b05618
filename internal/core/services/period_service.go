package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
)

// periodService provides financial period operations.
type periodService struct {
	BaseService
	periodRepo portsrepo.FinancialPeriodRepositoryFacade
}

// NewPeriodService creates a new financial period service.
func NewPeriodService(periodRepo portsrepo.FinancialPeriodRepositoryFacade) portssvc.FinancialPeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.FinancialPeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new financial period.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	period := domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsClosed:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "failed to save financial period", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save financial period: %w", err)
	}
	return &period, nil
}

// GetPeriodByID retrieves a financial period by its ID.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial period %s: %w", periodID, err)
	}
	if period == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("financial period %s not found", periodID))
	}
	return period, nil
}

// GetPeriodForDate retrieves the financial period containing the given date.
func (s *periodService) GetPeriodForDate(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find financial period for date %s: %w", date.Format(time.DateOnly), err)
	}
	if period == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no financial period covers %s", date.Format(time.DateOnly)))
	}
	return period, nil
}

// ListPeriods retrieves all financial periods.
func (s *periodService) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial periods: %w", err)
	}
	if periods == nil {
		return []domain.FinancialPeriod{}, nil
	}
	return periods, nil
}

// ClosePeriod marks a period as closed, blocking further postings into it.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, requestingUserID string) error {
	period, err := s.GetPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.IsClosed {
		return fmt.Errorf("%w: financial period %s is already closed", apperrors.ErrInvalidState, periodID)
	}

	if err := s.periodRepo.ClosePeriod(ctx, periodID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "failed to close financial period", slog.String("period_id", periodID))
		return fmt.Errorf("failed to close financial period %s: %w", periodID, err)
	}

	s.LogInfo(ctx, "financial period closed", slog.String("period_id", periodID))
	return nil
}
