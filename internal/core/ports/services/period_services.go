package services

import (
	"context"
	"time"

	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/dto"
)

// FinancialPeriodSvcFacade defines operations for managing financial periods
type FinancialPeriodSvcFacade interface {
	// CreatePeriod opens a new financial period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error)

	// GetPeriodByID retrieves a specific financial period by its ID.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error)

	// GetPeriodForDate retrieves the financial period containing the given date.
	GetPeriodForDate(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error)

	// ListPeriods retrieves all financial periods.
	ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error)

	// ClosePeriod marks a period as closed, blocking further postings into it.
	ClosePeriod(ctx context.Context, periodID string, requestingUserID string) error
}
