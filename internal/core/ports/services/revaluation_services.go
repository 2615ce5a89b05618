package services

import (
	"context"

	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/dto"
)

// RevaluationSvcFacade defines the period-end currency revaluation operations
type RevaluationSvcFacade interface {
	// RunRevaluation revalues all foreign currency exposure into the base
	// currency as of the requested date, persists the per-currency records and
	// optionally books the unrealized gain/loss journal entry.
	RunRevaluation(ctx context.Context, req dto.RunRevaluationRequest, requestingUserID string) (*domain.RevaluationResult, error)

	// ListRevaluations retrieves the revaluation records saved for a financial period.
	ListRevaluations(ctx context.Context, financialPeriodID string) ([]domain.CurrencyRevaluation, error)
}
