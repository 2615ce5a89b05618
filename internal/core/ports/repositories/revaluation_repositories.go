package repositories

import (
	"context"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// RevaluationReader defines read operations for revaluation data
type RevaluationReader interface {
	// GetForeignCurrencyBalances retrieves the open balances of active accounts
	// denominated in a currency other than the given base, together with the rate
	// each account was last revalued at.
	GetForeignCurrencyBalances(ctx context.Context, baseCurrencyCode string) ([]domain.ForeignCurrencyBalance, error)

	// ListRevaluations retrieves the revaluation records saved for a financial period.
	ListRevaluations(ctx context.Context, financialPeriodID string) ([]domain.CurrencyRevaluation, error)
}

// RevaluationWriter defines write operations for revaluation data
type RevaluationWriter interface {
	// SaveRevaluations persists a batch of revaluation records with their
	// per-account details and stamps the affected accounts with the new rate,
	// all within a single database transaction.
	SaveRevaluations(ctx context.Context, revaluations []domain.CurrencyRevaluation) error
}

// RevaluationRepositoryFacade combines all revaluation-related repository interfaces
// This is a facade for clients that need access to all operations
type RevaluationRepositoryFacade interface {
	RevaluationReader
	RevaluationWriter
}
