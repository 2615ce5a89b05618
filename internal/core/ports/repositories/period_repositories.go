package repositories

import (
	"context"
	"time"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// FinancialPeriodReader defines read operations for financial period data
type FinancialPeriodReader interface {
	// FindPeriodByID retrieves a specific financial period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error)

	// FindPeriodForDate retrieves the financial period containing the given date.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error)

	// ListPeriods retrieves all financial periods, newest first.
	ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error)
}

// FinancialPeriodWriter defines write operations for financial period data
type FinancialPeriodWriter interface {
	// SavePeriod persists a new financial period.
	SavePeriod(ctx context.Context, period domain.FinancialPeriod) error

	// ClosePeriod marks a financial period as closed.
	ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error
}

// FinancialPeriodRepositoryFacade combines all period-related repository interfaces
// This is a facade for clients that need access to all operations
type FinancialPeriodRepositoryFacade interface {
	FinancialPeriodReader
	FinancialPeriodWriter
}
