package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      NewPgxAccountRepository(pool),
		CurrencyRepo:     NewPgxCurrencyRepository(pool),
		ExchangeRateRepo: NewPgxExchangeRateRepository(pool),
		JournalRepo:      NewPgxJournalEntryRepository(pool),
		RevaluationRepo:  NewPgxRevaluationRepository(pool),
		PeriodRepo:       NewPgxPeriodRepository(pool),
		ReportingRepo:    NewPgxReportingRepository(pool),
	}
}
