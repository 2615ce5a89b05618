package services

import (
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo)
	container.Period = NewPeriodService(repos.PeriodRepo)

	// The ledger applies posted entries; the journal service drives the
	// lifecycle and delegates balance application to it.
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.JournalRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo, container.Ledger)

	container.Revaluation = NewRevaluationService(
		repos.RevaluationRepo,
		repos.ExchangeRateRepo,
		repos.CurrencyRepo,
		repos.PeriodRepo,
		container.Journal,
		RevaluationAccounts{
			GainAccountID:       cfg.RevaluationGainAccountID,
			LossAccountID:       cfg.RevaluationLossAccountID,
			AdjustmentAccountID: cfg.RevaluationAdjustmentAccountID,
		},
	)

	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
