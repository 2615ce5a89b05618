package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
)

// RevaluationAccounts names the base-currency accounts the revaluation run
// books its effects against. All three must be set for booking to happen.
type RevaluationAccounts struct {
	GainAccountID       string // Unrealized FX gain (income)
	LossAccountID       string // Unrealized FX loss (expense)
	AdjustmentAccountID string // FX position adjustment (asset)
}

func (r RevaluationAccounts) configured() bool {
	return r.GainAccountID != "" && r.LossAccountID != "" && r.AdjustmentAccountID != ""
}

// revaluationService revalues foreign currency exposure into the base currency
// at period end and records the unrealized gains and losses.
type revaluationService struct {
	BaseService
	revalRepo    portsrepo.RevaluationRepositoryFacade
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	periodRepo   portsrepo.FinancialPeriodRepositoryFacade
	journalSvc   portssvc.JournalEntryWriterSvc // Optional; booking is skipped when nil
	accounts     RevaluationAccounts
}

// NewRevaluationService creates a new revaluation service. journalSvc may be
// nil, in which case revaluation runs compute and record results without
// booking gain/loss entries.
func NewRevaluationService(
	revalRepo portsrepo.RevaluationRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	periodRepo portsrepo.FinancialPeriodRepositoryFacade,
	journalSvc portssvc.JournalEntryWriterSvc,
	accounts RevaluationAccounts,
) portssvc.RevaluationSvcFacade {
	return &revaluationService{
		revalRepo:    revalRepo,
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		periodRepo:   periodRepo,
		journalSvc:   journalSvc,
		accounts:     accounts,
	}
}

var _ portssvc.RevaluationSvcFacade = (*revaluationService)(nil)

// RunRevaluation revalues every foreign currency position into the base
// currency at the requested date. Currencies with no available rate are
// skipped and reported; the run still succeeds with partial results.
func (s *revaluationService) RunRevaluation(ctx context.Context, req dto.RunRevaluationRequest, requestingUserID string) (*domain.RevaluationResult, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, req.FinancialPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve financial period %s: %w", req.FinancialPeriodID, err)
	}
	if period == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("financial period %s not found", req.FinancialPeriodID))
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: financial period %s is closed", apperrors.ErrInvalidState, period.PeriodID)
	}

	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	if base == nil {
		return nil, apperrors.NewNotFoundError("no base currency is configured")
	}

	result := &domain.RevaluationResult{
		FinancialPeriodID: req.FinancialPeriodID,
		RevaluationDate:   req.RevaluationDate,
		BaseCurrencyCode:  base.CurrencyCode,
	}

	balances, err := s.revalRepo.GetForeignCurrencyBalances(ctx, base.CurrencyCode)
	if err != nil {
		s.LogError(ctx, err, "failed to load foreign currency balances")
		return nil, fmt.Errorf("failed to load foreign currency balances: %w", err)
	}
	if len(balances) == 0 {
		s.LogInfo(ctx, "no foreign currency exposure, nothing to revalue",
			slog.String("period_id", req.FinancialPeriodID))
		return result, nil
	}

	// Currencies are processed in the order they first appear in the balances.
	byCurrency := make(map[string][]domain.ForeignCurrencyBalance)
	currencies := make([]string, 0, len(balances))
	for _, b := range balances {
		if _, seen := byCurrency[b.CurrencyCode]; !seen {
			currencies = append(currencies, b.CurrencyCode)
		}
		byCurrency[b.CurrencyCode] = append(byCurrency[b.CurrencyCode], b)
	}

	now := time.Now().UTC()
	for _, cc := range currencies {
		rate, err := s.rateRepo.FindLatestRate(ctx, cc, base.CurrencyCode, req.RevaluationDate)
		if err != nil {
			return nil, fmt.Errorf("failed to look up rate %s/%s: %w", cc, base.CurrencyCode, err)
		}
		if rate == nil {
			s.LogInfo(ctx, "no exchange rate available, skipping currency",
				slog.String("currency_code", cc), slog.String("base_currency_code", base.CurrencyCode))
			result.SkippedCurrencies = append(result.SkippedCurrencies, cc)
			continue
		}

		reval := s.revalueCurrency(req, cc, rate.Rate, byCurrency[cc], requestingUserID, now)
		result.Revaluations = append(result.Revaluations, reval)
		result.TotalUnrealizedGain = result.TotalUnrealizedGain.Add(reval.UnrealizedGain)
		result.TotalUnrealizedLoss = result.TotalUnrealizedLoss.Add(reval.UnrealizedLoss)
	}
	result.NetEffect = result.TotalUnrealizedGain.Sub(result.TotalUnrealizedLoss)

	if len(result.Revaluations) > 0 {
		if err := s.revalRepo.SaveRevaluations(ctx, result.Revaluations); err != nil {
			s.LogError(ctx, err, "failed to save revaluation records")
			return nil, fmt.Errorf("failed to save revaluation records: %w", err)
		}
	}

	if req.BookPostings {
		if err := s.bookRevaluationEntry(ctx, result, requestingUserID); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "revaluation run complete",
		slog.String("period_id", req.FinancialPeriodID),
		slog.Int("currencies_revalued", len(result.Revaluations)),
		slog.Int("currencies_skipped", len(result.SkippedCurrencies)),
		slog.String("net_effect", result.NetEffect.String()))
	return result, nil
}

// revalueCurrency computes one currency's revaluation record from its account
// positions and the current rate. The previous rate falls back to the current
// rate when the currency has never been revalued before.
func (s *revaluationService) revalueCurrency(
	req dto.RunRevaluationRequest,
	currencyCode string,
	currentRate decimal.Decimal,
	positions []domain.ForeignCurrencyBalance,
	requestingUserID string,
	now time.Time,
) domain.CurrencyRevaluation {
	previousRate := currentRate
	for _, p := range positions {
		if p.LastRevaluationRate != nil {
			previousRate = *p.LastRevaluationRate
			break
		}
	}

	reval := domain.CurrencyRevaluation{
		RevaluationID:     uuid.NewString(),
		FinancialPeriodID: req.FinancialPeriodID,
		RevaluationDate:   req.RevaluationDate,
		CurrencyCode:      currencyCode,
		PreviousRate:      previousRate,
		CurrentRate:       currentRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	for _, p := range positions {
		currentBase := p.ForeignAmount.Mul(currentRate)
		// Accounts that were never revalued have no booked base value; value
		// them at the previous rate so the first run produces no effect.
		previousBase := p.BaseAmount
		if p.LastRevaluationRate == nil {
			previousBase = p.ForeignAmount.Mul(previousRate)
		}
		detail := domain.AccountRevaluationDetail{
			AccountID:         p.AccountID,
			ForeignAmount:     p.ForeignAmount,
			PreviousBaseValue: previousBase,
			CurrentBaseValue:  currentBase,
			Effect:            currentBase.Sub(previousBase),
		}
		reval.Details = append(reval.Details, detail)

		reval.ForeignAmount = reval.ForeignAmount.Add(p.ForeignAmount)
		reval.PreviousBaseValue = reval.PreviousBaseValue.Add(detail.PreviousBaseValue)
		reval.CurrentBaseValue = reval.CurrentBaseValue.Add(detail.CurrentBaseValue)

		// Each account's effect lands on its own side. Opposing effects
		// within one currency must not cancel against each other.
		if detail.Effect.IsPositive() {
			reval.UnrealizedGain = reval.UnrealizedGain.Add(detail.Effect)
		} else {
			reval.UnrealizedLoss = reval.UnrealizedLoss.Add(detail.Effect.Abs())
		}
	}
	return reval
}

// bookRevaluationEntry creates and posts the journal entry carrying the run's
// unrealized gain and loss into the configured accounts. A booking failure
// fails the whole run; computation and booking are one logical unit.
func (s *revaluationService) bookRevaluationEntry(ctx context.Context, result *domain.RevaluationResult, requestingUserID string) error {
	if result.TotalUnrealizedGain.IsZero() && result.TotalUnrealizedLoss.IsZero() {
		return nil
	}
	if s.journalSvc == nil {
		s.LogDebug(ctx, "no journal service wired, skipping revaluation booking")
		return nil
	}
	if !s.accounts.configured() {
		s.LogInfo(ctx, "revaluation gain/loss accounts not configured, skipping booking")
		return nil
	}

	debit := true
	credit := false
	var lines []dto.CreatePostingLineRequest
	if result.TotalUnrealizedGain.IsPositive() {
		lines = append(lines,
			dto.CreatePostingLineRequest{
				AccountID:   s.accounts.AdjustmentAccountID,
				Amount:      result.TotalUnrealizedGain,
				IsDebit:     &debit,
				Description: "FX position adjustment",
			},
			dto.CreatePostingLineRequest{
				AccountID:   s.accounts.GainAccountID,
				Amount:      result.TotalUnrealizedGain,
				IsDebit:     &credit,
				Description: "Unrealized FX gain",
			},
		)
	}
	if result.TotalUnrealizedLoss.IsPositive() {
		lines = append(lines,
			dto.CreatePostingLineRequest{
				AccountID:   s.accounts.LossAccountID,
				Amount:      result.TotalUnrealizedLoss,
				IsDebit:     &debit,
				Description: "Unrealized FX loss",
			},
			dto.CreatePostingLineRequest{
				AccountID:   s.accounts.AdjustmentAccountID,
				Amount:      result.TotalUnrealizedLoss,
				IsDebit:     &credit,
				Description: "FX position adjustment",
			},
		)
	}

	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateJournalEntryRequest{
		EntryDate:   result.RevaluationDate,
		Reference:   fmt.Sprintf("REVAL-%s", result.RevaluationDate.Format("2006-01-02")),
		Description: fmt.Sprintf("Currency revaluation for period %s", result.FinancialPeriodID),
		Lines:       lines,
	}, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to create revaluation entry: %w", err)
	}
	if _, err := s.journalSvc.PostEntry(ctx, entry.EntryID, requestingUserID); err != nil {
		return fmt.Errorf("failed to post revaluation entry %s: %w", entry.EntryID, err)
	}

	s.LogInfo(ctx, "revaluation entry booked", slog.String("entry_id", entry.EntryID))
	return nil
}

// ListRevaluations retrieves the revaluation records saved for a financial period.
func (s *revaluationService) ListRevaluations(ctx context.Context, financialPeriodID string) ([]domain.CurrencyRevaluation, error) {
	revals, err := s.revalRepo.ListRevaluations(ctx, financialPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revaluations for period %s: %w", financialPeriodID, err)
	}
	if revals == nil {
		return []domain.CurrencyRevaluation{}, nil
	}
	return revals, nil
}
