package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
)

// exchangeRateService provides exchange rate operations.
type exchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate records a new rate for a currency pair.
// Both currencies must already be registered.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if from == to {
		return nil, fmt.Errorf("%w: from and to currency must differ", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, from); err != nil {
		return nil, err
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, to); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate")
		return nil, fmt.Errorf("failed to save exchange rate %s/%s: %w", from, to, err)
	}
	return &rate, nil
}

// GetLatestRate retrieves the most recent rate for a pair effective on or before asOf.
func (s *exchangeRateService) GetLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate %s/%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}
	if rate == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no rate found for %s/%s", fromCurrencyCode, toCurrencyCode))
	}
	return rate, nil
}

// ListExchangeRates retrieves all rates recorded for a currency pair.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to list rates %s/%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
