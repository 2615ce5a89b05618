package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// RunRevaluationRequest defines the data needed to run a period-end currency revaluation.
type RunRevaluationRequest struct {
	FinancialPeriodID string    `json:"financialPeriodID" binding:"required"`
	RevaluationDate   time.Time `json:"revaluationDate" binding:"required"`
	BookPostings      bool      `json:"bookPostings"` // When true, a gain/loss journal entry is created and posted
}

// AccountRevaluationDetailResponse defines the per-account breakdown of a revaluation.
type AccountRevaluationDetailResponse struct {
	AccountID         string          `json:"accountID"`
	ForeignAmount     decimal.Decimal `json:"foreignAmount"`
	PreviousBaseValue decimal.Decimal `json:"previousBaseValue"`
	CurrentBaseValue  decimal.Decimal `json:"currentBaseValue"`
	Effect            decimal.Decimal `json:"effect"`
}

// CurrencyRevaluationResponse defines the data returned for one currency's revaluation.
type CurrencyRevaluationResponse struct {
	RevaluationID     string                             `json:"revaluationID"`
	CurrencyCode      string                             `json:"currencyCode"`
	PreviousRate      decimal.Decimal                    `json:"previousRate"`
	CurrentRate       decimal.Decimal                    `json:"currentRate"`
	ForeignAmount     decimal.Decimal                    `json:"foreignAmount"`
	PreviousBaseValue decimal.Decimal                    `json:"previousBaseValue"`
	CurrentBaseValue  decimal.Decimal                    `json:"currentBaseValue"`
	UnrealizedGain    decimal.Decimal                    `json:"unrealizedGain"`
	UnrealizedLoss    decimal.Decimal                    `json:"unrealizedLoss"`
	Details           []AccountRevaluationDetailResponse `json:"details"`
}

// RevaluationResultResponse defines the full result of a revaluation run.
type RevaluationResultResponse struct {
	FinancialPeriodID   string                        `json:"financialPeriodID"`
	RevaluationDate     time.Time                     `json:"revaluationDate"`
	BaseCurrencyCode    string                        `json:"baseCurrencyCode"`
	Revaluations        []CurrencyRevaluationResponse `json:"revaluations"`
	SkippedCurrencies   []string                      `json:"skippedCurrencies,omitempty"`
	TotalUnrealizedGain decimal.Decimal               `json:"totalUnrealizedGain"`
	TotalUnrealizedLoss decimal.Decimal               `json:"totalUnrealizedLoss"`
	NetEffect           decimal.Decimal               `json:"netEffect"`
}

// ToCurrencyRevaluationResponse converts a domain.CurrencyRevaluation to its DTO.
func ToCurrencyRevaluationResponse(r *domain.CurrencyRevaluation) CurrencyRevaluationResponse {
	details := make([]AccountRevaluationDetailResponse, len(r.Details))
	for i, d := range r.Details {
		details[i] = AccountRevaluationDetailResponse{
			AccountID:         d.AccountID,
			ForeignAmount:     d.ForeignAmount,
			PreviousBaseValue: d.PreviousBaseValue,
			CurrentBaseValue:  d.CurrentBaseValue,
			Effect:            d.Effect,
		}
	}
	return CurrencyRevaluationResponse{
		RevaluationID:     r.RevaluationID,
		CurrencyCode:      r.CurrencyCode,
		PreviousRate:      r.PreviousRate,
		CurrentRate:       r.CurrentRate,
		ForeignAmount:     r.ForeignAmount,
		PreviousBaseValue: r.PreviousBaseValue,
		CurrentBaseValue:  r.CurrentBaseValue,
		UnrealizedGain:    r.UnrealizedGain,
		UnrealizedLoss:    r.UnrealizedLoss,
		Details:           details,
	}
}

// ToRevaluationResultResponse converts a domain.RevaluationResult to its DTO.
func ToRevaluationResultResponse(res *domain.RevaluationResult) RevaluationResultResponse {
	revals := make([]CurrencyRevaluationResponse, len(res.Revaluations))
	for i, r := range res.Revaluations {
		revals[i] = ToCurrencyRevaluationResponse(&r)
	}
	return RevaluationResultResponse{
		FinancialPeriodID:   res.FinancialPeriodID,
		RevaluationDate:     res.RevaluationDate,
		BaseCurrencyCode:    res.BaseCurrencyCode,
		Revaluations:        revals,
		SkippedCurrencies:   res.SkippedCurrencies,
		TotalUnrealizedGain: res.TotalUnrealizedGain,
		TotalUnrealizedLoss: res.TotalUnrealizedLoss,
		NetEffect:           res.NetEffect,
	}
}
