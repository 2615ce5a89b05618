package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForeignCurrencyBalance is the carrying position of one foreign-currency
// account as supplied by the ledger-balance collaborator.
type ForeignCurrencyBalance struct {
	AccountID           string           `json:"accountID"`
	CurrencyCode        string           `json:"currencyCode"`
	ForeignAmount       decimal.Decimal  `json:"foreignAmount"`
	BaseAmount          decimal.Decimal  `json:"baseAmount"`          // Previously booked base-currency value
	LastRevaluationRate *decimal.Decimal `json:"lastRevaluationRate"` // Nil before the first revaluation
}

// AccountRevaluationDetail records the per-account effect of one revaluation run.
type AccountRevaluationDetail struct {
	AccountID         string          `json:"accountID"`
	ForeignAmount     decimal.Decimal `json:"foreignAmount"`
	PreviousBaseValue decimal.Decimal `json:"previousBaseValue"`
	CurrentBaseValue  decimal.Decimal `json:"currentBaseValue"`
	Effect            decimal.Decimal `json:"effect"` // CurrentBaseValue - PreviousBaseValue
}

// CurrencyRevaluation is the historical record of revaluing all balances of
// one foreign currency in one run. Never mutated after creation.
type CurrencyRevaluation struct {
	RevaluationID     string                     `json:"revaluationID"`
	FinancialPeriodID string                     `json:"financialPeriodID"`
	RevaluationDate   time.Time                  `json:"revaluationDate"`
	CurrencyCode      string                     `json:"currencyCode"`
	PreviousRate      decimal.Decimal            `json:"previousRate"`
	CurrentRate       decimal.Decimal            `json:"currentRate"`
	ForeignAmount     decimal.Decimal            `json:"foreignAmount"`
	PreviousBaseValue decimal.Decimal            `json:"previousBaseValue"`
	CurrentBaseValue  decimal.Decimal            `json:"currentBaseValue"`
	UnrealizedGain    decimal.Decimal            `json:"unrealizedGain"`
	UnrealizedLoss    decimal.Decimal            `json:"unrealizedLoss"`
	Details           []AccountRevaluationDetail `json:"details,omitempty"`
	AuditFields
}

// RevaluationResult aggregates one full revaluation run across currencies.
type RevaluationResult struct {
	FinancialPeriodID   string                `json:"financialPeriodID"`
	RevaluationDate     time.Time             `json:"revaluationDate"`
	BaseCurrencyCode    string                `json:"baseCurrencyCode"`
	Revaluations        []CurrencyRevaluation `json:"revaluations"`
	SkippedCurrencies   []string              `json:"skippedCurrencies,omitempty"` // Currencies with no available rate
	TotalUnrealizedGain decimal.Decimal       `json:"totalUnrealizedGain"`
	TotalUnrealizedLoss decimal.Decimal       `json:"totalUnrealizedLoss"`
	NetEffect           decimal.Decimal       `json:"netEffect"` // Gain - Loss
}
