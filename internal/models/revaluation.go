package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRevaluation is the database representation of one currency's
// revaluation record.
type CurrencyRevaluation struct {
	RevaluationID     string          `json:"revaluationID"`
	FinancialPeriodID string          `json:"financialPeriodID"`
	RevaluationDate   time.Time       `json:"revaluationDate"`
	CurrencyCode      string          `json:"currencyCode"`
	PreviousRate      decimal.Decimal `json:"previousRate"`
	CurrentRate       decimal.Decimal `json:"currentRate"`
	ForeignAmount     decimal.Decimal `json:"foreignAmount"`
	PreviousBaseValue decimal.Decimal `json:"previousBaseValue"`
	CurrentBaseValue  decimal.Decimal `json:"currentBaseValue"`
	UnrealizedGain    decimal.Decimal `json:"unrealizedGain"`
	UnrealizedLoss    decimal.Decimal `json:"unrealizedLoss"`
	AuditFields
}

// AccountRevaluationDetail is the per-account child row of a revaluation record.
type AccountRevaluationDetail struct {
	RevaluationID     string          `json:"revaluationID"`
	AccountID         string          `json:"accountID"`
	ForeignAmount     decimal.Decimal `json:"foreignAmount"`
	PreviousBaseValue decimal.Decimal `json:"previousBaseValue"`
	CurrentBaseValue  decimal.Decimal `json:"currentBaseValue"`
	Effect            decimal.Decimal `json:"effect"`
}
