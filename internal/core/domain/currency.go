package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
// Exactly one currency is flagged as the base (reporting) currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "NGN")
	Symbol       string `json:"symbol"`       // e.g., "₦"
	Name         string `json:"name"`         // e.g., "Nigerian Naira"
	IsBase       bool   `json:"isBase"`
	AuditFields
}

// ExchangeRate holds the conversion rate between two currencies effective
// from a given date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
