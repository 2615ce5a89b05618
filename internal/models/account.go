package models

import "github.com/shopspring/decimal"

// AccountType is the detailed chart-of-accounts type as stored.
type AccountType string

// AccountClassification is the fundamental accounting classification as stored.
type AccountClassification string

// NormalBalance is the account's natural increasing side as stored.
type NormalBalance string

// Account is the database representation of a chart-of-accounts node.
// The balance is stored as a bare decimal; the denomination currency is the
// account's currency_code column.
type Account struct {
	AccountID       string                `json:"accountID"`
	AccountNumber   string                `json:"accountNumber"`
	Name            string                `json:"name"`
	AccountType     AccountType           `json:"accountType"`
	Classification  AccountClassification `json:"classification"`
	NormalBalance   NormalBalance         `json:"normalBalance"`
	CurrencyCode    string                `json:"currencyCode"`
	Balance         decimal.Decimal       `json:"balance"`
	IsActive        bool                  `json:"isActive"`
	ParentAccountID string                `json:"parentAccountID"`
	Description     string                `json:"description"`
	AuditFields
}
