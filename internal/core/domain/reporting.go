package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the answer to a balance query, optionally reconstructed
// as of a historical date.
type AccountBalance struct {
	AccountID     string     `json:"accountID"`
	AccountNumber string     `json:"accountNumber"`
	Name          string     `json:"name"`
	Balance       Money      `json:"balance"`
	AsOf          *time.Time `json:"asOf,omitempty"` // Nil means current stored balance
}

// AccountActivityLine is one posting line projected for an activity query.
type AccountActivityLine struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
}

// AccountActivity is the full activity of one account over a date range,
// ordered by entry date then entry number.
type AccountActivity struct {
	AccountID string                `json:"accountID"`
	StartDate time.Time             `json:"startDate"`
	EndDate   time.Time             `json:"endDate"`
	Lines     []AccountActivityLine `json:"lines"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID      string                `json:"accountID"`
	AccountName    string                `json:"accountName"`
	Classification AccountClassification `json:"classification"`
	Debit          decimal.Decimal       `json:"debit"`
	Credit         decimal.Decimal       `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report.
type PAndLReport struct {
	Income    []AccountAmount `json:"income"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet report.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}
