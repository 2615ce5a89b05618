package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// AccountBalanceResponse defines the data returned for a balance query.
// AsOf is nil for a current-balance query.
type AccountBalanceResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	AsOf          *time.Time      `json:"asOf,omitempty"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:     b.AccountID,
		AccountNumber: b.AccountNumber,
		Name:          b.Name,
		Balance:       b.Balance.Amount,
		CurrencyCode:  b.Balance.CurrencyCode,
		AsOf:          b.AsOf,
	}
}

// ToAccountBalanceResponses converts a slice of domain.AccountBalance.
func ToAccountBalanceResponses(balances []domain.AccountBalance) []AccountBalanceResponse {
	responses := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = ToAccountBalanceResponse(&b)
	}
	return responses
}

// AccountActivityLineResponse defines one row of an account activity statement.
type AccountActivityLineResponse struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
}

// AccountActivityResponse defines the activity of one account over a date range.
type AccountActivityResponse struct {
	AccountID string                        `json:"accountID"`
	StartDate time.Time                     `json:"startDate"`
	EndDate   time.Time                     `json:"endDate"`
	Lines     []AccountActivityLineResponse `json:"lines"`
}

// ToAccountActivityResponse converts a domain.AccountActivity to its DTO.
func ToAccountActivityResponse(a *domain.AccountActivity) AccountActivityResponse {
	lines := make([]AccountActivityLineResponse, len(a.Lines))
	for i, l := range a.Lines {
		lines[i] = AccountActivityLineResponse{
			EntryID:      l.EntryID,
			EntryNumber:  l.EntryNumber,
			EntryDate:    l.EntryDate,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			CurrencyCode: l.CurrencyCode,
		}
	}
	return AccountActivityResponse{
		AccountID: a.AccountID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Lines:     lines,
	}
}
