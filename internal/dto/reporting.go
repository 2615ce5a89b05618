package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// TrialBalanceRowResponse defines one row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	Classification string          `json:"classification"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse wraps the trial balance rows with the report date.
type TrialBalanceResponse struct {
	AsOf time.Time                 `json:"asOf"`
	Rows []TrialBalanceRowResponse `json:"rows"`
}

// AccountAmountResponse is a named amount row used by P&L and balance sheet reports.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// PAndLResponse defines the profit and loss report.
type PAndLResponse struct {
	From      time.Time               `json:"from"`
	To        time.Time               `json:"to"`
	Income    []AccountAmountResponse `json:"income"`
	Expenses  []AccountAmountResponse `json:"expenses"`
	NetProfit decimal.Decimal         `json:"netProfit"`
}

// BalanceSheetResponse defines the balance sheet report.
type BalanceSheetResponse struct {
	AsOf             time.Time               `json:"asOf"`
	Assets           []AccountAmountResponse `json:"assets"`
	Liabilities      []AccountAmountResponse `json:"liabilities"`
	Equity           []AccountAmountResponse `json:"equity"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal         `json:"totalEquity"`
}

// ToTrialBalanceResponse converts domain trial balance rows to the report DTO.
func ToTrialBalanceResponse(asOf time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	out := make([]TrialBalanceRowResponse, len(rows))
	for i, r := range rows {
		out[i] = TrialBalanceRowResponse{
			AccountID:      r.AccountID,
			AccountName:    r.AccountName,
			Classification: string(r.Classification),
			Debit:          r.Debit,
			Credit:         r.Credit,
		}
	}
	return TrialBalanceResponse{AsOf: asOf, Rows: out}
}

// ToAccountAmountResponses converts domain account amounts to DTOs.
func ToAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			AccountName: a.Name,
			Amount:      a.NetAmount,
		}
	}
	return out
}
