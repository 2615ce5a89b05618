package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountNumber   string             `json:"accountNumber" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=CURRENT_ASSET FIXED_ASSET CURRENT_LIABILITY LONG_TERM_LIABILITY EQUITY_CAPITAL OPERATING_INCOME OTHER_INCOME OPERATING_EXPENSE OTHER_EXPENSE"`
	CurrencyCode    string             `json:"currencyCode" binding:"required,iso4217"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`        // Optional: New name
	Description *string `json:"description"` // Optional: New description
	IsActive    *bool   `json:"isActive"`    // Optional: New active status
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string                       `json:"accountID"`
	AccountNumber   string                       `json:"accountNumber"`
	Name            string                       `json:"name"`
	AccountType     domain.AccountType           `json:"accountType"`
	Classification  domain.AccountClassification `json:"classification"`
	NormalBalance   domain.NormalBalance         `json:"normalBalance"`
	CurrencyCode    string                       `json:"currencyCode"`
	Balance         decimal.Decimal              `json:"balance"`
	ParentAccountID string                       `json:"parentAccountID"` // Empty string if null in DB
	Description     string                       `json:"description"`
	IsActive        bool                         `json:"isActive"`
	CreatedAt       time.Time                    `json:"createdAt"`
	CreatedBy       string                       `json:"createdBy"`
	LastUpdatedAt   time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy   string                       `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		AccountNumber:   acc.AccountNumber,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Classification:  acc.Classification,
		NormalBalance:   acc.NormalBalance,
		CurrencyCode:    acc.CurrencyCode,
		Balance:         acc.Balance.Amount,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
