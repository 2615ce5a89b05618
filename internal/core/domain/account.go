package domain

import (
	"fmt"

	"github.com/corebanking/gl_backend/internal/apperrors"
)

// AccountClassification defines the fundamental accounting classification of an account.
type AccountClassification string

const (
	Asset     AccountClassification = "ASSET"
	Liability AccountClassification = "LIABILITY"
	Equity    AccountClassification = "EQUITY"
	Income    AccountClassification = "INCOME"
	Expense   AccountClassification = "EXPENSE"
)

// AccountType is the detailed chart-of-accounts type. Every type maps to
// exactly one classification.
type AccountType string

const (
	CurrentAsset      AccountType = "CURRENT_ASSET"
	FixedAsset        AccountType = "FIXED_ASSET"
	CurrentLiability  AccountType = "CURRENT_LIABILITY"
	LongTermLiability AccountType = "LONG_TERM_LIABILITY"
	EquityCapital     AccountType = "EQUITY_CAPITAL"
	OperatingIncome   AccountType = "OPERATING_INCOME"
	OtherIncome       AccountType = "OTHER_INCOME"
	OperatingExpense  AccountType = "OPERATING_EXPENSE"
	OtherExpense      AccountType = "OTHER_EXPENSE"
)

// NormalBalance is the side on which an account naturally increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// ClassificationForType resolves the classification an account type belongs to.
func ClassificationForType(t AccountType) (AccountClassification, error) {
	switch t {
	case CurrentAsset, FixedAsset:
		return Asset, nil
	case CurrentLiability, LongTermLiability:
		return Liability, nil
	case EquityCapital:
		return Equity, nil
	case OperatingIncome, OtherIncome:
		return Income, nil
	case OperatingExpense, OtherExpense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, t)
	}
}

// NormalBalanceFor resolves the normal balance side of a classification.
// Assets and Expenses increase on debit; Liabilities, Equity and Income on credit.
func NormalBalanceFor(c AccountClassification) (NormalBalance, error) {
	switch c {
	case Asset, Expense:
		return DebitNormal, nil
	case Liability, Equity, Income:
		return CreditNormal, nil
	default:
		return "", fmt.Errorf("%w: unknown classification '%s'", apperrors.ErrValidation, c)
	}
}

// Account represents a chart-of-accounts node within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string                `json:"accountID"`       // Primary Key (UUID)
	AccountNumber   string                `json:"accountNumber"`   // GL code, unique within the chart
	Name            string                `json:"name"`            // User-defined name
	AccountType     AccountType           `json:"accountType"`     // Detailed chart type
	Classification  AccountClassification `json:"classification"`  // ASSET, LIABILITY, etc.
	NormalBalance   NormalBalance         `json:"normalBalance"`   // DEBIT or CREDIT
	CurrencyCode    string                `json:"currencyCode"`    // Denomination currency
	Balance         Money                 `json:"balance"`         // Current carrying balance
	IsActive        bool                  `json:"isActive"`        // Inactive accounts reject new postings
	ParentAccountID string                `json:"parentAccountID"` // Nullable, self-referencing
	Description     string                `json:"description"`
	AuditFields
}

// ApplyPosting applies one net posting effect to the stored balance using the
// double-entry sign convention: a debit increases a debit-normal account and
// decreases a credit-normal one; a credit does the opposite.
func (a *Account) ApplyPosting(amount Money, isDebit bool) error {
	if amount.CurrencyCode != a.CurrencyCode {
		return fmt.Errorf("%w: posting currency %s against account %s denominated in %s",
			apperrors.ErrCurrencyMismatch, amount.CurrencyCode, a.AccountID, a.CurrencyCode)
	}
	increases := (a.NormalBalance == DebitNormal) == isDebit
	var (
		newBalance Money
		err        error
	)
	if increases {
		newBalance, err = a.Balance.Add(amount)
	} else {
		newBalance, err = a.Balance.Sub(amount)
	}
	if err != nil {
		return err
	}
	a.Balance = newBalance
	return nil
}

// ReversePosting undoes the effect ApplyPosting would have had for the same
// arguments. Used when reconstructing historical balances.
func (a *Account) ReversePosting(amount Money, isDebit bool) error {
	return a.ApplyPosting(amount, !isDebit)
}
