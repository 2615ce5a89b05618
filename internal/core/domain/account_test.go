package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
)

func TestClassificationForType(t *testing.T) {
	tests := []struct {
		accountType    domain.AccountType
		classification domain.AccountClassification
	}{
		{domain.CurrentAsset, domain.Asset},
		{domain.FixedAsset, domain.Asset},
		{domain.CurrentLiability, domain.Liability},
		{domain.LongTermLiability, domain.Liability},
		{domain.EquityCapital, domain.Equity},
		{domain.OperatingIncome, domain.Income},
		{domain.OtherIncome, domain.Income},
		{domain.OperatingExpense, domain.Expense},
		{domain.OtherExpense, domain.Expense},
	}
	for _, tc := range tests {
		got, err := domain.ClassificationForType(tc.accountType)
		require.NoError(t, err)
		assert.Equal(t, tc.classification, got, "type %s", tc.accountType)
	}
}

func TestClassificationForType_Unknown(t *testing.T) {
	_, err := domain.ClassificationForType("SOMETHING_ELSE")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNormalBalanceFor(t *testing.T) {
	tests := []struct {
		classification domain.AccountClassification
		normal         domain.NormalBalance
	}{
		{domain.Asset, domain.DebitNormal},
		{domain.Expense, domain.DebitNormal},
		{domain.Liability, domain.CreditNormal},
		{domain.Equity, domain.CreditNormal},
		{domain.Income, domain.CreditNormal},
	}
	for _, tc := range tests {
		got, err := domain.NormalBalanceFor(tc.classification)
		require.NoError(t, err)
		assert.Equal(t, tc.normal, got, "classification %s", tc.classification)
	}

	_, err := domain.NormalBalanceFor("UNKNOWN")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func testAccount(normal domain.NormalBalance, balance int64) domain.Account {
	return domain.Account{
		AccountID:     "acc-1",
		NormalBalance: normal,
		CurrencyCode:  "USD",
		Balance:       domain.NewMoney(decimal.NewFromInt(balance), "USD"),
		IsActive:      true,
	}
}

func TestAccount_ApplyPosting(t *testing.T) {
	amount := domain.NewMoney(decimal.NewFromInt(100), "USD")

	tests := []struct {
		name     string
		normal   domain.NormalBalance
		isDebit  bool
		expected int64
	}{
		{"debit increases debit-normal", domain.DebitNormal, true, 600},
		{"credit decreases debit-normal", domain.DebitNormal, false, 400},
		{"credit increases credit-normal", domain.CreditNormal, false, 600},
		{"debit decreases credit-normal", domain.CreditNormal, true, 400},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			account := testAccount(tc.normal, 500)
			err := account.ApplyPosting(amount, tc.isDebit)
			require.NoError(t, err)
			assert.True(t, account.Balance.Amount.Equal(decimal.NewFromInt(tc.expected)))
		})
	}
}

func TestAccount_ApplyPostingCurrencyMismatch(t *testing.T) {
	account := testAccount(domain.DebitNormal, 500)
	err := account.ApplyPosting(domain.NewMoney(decimal.NewFromInt(100), "EUR"), true)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
	assert.True(t, account.Balance.Amount.Equal(decimal.NewFromInt(500)), "balance must be untouched on failure")
}

func TestAccount_ReversePostingUndoesApply(t *testing.T) {
	amount := domain.NewMoney(decimal.NewFromInt(250), "USD")

	for _, normal := range []domain.NormalBalance{domain.DebitNormal, domain.CreditNormal} {
		for _, isDebit := range []bool{true, false} {
			account := testAccount(normal, 1000)
			require.NoError(t, account.ApplyPosting(amount, isDebit))
			require.NoError(t, account.ReversePosting(amount, isDebit))
			assert.True(t, account.Balance.Amount.Equal(decimal.NewFromInt(1000)),
				"normal=%s isDebit=%t", normal, isDebit)
		}
	}
}
