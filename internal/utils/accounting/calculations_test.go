package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/utils/accounting"
)

func line(accountID string, amount int64, isDebit bool, currencyCode string) domain.PostingLine {
	return domain.PostingLine{
		AccountID: accountID,
		Amount:    domain.NewMoney(decimal.NewFromInt(amount), currencyCode),
		IsDebit:   isDebit,
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		isDebit  bool
		normal   domain.NormalBalance
		expected int64
	}{
		{"debit on debit-normal", true, domain.DebitNormal, 100},
		{"credit on debit-normal", false, domain.DebitNormal, -100},
		{"debit on credit-normal", true, domain.CreditNormal, -100},
		{"credit on credit-normal", false, domain.CreditNormal, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := accounting.SignedAmount(amount, tc.isDebit, tc.normal)
			require.NoError(t, err)
			assert.True(t, signed.Equal(decimal.NewFromInt(tc.expected)))
		})
	}
}

func TestSignedAmount_UnknownNormalBalance(t *testing.T) {
	_, err := accounting.SignedAmount(decimal.NewFromInt(100), true, "SIDEWAYS")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNetPostings_MixedDirections(t *testing.T) {
	// 100 debit, 30 credit, 20 credit collapse to a 90 debit.
	lines := []domain.PostingLine{
		line("acc-1", 100, true, "USD"),
		line("acc-1", 30, false, "USD"),
		line("acc-1", 20, false, "USD"),
	}

	nets, err := accounting.NetPostings(lines)
	require.NoError(t, err)
	require.Len(t, nets, 1)
	assert.Equal(t, "acc-1", nets[0].AccountID)
	assert.True(t, nets[0].IsDebit)
	assert.True(t, nets[0].Amount.Amount.Equal(decimal.NewFromInt(90)))
}

func TestNetPostings_DirectionFlipsWhenCreditsWin(t *testing.T) {
	lines := []domain.PostingLine{
		line("acc-1", 40, true, "USD"),
		line("acc-1", 100, false, "USD"),
	}

	nets, err := accounting.NetPostings(lines)
	require.NoError(t, err)
	require.Len(t, nets, 1)
	assert.False(t, nets[0].IsDebit)
	assert.True(t, nets[0].Amount.Amount.Equal(decimal.NewFromInt(60)))
}

func TestNetPostings_EqualAmountsNetToZero(t *testing.T) {
	lines := []domain.PostingLine{
		line("acc-1", 75, true, "USD"),
		line("acc-1", 75, false, "USD"),
	}

	nets, err := accounting.NetPostings(lines)
	require.NoError(t, err)
	require.Len(t, nets, 1)
	assert.True(t, nets[0].Amount.IsZero())
	// The running direction survives for the audit trail.
	assert.True(t, nets[0].IsDebit)
}

func TestNetPostings_SameDirectionAccumulates(t *testing.T) {
	lines := []domain.PostingLine{
		line("acc-1", 10, true, "USD"),
		line("acc-1", 15, true, "USD"),
		line("acc-1", 25, true, "USD"),
	}

	nets, err := accounting.NetPostings(lines)
	require.NoError(t, err)
	require.Len(t, nets, 1)
	assert.True(t, nets[0].Amount.Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, nets[0].IsDebit)
}

func TestNetPostings_PreservesFirstTouchOrder(t *testing.T) {
	lines := []domain.PostingLine{
		line("acc-2", 100, true, "USD"),
		line("acc-1", 60, false, "USD"),
		line("acc-2", 40, false, "USD"),
		line("acc-3", 20, true, "USD"),
	}

	nets, err := accounting.NetPostings(lines)
	require.NoError(t, err)
	require.Len(t, nets, 3)
	assert.Equal(t, "acc-2", nets[0].AccountID)
	assert.Equal(t, "acc-1", nets[1].AccountID)
	assert.Equal(t, "acc-3", nets[2].AccountID)
	assert.True(t, nets[0].Amount.Amount.Equal(decimal.NewFromInt(60)))
}

func TestNetPostings_CurrencyMismatchOnOneAccount(t *testing.T) {
	lines := []domain.PostingLine{
		line("acc-1", 100, true, "USD"),
		line("acc-1", 100, false, "EUR"),
	}

	_, err := accounting.NetPostings(lines)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestNetPostings_EmptyInput(t *testing.T) {
	nets, err := accounting.NetPostings(nil)
	require.NoError(t, err)
	assert.Empty(t, nets)
}
