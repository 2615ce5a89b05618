package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.LedgerSvcFacade
	cashAccount     domain.Account
	revenueAccount  domain.Account
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockJournalRepo)

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  "1000",
		Name:           "Cash",
		AccountType:    domain.CurrentAsset,
		Classification: domain.Asset,
		NormalBalance:  domain.DebitNormal,
		CurrencyCode:   "USD",
		Balance:        domain.ZeroMoney("USD"),
		IsActive:       true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  "4000",
		Name:           "Service Revenue",
		AccountType:    domain.OperatingIncome,
		Classification: domain.Income,
		NormalBalance:  domain.CreditNormal,
		CurrencyCode:   "USD",
		Balance:        domain.ZeroMoney("USD"),
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) postedEntry(lines []domain.PostingLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-2025-TEST0001",
		EntryDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.Posted,
		Lines:       lines,
	}
}

func (suite *LedgerServiceTestSuite) line(accountID string, amount int64, isDebit bool) domain.PostingLine {
	return domain.PostingLine{
		LineID:    uuid.NewString(),
		AccountID: accountID,
		Amount:    domain.NewMoney(decimal.NewFromInt(amount), "USD"),
		IsDebit:   isDebit,
	}
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_Success() {
	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 600, true),
		suite.line(suite.revenueAccount.AccountID, 600, false),
	})

	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockJournalRepo.On("PostEntry", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.NoError(err)

	// A debit increases a debit-normal account and a credit increases a
	// credit-normal account, so both deltas are positive.
	suite.Len(captured, 2)
	suite.True(captured[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(600)))
	suite.True(captured[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(600)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_NetsLinesPerAccount() {
	// 100 debit, 30 credit, 20 credit against cash nets to a 90 debit.
	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 100, true),
		suite.line(suite.cashAccount.AccountID, 30, false),
		suite.line(suite.cashAccount.AccountID, 20, false),
		suite.line(suite.revenueAccount.AccountID, 50, false),
	})

	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockJournalRepo.On("PostEntry", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.NoError(err)
	suite.True(captured[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(90)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_MixedDirectionsNetCorrectly() {
	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 250, true),
		suite.line(suite.cashAccount.AccountID, 250, false),
		suite.line(suite.revenueAccount.AccountID, 100, false),
		suite.line(suite.cashAccount.AccountID, 100, true),
	})

	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockJournalRepo.On("PostEntry", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.NoError(err)

	// Cash: 250 debit + 100 debit - 250 credit = 100 net debit.
	suite.True(captured[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(captured[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(100)))
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_FullyCancelledAccountSkipped() {
	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 250, true),
		suite.line(suite.cashAccount.AccountID, 250, false),
		suite.line(suite.revenueAccount.AccountID, 100, false),
		suite.line(suite.revenueAccount.AccountID, 100, true),
	})

	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockJournalRepo.On("PostEntry", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.NoError(err)
	suite.Empty(captured)
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_RejectsUnpostedEntry() {
	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 100, true),
		suite.line(suite.revenueAccount.AccountID, 100, false),
	})
	entry.Status = domain.Draft

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_MissingAccount() {
	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 100, true),
		suite.line(suite.revenueAccount.AccountID, 100, false),
	})

	// Only cash comes back from the repository.
	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_InactiveAccount() {
	inactive := suite.cashAccount
	inactive.IsActive = false

	entry := suite.postedEntry([]domain.PostingLine{
		suite.line(inactive.AccountID, 100, true),
		suite.line(suite.revenueAccount.AccountID, 100, false),
	})

	accounts := map[string]domain.Account{
		inactive.AccountID:             inactive,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestApplyPostedEntry_CurrencyMismatch() {
	entry := suite.postedEntry([]domain.PostingLine{
		{
			LineID:    uuid.NewString(),
			AccountID: suite.cashAccount.AccountID,
			Amount:    domain.NewMoney(decimal.NewFromInt(100), "EUR"),
			IsDebit:   true,
		},
		{
			LineID:    uuid.NewString(),
			AccountID: suite.revenueAccount.AccountID,
			Amount:    domain.NewMoney(decimal.NewFromInt(100), "EUR"),
			IsDebit:   false,
		},
	})

	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	err := suite.service.ApplyPostedEntry(context.Background(), entry, suite.userID)
	suite.ErrorIs(err, apperrors.ErrCurrencyMismatch)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyReversalEntry_PostsAndLinksInOneCall() {
	originalID := uuid.NewString()
	reversal := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 600, false),
		suite.line(suite.revenueAccount.AccountID, 600, true),
	})
	reversal.OriginalEntryID = &originalID

	accounts := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockJournalRepo.On("PostReversal", mock.Anything, mock.Anything, mock.Anything, originalID).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	err := suite.service.ApplyReversalEntry(context.Background(), reversal, suite.userID)
	suite.NoError(err)

	// The reversal credits cash and debits revenue, so both deltas are negative.
	suite.Len(captured, 2)
	suite.True(captured[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-600)))
	suite.True(captured[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(-600)))

	// The original's status flip travels with the reversal post; there is no
	// separate write that could commit on its own.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyReversalEntry_RequiresOriginalEntryID() {
	reversal := suite.postedEntry([]domain.PostingLine{
		suite.line(suite.cashAccount.AccountID, 600, false),
		suite.line(suite.revenueAccount.AccountID, 600, true),
	})

	err := suite.service.ApplyReversalEntry(context.Background(), reversal, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetAccountBalance_Current() {
	account := suite.cashAccount
	account.Balance = domain.NewMoney(decimal.NewFromInt(750), "USD")
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()

	balance, err := suite.service.GetAccountBalance(context.Background(), account.AccountID, nil)
	suite.NoError(err)
	suite.True(balance.Balance.Amount.Equal(decimal.NewFromInt(750)))
	suite.Nil(balance.AsOf)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindPostedLinesByAccountAfter", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetAccountBalance_AsOfRewindsLaterPostings() {
	account := suite.cashAccount
	account.Balance = domain.NewMoney(decimal.NewFromInt(1000), "USD")
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()

	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	// After the cutoff: a 300 debit and a 100 credit were applied.
	laterLines := []domain.PostingLine{
		suite.line(account.AccountID, 300, true),
		suite.line(account.AccountID, 100, false),
	}
	suite.mockJournalRepo.On("FindPostedLinesByAccountAfter", mock.Anything, account.AccountID, asOf).Return(laterLines, nil).Once()

	balance, err := suite.service.GetAccountBalance(context.Background(), account.AccountID, &asOf)
	suite.NoError(err)
	// 1000 - 300 + 100 = 800 as of the cutoff for a debit-normal account.
	suite.True(balance.Balance.Amount.Equal(decimal.NewFromInt(800)))
	suite.Equal(&asOf, balance.AsOf)
}

func (suite *LedgerServiceTestSuite) TestGetAccountBalance_NotFound() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := suite.service.GetAccountBalance(context.Background(), "missing", nil)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetAccountActivity_InvalidRange() {
	from := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := suite.service.GetAccountActivity(context.Background(), suite.cashAccount.AccountID, from, to)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetBalancesByClassification() {
	accounts := []domain.Account{suite.cashAccount}
	suite.mockAccountRepo.On("ListAccountsByClassification", mock.Anything, domain.Asset).Return(accounts, nil).Once()

	balances, err := suite.service.GetBalancesByClassification(context.Background(), domain.Asset)
	suite.NoError(err)
	suite.Len(balances, 1)
	suite.Equal(suite.cashAccount.AccountID, balances[0].AccountID)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
