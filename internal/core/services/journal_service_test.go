package services_test

import (
	"context"
	"fmt"
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
	"github.com/corebanking/gl_backend/internal/dto"
)

func boolPtr(b bool) *bool { return &b }

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	mockLedger      *MockLedgerPoster
	service         portssvc.JournalSvcFacade
	openPeriod      domain.FinancialPeriod
	cashAccount     domain.Account
	revenueAccount  domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockLedger = new(MockLedgerPoster)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodRepo, suite.mockLedger)

	suite.userID = uuid.NewString()
	suite.openPeriod = domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "FY2025-06",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		IsClosed:  false,
	}
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

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Reference:   "INV-42",
		Description: "June consulting fees",
		Lines: []dto.CreatePostingLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(600), IsDebit: boolPtr(true)},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(600), IsDebit: boolPtr(false)},
		},
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	req := suite.balancedRequest()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.JournalEntry)
		}).
		Return(nil).Once()

	entry, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.NoError(err)
	suite.NotNil(entry)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(suite.openPeriod.PeriodID, entry.FinancialPeriodID)
	suite.Regexp(`^JE-2025-[0-9A-F]{8}$`, entry.EntryNumber)

	// Line currency comes from the account, not the request.
	suite.Len(saved.Lines, 2)
	suite.Equal("USD", saved.Lines[0].Amount.CurrencyCode)
	suite.Equal("USD", saved.Lines[1].Amount.CurrencyCode)
	suite.True(saved.Lines[0].IsDebit)
	suite.False(saved.Lines[1].IsDebit)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	req := suite.balancedRequest()
	req.Lines[1].Amount = decimal.NewFromInt(500)

	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotBalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_TooFewLines() {
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	req := suite.balancedRequest()
	req.Lines[0].Amount = decimal.Zero

	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ClosedPeriod() {
	req := suite.balancedRequest()
	closed := suite.openPeriod
	closed.IsClosed = true
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(&closed, nil).Once()

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NoPeriodCoversDate() {
	req := suite.balancedRequest()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(nil, nil).Once()

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	req := suite.balancedRequest()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()

	partial := map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(partial, nil).Once()

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	req := suite.balancedRequest()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()

	accounts := suite.accountsMap()
	inactive := accounts[suite.cashAccount.AccountID]
	inactive.IsActive = false
	accounts[suite.cashAccount.AccountID] = inactive
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) draftEntry() *domain.JournalEntry {
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:           entryID,
		EntryNumber:       "JE-2025-ABCD1234",
		EntryDate:         time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		FinancialPeriodID: suite.openPeriod.PeriodID,
		Status:            domain.Draft,
		Lines: []domain.PostingLine{
			{
				LineID:    uuid.NewString(),
				EntryID:   entryID,
				AccountID: suite.cashAccount.AccountID,
				Amount:    domain.NewMoney(decimal.NewFromInt(600), "USD"),
				IsDebit:   true,
			},
			{
				LineID:    uuid.NewString(),
				EntryID:   entryID,
				AccountID: suite.revenueAccount.AccountID,
				Amount:    domain.NewMoney(decimal.NewFromInt(600), "USD"),
				IsDebit:   false,
			},
		},
	}
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	entry := suite.draftEntry()
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", mock.Anything, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()

	var applied domain.JournalEntry
	suite.mockLedger.On("ApplyPostedEntry", mock.Anything, mock.Anything, suite.userID).
		Run(func(args mock.Arguments) {
			applied = args.Get(1).(domain.JournalEntry)
		}).
		Return(nil).Once()

	posted, err := suite.service.PostEntry(context.Background(), entry.EntryID, suite.userID)
	suite.NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(domain.Posted, applied.Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_ClosedPeriod() {
	entry := suite.draftEntry()
	closed := suite.openPeriod
	closed.IsClosed = true
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", mock.Anything, suite.openPeriod.PeriodID).Return(&closed, nil).Once()

	_, err := suite.service.PostEntry(context.Background(), entry.EntryID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyPostedEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", mock.Anything, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()

	_, err := suite.service.PostEntry(context.Background(), entry.EntryID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestPostEntry_NotFound() {
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := suite.service.PostEntry(context.Background(), "missing", suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(&suite.openPeriod, nil).Once()

	var applied domain.JournalEntry
	suite.mockLedger.On("ApplyReversalEntry", mock.Anything, mock.Anything, suite.userID).
		Run(func(args mock.Arguments) {
			applied = args.Get(1).(domain.JournalEntry)
		}).
		Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(context.Background(), entry.EntryID, suite.userID)
	suite.NoError(err)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Equal(entry.EntryID, *reversal.OriginalEntryID)
	suite.Equal("Reversal of JE-2025-ABCD1234", reversal.Description)

	// The reversal carries the original's ID so the status flip commits with it.
	suite.Equal(entry.EntryID, *applied.OriginalEntryID)

	// Each reversal line flips direction but keeps the amount.
	suite.Len(applied.Lines, 2)
	suite.False(applied.Lines[0].IsDebit)
	suite.True(applied.Lines[1].IsDebit)
	suite.True(applied.Lines[0].Amount.Amount.Equal(decimal.NewFromInt(600)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_LedgerFailureLeavesOriginalUntouched() {
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(&suite.openPeriod, nil).Once()
	suite.mockLedger.On("ApplyReversalEntry", mock.Anything, mock.Anything, suite.userID).
		Return(fmt.Errorf("%w: entry %s is not posted or already reversed", apperrors.ErrConflict, entry.EntryID)).Once()

	_, err := suite.service.ReverseEntry(context.Background(), entry.EntryID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrConflict)

	// No write touches the original outside the transactional reversal path.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	entry := suite.draftEntry()
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReverseEntry(context.Background(), entry.EntryID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	reversingID := uuid.NewString()
	entry.ReversingEntryID = &reversingID
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReverseEntry(context.Background(), entry.EntryID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyReversalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedEntryImmutable() {
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	newRef := "INV-43"
	_, err := suite.service.UpdateEntry(context.Background(), entry.EntryID, dto.UpdateJournalEntryRequest{Reference: &newRef}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_Success() {
	entry := suite.draftEntry()
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("UpdateEntry", mock.Anything, mock.Anything).Return(nil).Once()

	newRef := "INV-43"
	updated, err := suite.service.UpdateEntry(context.Background(), entry.EntryID, dto.UpdateJournalEntryRequest{Reference: &newRef}, suite.userID)
	suite.NoError(err)
	suite.Equal("INV-43", updated.Reference)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
