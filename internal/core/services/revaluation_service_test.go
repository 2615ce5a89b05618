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
	"github.com/corebanking/gl_backend/internal/dto"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

type RevaluationServiceTestSuite struct {
	suite.Suite
	mockRevalRepo    *MockRevaluationRepository
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockPeriodRepo   *MockPeriodRepository
	mockJournalSvc   *MockJournalWriter
	service          portssvc.RevaluationSvcFacade
	openPeriod       domain.FinancialPeriod
	baseCurrency     domain.Currency
	accounts         services.RevaluationAccounts
	userID           string
}

func (suite *RevaluationServiceTestSuite) SetupTest() {
	suite.mockRevalRepo = new(MockRevaluationRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockJournalSvc = new(MockJournalWriter)
	suite.accounts = services.RevaluationAccounts{
		GainAccountID:       uuid.NewString(),
		LossAccountID:       uuid.NewString(),
		AdjustmentAccountID: uuid.NewString(),
	}
	suite.service = services.NewRevaluationService(
		suite.mockRevalRepo,
		suite.mockRateRepo,
		suite.mockCurrencyRepo,
		suite.mockPeriodRepo,
		suite.mockJournalSvc,
		suite.accounts,
	)

	suite.userID = uuid.NewString()
	suite.openPeriod = domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "FY2025-06",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		IsClosed:  false,
	}
	suite.baseCurrency = domain.Currency{CurrencyCode: "NGN", Symbol: "₦", Name: "Nigerian Naira", IsBase: true}
}

func (suite *RevaluationServiceTestSuite) request() dto.RunRevaluationRequest {
	return dto.RunRevaluationRequest{
		FinancialPeriodID: suite.openPeriod.PeriodID,
		RevaluationDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *RevaluationServiceTestSuite) expectPeriodAndBase() {
	suite.mockPeriodRepo.On("FindPeriodByID", mock.Anything, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockCurrencyRepo.On("FindBaseCurrency", mock.Anything).Return(&suite.baseCurrency, nil).Once()
}

func (suite *RevaluationServiceTestSuite) rate(from string, value decimal.Decimal) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   suite.baseCurrency.CurrencyCode,
		Rate:             value,
		DateEffective:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_GainOnRateIncrease() {
	req := suite.request()
	suite.expectPeriodAndBase()

	// 1000 USD previously booked at rate 500 is now worth 510 per unit.
	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)
	suite.Len(result.Revaluations, 1)

	reval := result.Revaluations[0]
	suite.Equal("USD", reval.CurrencyCode)
	suite.True(reval.PreviousRate.Equal(decimal.NewFromInt(500)))
	suite.True(reval.CurrentRate.Equal(decimal.NewFromInt(510)))
	suite.True(reval.PreviousBaseValue.Equal(decimal.NewFromInt(500000)))
	suite.True(reval.CurrentBaseValue.Equal(decimal.NewFromInt(510000)))
	suite.True(reval.UnrealizedGain.Equal(decimal.NewFromInt(10000)))
	suite.True(reval.UnrealizedLoss.IsZero())
	suite.True(result.NetEffect.Equal(decimal.NewFromInt(10000)))

	suite.mockRevalRepo.AssertExpectations(suite.T())
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_LossOnRateDecrease() {
	req := suite.request()
	suite.expectPeriodAndBase()

	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(490)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)

	reval := result.Revaluations[0]
	suite.True(reval.UnrealizedGain.IsZero())
	suite.True(reval.UnrealizedLoss.Equal(decimal.NewFromInt(10000)))
	suite.True(result.NetEffect.Equal(decimal.NewFromInt(-10000)))
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_OpposingPositionsKeepBothSides() {
	req := suite.request()
	suite.expectPeriodAndBase()

	// Two USD positions move in opposite directions at rate 510: one carried
	// at 500000 gains 10000, one carried at 520000 loses 10000. The sides
	// must both survive instead of netting to zero.
	gainingAccountID := uuid.NewString()
	losingAccountID := uuid.NewString()
	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           gainingAccountID,
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
		{
			AccountID:           losingAccountID,
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(520000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(520)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)
	suite.Len(result.Revaluations, 1)

	reval := result.Revaluations[0]
	suite.Len(reval.Details, 2)
	suite.Equal(gainingAccountID, reval.Details[0].AccountID)
	suite.True(reval.Details[0].Effect.Equal(decimal.NewFromInt(10000)))
	suite.Equal(losingAccountID, reval.Details[1].AccountID)
	suite.True(reval.Details[1].Effect.Equal(decimal.NewFromInt(-10000)))

	suite.True(reval.UnrealizedGain.Equal(decimal.NewFromInt(10000)))
	suite.True(reval.UnrealizedLoss.Equal(decimal.NewFromInt(10000)))
	suite.True(result.TotalUnrealizedGain.Equal(decimal.NewFromInt(10000)))
	suite.True(result.TotalUnrealizedLoss.Equal(decimal.NewFromInt(10000)))
	suite.True(result.NetEffect.IsZero())
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_FirstRunHasNoEffect() {
	req := suite.request()
	suite.expectPeriodAndBase()

	// Never revalued: no booked base value and no previous rate, so the
	// position is valued at the current rate on both sides.
	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:     uuid.NewString(),
			CurrencyCode:  "USD",
			ForeignAmount: decimal.NewFromInt(1000),
			BaseAmount:    decimal.Zero,
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)

	reval := result.Revaluations[0]
	suite.True(reval.PreviousRate.Equal(decimal.NewFromInt(510)))
	suite.True(reval.UnrealizedGain.IsZero())
	suite.True(reval.UnrealizedLoss.IsZero())
	suite.True(result.NetEffect.IsZero())
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_NoExposureIsNoOp() {
	req := suite.request()
	suite.expectPeriodAndBase()
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return([]domain.ForeignCurrencyBalance{}, nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)
	suite.Empty(result.Revaluations)
	suite.True(result.NetEffect.IsZero())
	suite.mockRevalRepo.AssertNotCalled(suite.T(), "SaveRevaluations", mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_MissingRateSkipsCurrency() {
	req := suite.request()
	suite.expectPeriodAndBase()

	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "EUR",
			ForeignAmount:       decimal.NewFromInt(200),
			BaseAmount:          decimal.NewFromInt(160000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(800)),
		},
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "EUR", "NGN", req.RevaluationDate).Return(nil, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)
	suite.Equal([]string{"EUR"}, result.SkippedCurrencies)
	suite.Len(result.Revaluations, 1)
	suite.Equal("USD", result.Revaluations[0].CurrencyCode)
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_CurrenciesKeepFirstSeenOrder() {
	req := suite.request()
	suite.expectPeriodAndBase()

	// USD appears before EUR in the balances, so it is revalued first even
	// though EUR sorts ahead of it.
	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "EUR",
			ForeignAmount:       decimal.NewFromInt(200),
			BaseAmount:          decimal.NewFromInt(160000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(800)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "EUR", "NGN", req.RevaluationDate).
		Return(suite.rate("EUR", decimal.NewFromInt(810)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)
	suite.Len(result.Revaluations, 2)
	suite.Equal("USD", result.Revaluations[0].CurrencyCode)
	suite.Equal("EUR", result.Revaluations[1].CurrencyCode)
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_ClosedPeriod() {
	req := suite.request()
	closed := suite.openPeriod
	closed.IsClosed = true
	suite.mockPeriodRepo.On("FindPeriodByID", mock.Anything, suite.openPeriod.PeriodID).Return(&closed, nil).Once()

	_, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_NoBaseCurrency() {
	req := suite.request()
	suite.mockPeriodRepo.On("FindPeriodByID", mock.Anything, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockCurrencyRepo.On("FindBaseCurrency", mock.Anything).Return(nil, nil).Once()

	_, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_BooksGainEntry() {
	req := suite.request()
	req.BookPostings = true
	suite.expectPeriodAndBase()

	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()

	entryID := uuid.NewString()
	var bookReq dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("CreateEntry", mock.Anything, mock.Anything, suite.userID).
		Run(func(args mock.Arguments) {
			bookReq = args.Get(1).(dto.CreateJournalEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.Draft}, nil).Once()
	suite.mockJournalSvc.On("PostEntry", mock.Anything, entryID, suite.userID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.Posted}, nil).Once()

	_, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.NoError(err)

	// A net gain debits the adjustment account and credits the gain account.
	suite.Equal("REVAL-2025-06-30", bookReq.Reference)
	suite.Len(bookReq.Lines, 2)
	suite.Equal(suite.accounts.AdjustmentAccountID, bookReq.Lines[0].AccountID)
	suite.True(*bookReq.Lines[0].IsDebit)
	suite.Equal(suite.accounts.GainAccountID, bookReq.Lines[1].AccountID)
	suite.False(*bookReq.Lines[1].IsDebit)
	suite.True(bookReq.Lines[0].Amount.Equal(decimal.NewFromInt(10000)))

	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *RevaluationServiceTestSuite) TestRunRevaluation_BookingFailureFailsRun() {
	req := suite.request()
	req.BookPostings = true
	suite.expectPeriodAndBase()

	balances := []domain.ForeignCurrencyBalance{
		{
			AccountID:           uuid.NewString(),
			CurrencyCode:        "USD",
			ForeignAmount:       decimal.NewFromInt(1000),
			BaseAmount:          decimal.NewFromInt(500000),
			LastRevaluationRate: decimalPtr(decimal.NewFromInt(500)),
		},
	}
	suite.mockRevalRepo.On("GetForeignCurrencyBalances", mock.Anything, "NGN").Return(balances, nil).Once()
	suite.mockRateRepo.On("FindLatestRate", mock.Anything, "USD", "NGN", req.RevaluationDate).
		Return(suite.rate("USD", decimal.NewFromInt(510)), nil).Once()
	suite.mockRevalRepo.On("SaveRevaluations", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockJournalSvc.On("CreateEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrValidation).Once()

	_, err := suite.service.RunRevaluation(context.Background(), req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RevaluationServiceTestSuite) TestListRevaluations_NilBecomesEmptySlice() {
	suite.mockRevalRepo.On("ListRevaluations", mock.Anything, "period-1").Return(nil, nil).Once()

	revals, err := suite.service.ListRevaluations(context.Background(), "period-1")
	suite.NoError(err)
	suite.NotNil(revals)
	suite.Empty(revals)
}

func TestRevaluationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RevaluationServiceTestSuite))
}
