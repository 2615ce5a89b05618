package services

import (
	"context"
	"time"

	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/dto"
)

// LedgerPosterSvc defines the operation that applies a posted entry to account balances
type LedgerPosterSvc interface {
	// ApplyPostedEntry nets the entry's lines per account and persists the entry
	// together with the resulting balance deltas in one transaction.
	// The entry must already be in POSTED status.
	ApplyPostedEntry(ctx context.Context, entry domain.JournalEntry, userID string) error

	// ApplyReversalEntry persists a posted reversal entry and marks its original
	// entry REVERSED in the same transaction. The reversal must be in POSTED
	// status and carry its OriginalEntryID.
	ApplyReversalEntry(ctx context.Context, reversal domain.JournalEntry, userID string) error
}

// BalanceReaderSvc defines balance and activity queries against the ledger
type BalanceReaderSvc interface {
	// GetAccountBalance returns the account's balance. When asOf is non-nil the
	// balance is reconstructed by rewinding posted entries dated after asOf.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error)

	// GetAccountActivity returns the posted lines touching the account within
	// the inclusive date range.
	GetAccountActivity(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountActivity, error)

	// GetBalancesByClassification returns current balances of active accounts
	// with the given classification.
	GetBalancesByClassification(ctx context.Context, classification domain.AccountClassification) ([]domain.AccountBalance, error)

	// GetBalancesByType returns current balances of active accounts with the
	// given detailed account type.
	GetBalancesByType(ctx context.Context, accountType domain.AccountType) ([]domain.AccountBalance, error)

	// ListAccountLines retrieves a paginated list of posting lines for an account.
	ListAccountLines(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// LedgerSvcFacade combines posting and balance query interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerPosterSvc
	BalanceReaderSvc
}
