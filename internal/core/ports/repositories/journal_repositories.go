package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry, including its lines, by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a new journal entry and its posting lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry updates non-status fields of a journal entry (like description, date).
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// PostEntry marks an entry as posted and applies the net balance deltas to the
	// affected accounts, all within a single database transaction.
	PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// PostReversal posts the reversal entry with its balance deltas and marks the
	// original entry REVERSED with the reversal linked, all within a single
	// database transaction. Fails with a conflict when the original is no longer
	// POSTED or already carries a reversal link.
	PostReversal(ctx context.Context, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal, originalEntryID string) error
}

// PostingLineReader defines read operations for posting line data
type PostingLineReader interface {
	// FindLinesByEntryID retrieves all posting lines associated with a single entry ID.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.PostingLine, error)

	// FindLinesByEntryIDs retrieves posting lines for multiple entry IDs, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.PostingLine, error)

	// ListLinesByAccountID retrieves a paginated list of posting lines for a specific account
	// using token-based pagination.
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.PostingLine, *string, error)

	// FindPostedLinesByAccountAfter retrieves posting lines of posted entries for an account
	// whose entry date is strictly after the given cutoff. Used to rewind a balance.
	FindPostedLinesByAccountAfter(ctx context.Context, accountID string, after time.Time) ([]domain.PostingLine, error)

	// FindPostedLinesByAccountBetween retrieves posting lines of posted entries for an account
	// within the inclusive date range, together with their entry headers.
	FindPostedLinesByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.AccountActivityLine, error)
}

// JournalEntryRepositoryFacade combines all journal-entry-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	PostingLineReader
}

// JournalEntryRepositoryWithTx extends JournalEntryRepositoryFacade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
