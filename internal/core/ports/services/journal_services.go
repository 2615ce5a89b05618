package services

import (
	"context"

	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entry data
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry, with its lines, by ID.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalEntryWriterSvc defines write operations for journal entry data
type JournalEntryWriterSvc interface {
	// CreateEntry persists a new journal entry in DRAFT status.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry updates header details of a draft entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// PostEntry validates a draft entry and applies it to the ledger.
	PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a reversal entry for a posted entry.
	ReverseEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-entry-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}
