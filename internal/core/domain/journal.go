package domain

import (
	"fmt"
	"time"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry. Only POSTED entries
// affect account balances; a posted entry is immutable and reversal creates a
// new offsetting entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Pending  EntryStatus = "PENDING"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// PostingLine represents a single leg of a journal entry, affecting one account.
type PostingLine struct {
	LineID      string `json:"lineID"`  // Primary Key (UUID)
	EntryID     string `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountID   string `json:"accountID"`
	Amount      Money  `json:"amount"` // Positive magnitude
	IsDebit     bool   `json:"isDebit"`
	Description string `json:"description"`
	AuditFields
}

// JournalEntry represents a single, balanced financial event composed of
// multiple posting lines.
type JournalEntry struct {
	EntryID           string        `json:"entryID"`     // Primary Key (UUID)
	EntryNumber       string        `json:"entryNumber"` // Human-facing sequence, e.g. JE-2026-000123
	EntryDate         time.Time     `json:"entryDate"`
	FinancialPeriodID string        `json:"financialPeriodID"`
	Status            EntryStatus   `json:"status"`
	Lines             []PostingLine `json:"lines,omitempty"`
	Reference         string        `json:"reference"`
	Description       string        `json:"description"`
	OriginalEntryID   *string       `json:"originalEntryID,omitempty"`  // Set on reversing entries
	ReversingEntryID  *string       `json:"reversingEntryID,omitempty"` // Set on reversed originals
	AuditFields
}

// Validate checks the structural and double-entry invariants of the entry:
// at least two lines across at least two accounts, positive amounts, and
// per-currency strict equality of debit and credit sums.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two posting lines", apperrors.ErrValidation)
	}

	accounts := make(map[string]struct{}, len(e.Lines))
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)

	for _, line := range e.Lines {
		if line.Amount.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, line.AccountID)
		}
		accounts[line.AccountID] = struct{}{}

		cc := line.Amount.CurrencyCode
		if line.IsDebit {
			debits[cc] = debits[cc].Add(line.Amount.Amount)
		} else {
			credits[cc] = credits[cc].Add(line.Amount.Amount)
		}
	}

	if len(accounts) < 2 {
		return fmt.Errorf("%w: entry must affect at least two different accounts", apperrors.ErrValidation)
	}

	// Strict per-currency equality. Financial correctness requires exact
	// balance, never a tolerance.
	for cc, debitSum := range debits {
		if !debitSum.Equal(credits[cc]) {
			return fmt.Errorf("%w: %s debits %s vs credits %s",
				apperrors.ErrNotBalanced, cc, debitSum.String(), credits[cc].String())
		}
	}
	for cc, creditSum := range credits {
		if _, ok := debits[cc]; !ok && !creditSum.IsZero() {
			return fmt.Errorf("%w: %s has credits %s and no debits",
				apperrors.ErrNotBalanced, cc, creditSum.String())
		}
	}

	return nil
}

// MarkPosted transitions the entry to POSTED after validating it balances.
// Only Draft and Pending entries may be posted.
func (e *JournalEntry) MarkPosted() error {
	if e.Status != Draft && e.Status != Pending {
		return fmt.Errorf("%w: cannot post entry %s in status %s", apperrors.ErrInvalidState, e.EntryID, e.Status)
	}
	if err := e.Validate(); err != nil {
		return err
	}
	e.Status = Posted
	return nil
}

// LinesForAccount returns the entry's lines touching the given account, in
// entry order.
func (e *JournalEntry) LinesForAccount(accountID string) []PostingLine {
	var lines []PostingLine
	for _, line := range e.Lines {
		if line.AccountID == accountID {
			lines = append(lines, line)
		}
	}
	return lines
}
