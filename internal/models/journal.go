package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry as stored.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Pending  EntryStatus = "PENDING"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	EntryNumber       string      `json:"entryNumber"`
	EntryDate         time.Time   `json:"entryDate"`
	FinancialPeriodID string      `json:"financialPeriodID"`
	Status            EntryStatus `json:"status"`
	Reference         string      `json:"reference"`
	Description       string      `json:"description"`
	OriginalEntryID   *string     `json:"originalEntryID"`
	ReversingEntryID  *string     `json:"reversingEntryID"`
	AuditFields
}

// PostingLine is the database representation of one journal entry leg.
type PostingLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	IsDebit      bool            `json:"isDebit"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	AuditFields
}
