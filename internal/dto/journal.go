package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// CreatePostingLineRequest defines one leg of a new journal entry.
type CreatePostingLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IsDebit     *bool           `json:"isDebit" binding:"required"` // Pointer so that false is distinguishable from absent
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a new journal entry.
// Entries are always created in DRAFT status; posting is a separate operation.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Reference   string                     `json:"reference"`
	Description string                     `json:"description"`
	Lines       []CreatePostingLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the data allowed for updating a draft entry.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time `json:"entryDate"`
	Reference   *string    `json:"reference"`
	Description *string    `json:"description"`
}

// PostingLineResponse defines the data returned for a posting line.
type PostingLineResponse struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	IsDebit      bool            `json:"isDebit"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryNumber       string                `json:"entryNumber"`
	EntryDate         time.Time             `json:"entryDate"`
	FinancialPeriodID string                `json:"financialPeriodID"`
	Status            domain.EntryStatus    `json:"status"`
	Reference         string                `json:"reference"`
	Description       string                `json:"description"`
	OriginalEntryID   *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID  *string               `json:"reversingEntryID,omitempty"`
	Lines             []PostingLineResponse `json:"lines"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToPostingLineResponse converts a domain.PostingLine to PostingLineResponse DTO.
func ToPostingLineResponse(l *domain.PostingLine) PostingLineResponse {
	return PostingLineResponse{
		LineID:       l.LineID,
		EntryID:      l.EntryID,
		AccountID:    l.AccountID,
		Amount:       l.Amount.Amount,
		IsDebit:      l.IsDebit,
		CurrencyCode: l.Amount.CurrencyCode,
		Description:  l.Description,
	}
}

// ToPostingLineResponses converts a slice of domain.PostingLine to []PostingLineResponse.
func ToPostingLineResponses(lines []domain.PostingLine) []PostingLineResponse {
	responses := make([]PostingLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = ToPostingLineResponse(&l)
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		FinancialPeriodID: e.FinancialPeriodID,
		Status:            e.Status,
		Reference:         e.Reference,
		Description:       e.Description,
		OriginalEntryID:   e.OriginalEntryID,
		ReversingEntryID:  e.ReversingEntryID,
		Lines:             ToPostingLineResponses(e.Lines),
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals,default=false"`
}

// ListEntriesResponse wraps a page of journal entries with the next page token.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListLinesParams defines query parameters for listing posting lines of an account.
type ListLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse wraps a page of posting lines with the next page token.
type ListLinesResponse struct {
	Lines     []PostingLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}
