package mapping

import (
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/models"
)

// JournalEntryToDomain converts a journal entry model plus its line models
// to the domain form.
func JournalEntryToDomain(m models.JournalEntry, lines []models.PostingLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		FinancialPeriodID: m.FinancialPeriodID,
		Status:            domain.EntryStatus(m.Status),
		Lines:             PostingLinesToDomain(lines),
		Reference:         m.Reference,
		Description:       m.Description,
		OriginalEntryID:   m.OriginalEntryID,
		ReversingEntryID:  m.ReversingEntryID,
		AuditFields:       auditToDomain(m.AuditFields),
	}
}

// JournalEntryToModel converts a domain journal entry header to its database
// form. Lines are mapped separately via PostingLinesToModel.
func JournalEntryToModel(e domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		FinancialPeriodID: e.FinancialPeriodID,
		Status:            models.EntryStatus(e.Status),
		Reference:         e.Reference,
		Description:       e.Description,
		OriginalEntryID:   e.OriginalEntryID,
		ReversingEntryID:  e.ReversingEntryID,
		AuditFields:       auditToModel(e.AuditFields),
	}
}

// PostingLineToDomain converts a posting line model to the domain form.
func PostingLineToDomain(m models.PostingLine) domain.PostingLine {
	return domain.PostingLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Amount:      domain.NewMoney(m.Amount, m.CurrencyCode),
		IsDebit:     m.IsDebit,
		Description: m.Description,
		AuditFields: auditToDomain(m.AuditFields),
	}
}

// PostingLinesToDomain converts a slice of posting line models.
func PostingLinesToDomain(ms []models.PostingLine) []domain.PostingLine {
	out := make([]domain.PostingLine, 0, len(ms))
	for _, m := range ms {
		out = append(out, PostingLineToDomain(m))
	}
	return out
}

// PostingLineToModel converts a domain posting line to its database form.
func PostingLineToModel(l domain.PostingLine) models.PostingLine {
	return models.PostingLine{
		LineID:       l.LineID,
		EntryID:      l.EntryID,
		AccountID:    l.AccountID,
		Amount:       l.Amount.Amount,
		IsDebit:      l.IsDebit,
		CurrencyCode: l.Amount.CurrencyCode,
		Description:  l.Description,
		AuditFields:  auditToModel(l.AuditFields),
	}
}

// PostingLinesToModel converts a slice of domain posting lines.
func PostingLinesToModel(ls []domain.PostingLine) []models.PostingLine {
	out := make([]models.PostingLine, 0, len(ls))
	for _, l := range ls {
		out = append(out, PostingLineToModel(l))
	}
	return out
}
