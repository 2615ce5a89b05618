package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
)

// journalService provides journal entry lifecycle operations: drafting,
// posting and reversal. Balance application is delegated to the ledger service.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.FinancialPeriodRepositoryFacade
	ledgerSvc   portssvc.LedgerPosterSvc
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.FinancialPeriodRepositoryFacade,
	ledgerSvc portssvc.LedgerPosterSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// newEntryNumber builds the human-facing entry number for a new entry.
func newEntryNumber(entryDate time.Time, entryID string) string {
	short := strings.ReplaceAll(entryID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("JE-%d-%s", entryDate.Year(), strings.ToUpper(short))
}

// resolveOpenPeriod finds the financial period containing the date and ensures
// it is still open for posting.
func (s *journalService) resolveOpenPeriod(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve financial period for %s: %w", date.Format(time.DateOnly), err)
	}
	if period == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no financial period covers %s", date.Format(time.DateOnly)))
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: financial period %s is closed", apperrors.ErrInvalidState, period.PeriodID)
	}
	return period, nil
}

// CreateEntry persists a new journal entry in DRAFT status. Every line's
// currency is taken from its account's denomination, and the entry must pass
// the double-entry balance check before it is saved.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: entry must have at least two posting lines", apperrors.ErrValidation)
	}

	period, err := s.resolveOpenPeriod(ctx, req.EntryDate)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		if lineReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "failed to fetch accounts for entry creation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.PostingLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		account, found := accountsMap[lineReq.AccountID]
		if !found {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", lineReq.AccountID))
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, lineReq.AccountID)
		}

		lines[i] = domain.PostingLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			Amount:      domain.NewMoney(lineReq.Amount, account.CurrencyCode),
			IsDebit:     lineReq.IsDebit != nil && *lineReq.IsDebit,
			Description: lineReq.Description,
			AuditFields: audit,
		}
	}

	entry := domain.JournalEntry{
		EntryID:           entryID,
		EntryNumber:       newEntryNumber(req.EntryDate, entryID),
		EntryDate:         req.EntryDate,
		FinancialPeriodID: period.PeriodID,
		Status:            domain.Draft,
		Lines:             lines,
		Reference:         req.Reference,
		Description:       req.Description,
		AuditFields:       audit,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "failed to save journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "journal entry created", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	if entry == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = dto.ToJournalEntryResponse(&e)
	}
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// UpdateEntry updates header details of a draft entry. Posted and reversed
// entries are immutable.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft && entry.Status != domain.Pending {
		return nil, fmt.Errorf("%w: cannot update entry %s in status %s", apperrors.ErrInvalidState, entryID, entry.Status)
	}

	if req.EntryDate != nil {
		period, err := s.resolveOpenPeriod(ctx, *req.EntryDate)
		if err != nil {
			return nil, err
		}
		entry.EntryDate = *req.EntryDate
		entry.FinancialPeriodID = period.PeriodID
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// PostEntry validates a draft entry and applies it to the ledger. The entry's
// financial period must still be open.
func (s *journalService) PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.FinancialPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve financial period %s: %w", entry.FinancialPeriodID, err)
	}
	if period == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("financial period %s not found", entry.FinancialPeriodID))
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: financial period %s is closed", apperrors.ErrInvalidState, period.PeriodID)
	}

	if err := entry.MarkPosted(); err != nil {
		return nil, err
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = requestingUserID

	if err := s.ledgerSvc.ApplyPostedEntry(ctx, *entry, requestingUserID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "journal entry posted", slog.String("entry_id", entryID))
	return entry, nil
}

// ReverseEntry creates and posts an offsetting entry for a posted entry, then
// links the pair. The original entry ends in REVERSED status; the ledger keeps
// both entries for the audit trail.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: only posted entries can be reversed, entry %s is %s", apperrors.ErrInvalidState, entryID, original.Status)
	}
	if original.ReversingEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is already reversed by %s", apperrors.ErrConflict, entryID, *original.ReversingEntryID)
	}

	now := time.Now().UTC()
	period, err := s.resolveOpenPeriod(ctx, now)
	if err != nil {
		return nil, err
	}

	reversalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	lines := make([]domain.PostingLine, len(original.Lines))
	for i, line := range original.Lines {
		lines[i] = domain.PostingLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   line.AccountID,
			Amount:      line.Amount,
			IsDebit:     !line.IsDebit,
			Description: line.Description,
			AuditFields: audit,
		}
	}

	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:           reversalID,
		EntryNumber:       newEntryNumber(now, reversalID),
		EntryDate:         now,
		FinancialPeriodID: period.PeriodID,
		Status:            domain.Draft,
		Lines:             lines,
		Reference:         original.Reference,
		Description:       fmt.Sprintf("Reversal of %s", original.EntryNumber),
		OriginalEntryID:   &originalID,
		AuditFields:       audit,
	}

	if err := reversal.MarkPosted(); err != nil {
		return nil, err
	}
	// The reversal post and the original's status flip commit together.
	if err := s.ledgerSvc.ApplyReversalEntry(ctx, reversal, requestingUserID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "journal entry reversed",
		slog.String("entry_id", originalID), slog.String("reversal_id", reversalID))
	return &reversal, nil
}

// uniqueStrings removes duplicates while keeping first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
