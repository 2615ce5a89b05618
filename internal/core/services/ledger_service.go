package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/corebanking/gl_backend/internal/core/ports/services"
	"github.com/corebanking/gl_backend/internal/dto"
	"github.com/corebanking/gl_backend/internal/utils/accounting"
)

// ledgerService applies posted journal entries to account balances and answers
// balance and activity queries.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalEntryRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalEntryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ApplyPostedEntry nets the entry's lines per account, validates every touched
// account, and persists the entry together with the signed balance deltas in a
// single repository transaction. The entry must already be POSTED; nothing is
// written when any account check fails.
func (s *ledgerService) ApplyPostedEntry(ctx context.Context, entry domain.JournalEntry, userID string) error {
	balanceChanges, err := s.computeBalanceChanges(ctx, entry)
	if err != nil {
		return err
	}

	if err := s.journalRepo.PostEntry(ctx, entry, balanceChanges); err != nil {
		s.LogError(ctx, err, "failed to persist posted entry", slog.String("entry_id", entry.EntryID))
		return fmt.Errorf("failed to persist posted entry %s: %w", entry.EntryID, err)
	}

	s.LogInfo(ctx, "entry applied to ledger",
		slog.String("entry_id", entry.EntryID),
		slog.Int("accounts_affected", len(balanceChanges)))
	return nil
}

// ApplyReversalEntry persists a posted reversal entry and flips its original
// entry to REVERSED within the same repository transaction, so a failure
// leaves the original untouched and still reversible.
func (s *ledgerService) ApplyReversalEntry(ctx context.Context, reversal domain.JournalEntry, userID string) error {
	if reversal.OriginalEntryID == nil {
		return fmt.Errorf("%w: reversal entry %s names no original entry", apperrors.ErrValidation, reversal.EntryID)
	}

	balanceChanges, err := s.computeBalanceChanges(ctx, reversal)
	if err != nil {
		return err
	}

	if err := s.journalRepo.PostReversal(ctx, reversal, balanceChanges, *reversal.OriginalEntryID); err != nil {
		s.LogError(ctx, err, "failed to persist reversal entry",
			slog.String("entry_id", reversal.EntryID), slog.String("original_entry_id", *reversal.OriginalEntryID))
		return fmt.Errorf("failed to persist reversal entry %s: %w", reversal.EntryID, err)
	}

	s.LogInfo(ctx, "reversal applied to ledger",
		slog.String("entry_id", reversal.EntryID),
		slog.String("original_entry_id", *reversal.OriginalEntryID),
		slog.Int("accounts_affected", len(balanceChanges)))
	return nil
}

// computeBalanceChanges nets the entry's lines per account, validates every
// touched account, and returns the signed balance deltas keyed by account ID.
func (s *ledgerService) computeBalanceChanges(ctx context.Context, entry domain.JournalEntry) (map[string]decimal.Decimal, error) {
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s must be POSTED to be applied, got %s", apperrors.ErrInvalidState, entry.EntryID, entry.Status)
	}

	nets, err := accounting.NetPostings(entry.Lines)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(nets))
	for _, net := range nets {
		accountIDs = append(accountIDs, net.AccountID)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch accounts for posting", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	balanceChanges := make(map[string]decimal.Decimal, len(nets))
	for _, net := range nets {
		account, found := accountsMap[net.AccountID]
		if !found {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", net.AccountID))
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, net.AccountID)
		}
		if net.Amount.CurrencyCode != account.CurrencyCode {
			return nil, fmt.Errorf("%w: entry lines in %s against account %s denominated in %s",
				apperrors.ErrCurrencyMismatch, net.Amount.CurrencyCode, net.AccountID, account.CurrencyCode)
		}

		// Accounts whose lines cancel out within the entry are left untouched.
		if net.Amount.IsZero() {
			s.LogDebug(ctx, "skipping zero net posting", slog.String("entry_id", entry.EntryID), slog.String("account_id", net.AccountID))
			continue
		}

		signed, err := accounting.SignedAmount(net.Amount.Amount, net.IsDebit, account.NormalBalance)
		if err != nil {
			return nil, err
		}
		balanceChanges[net.AccountID] = signed
	}
	return balanceChanges, nil
}

// GetAccountBalance returns the account's balance. With a nil asOf the stored
// balance is returned directly. With asOf set, the balance is reconstructed by
// rewinding every posted line dated strictly after the cutoff.
func (s *ledgerService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	balance := domain.AccountBalance{
		AccountID:     account.AccountID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Balance:       account.Balance,
		AsOf:          asOf,
	}
	if asOf == nil {
		return &balance, nil
	}

	lines, err := s.journalRepo.FindPostedLinesByAccountAfter(ctx, accountID, *asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load postings after %s for account %s: %w", asOf.Format(time.DateOnly), accountID, err)
	}

	rewound := *account
	for _, line := range lines {
		if err := rewound.ReversePosting(line.Amount, line.IsDebit); err != nil {
			return nil, fmt.Errorf("failed to rewind line %s: %w", line.LineID, err)
		}
	}
	balance.Balance = rewound.Balance
	return &balance, nil
}

// GetAccountActivity returns the posted lines touching the account within the
// inclusive date range, ordered by entry date.
func (s *ledgerService) GetAccountActivity(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountActivity, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: activity range end precedes start", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	lines, err := s.journalRepo.FindPostedLinesByAccountBetween(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity for account %s: %w", accountID, err)
	}
	if lines == nil {
		lines = []domain.AccountActivityLine{}
	}

	return &domain.AccountActivity{
		AccountID: accountID,
		StartDate: from,
		EndDate:   to,
		Lines:     lines,
	}, nil
}

// GetBalancesByClassification returns current balances of active accounts with
// the given classification.
func (s *ledgerService) GetBalancesByClassification(ctx context.Context, classification domain.AccountClassification) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccountsByClassification(ctx, classification)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by classification %s: %w", classification, err)
	}
	return toAccountBalances(accounts), nil
}

// GetBalancesByType returns current balances of active accounts with the given
// detailed account type.
func (s *ledgerService) GetBalancesByType(ctx context.Context, accountType domain.AccountType) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccountsByType(ctx, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by type %s: %w", accountType, err)
	}
	return toAccountBalances(accounts), nil
}

// ListAccountLines retrieves a paginated list of posting lines for an account.
func (s *ledgerService) ListAccountLines(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines for account %s: %w", accountID, err)
	}

	return &dto.ListLinesResponse{
		Lines:     dto.ToPostingLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

func toAccountBalances(accounts []domain.Account) []domain.AccountBalance {
	balances := make([]domain.AccountBalance, len(accounts))
	for i, acc := range accounts {
		balances[i] = domain.AccountBalance{
			AccountID:     acc.AccountID,
			AccountNumber: acc.AccountNumber,
			Name:          acc.Name,
			Balance:       acc.Balance,
		}
	}
	return balances
}
