package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	"github.com/corebanking/gl_backend/internal/models"
	"github.com/corebanking/gl_backend/internal/utils/mapping"
	"github.com/corebanking/gl_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_number, entry_date, financial_period_id, status, reference, description, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, amount, is_debit, currency_code, description, created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalEntryRepository persists journal entries and their posting lines.
// Posting an entry and moving account balances happen in one transaction here;
// the ledger stays consistent even if the process dies mid-post.
type PgxJournalEntryRepository struct {
	BaseRepository
}

// NewPgxJournalEntryRepository creates a new repository for journal entry data.
func NewPgxJournalEntryRepository(pool *pgxpool.Pool) *PgxJournalEntryRepository {
	return &PgxJournalEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	var reference, description sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.FinancialPeriodID,
		&m.Status,
		&reference,
		&description,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.Reference = reference.String
	m.Description = description.String
	return &m, nil
}

func scanLine(row pgx.Row) (*models.PostingLine, error) {
	var m models.PostingLine
	var description sql.NullString
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Amount,
		&m.IsDebit,
		&m.CurrencyCode,
		&description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	return &m, nil
}

func collectLines(rows pgx.Rows) ([]models.PostingLine, error) {
	defer rows.Close()
	lines := []models.PostingLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting line row: %w", err)
		}
		lines = append(lines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting line rows: %w", err)
	}
	return lines, nil
}

// insertEntryTx upserts the entry header inside a transaction. On conflict the
// status and reversal links are refreshed so posting an already-saved draft is
// a plain status transition.
func (r *PgxJournalEntryRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (entry_id) DO UPDATE
		SET status = EXCLUDED.status,
			original_entry_id = EXCLUDED.original_entry_id,
			reversing_entry_id = EXCLUDED.reversing_entry_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.FinancialPeriodID,
		m.Status,
		m.Reference,
		m.Description,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

// insertLinesTx inserts the entry's lines inside a transaction. Lines already
// present (from the draft save) are left untouched; posted lines never change.
func (r *PgxJournalEntryRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, lines []models.PostingLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO posting_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (line_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.LineID,
			l.EntryID,
			l.AccountID,
			l.Amount,
			l.IsDebit,
			l.CurrencyCode,
			l.Description,
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert posting line %s: %w", lines[i].LineID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close posting line batch: %w", err)
	}
	return batchErr
}

// SaveEntry persists a new journal entry and its posting lines atomically.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.insertEntryTx(ctx, tx, mapping.JournalEntryToModel(entry)); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, mapping.PostingLinesToModel(entry.Lines)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry with its lines. Returns nil when not found.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLineModelsByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.JournalEntryToDomain(*m, lines)
	return &entry, nil
}

func (r *PgxJournalEntryRepository) findLineModelsByEntryID(ctx context.Context, entryID string) ([]models.PostingLine, error) {
	query := `SELECT ` + lineColumns + ` FROM posting_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	return collectLines(rows)
}

// ListEntries retrieves a page of journal entries using keyset pagination on
// (entry_date, created_at) descending. Reversal entries are hidden unless
// includeReversals is set.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	if !includeReversals {
		query += ` AND original_entry_id IS NULL`
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, entryDate, createdAt)
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entryModels := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entryModels = append(entryModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var newNextToken *string
	if len(entryModels) > limit {
		last := entryModels[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
		entryModels = entryModels[:limit]
	}

	entryIDs := make([]string, len(entryModels))
	for i, m := range entryModels {
		entryIDs[i] = m.EntryID
	}
	linesByEntry, err := r.findLineModelsByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(entryModels))
	for i, m := range entryModels {
		entries[i] = mapping.JournalEntryToDomain(m, linesByEntry[m.EntryID])
	}
	return entries, newNextToken, nil
}

// UpdateEntry updates header fields of a draft or pending entry.
func (r *PgxJournalEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.JournalEntryToModel(entry)

	query := `
		UPDATE journal_entries
		SET entry_date = $2, financial_period_id = $3, reference = $4, description = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND status IN ('DRAFT', 'PENDING');
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.FinancialPeriodID,
		m.Reference,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s not found or not editable", apperrors.ErrInvalidState, m.EntryID)
	}
	return nil
}

// PostEntry persists the posted entry (header and any unsaved lines), locks
// the affected accounts and applies the signed balance deltas, all in one
// transaction.
func (r *PgxJournalEntryRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.postEntryTx(ctx, tx, entry, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// PostReversal posts the reversal entry and marks the original entry REVERSED
// with the reversal linked, all in one transaction. The original must still be
// POSTED with no reversal link; a concurrent reversal loses with a conflict.
func (r *PgxJournalEntryRepository) PostReversal(ctx context.Context, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal, originalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.postEntryTx(ctx, tx, reversal, balanceChanges); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = 'POSTED' AND reversing_entry_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, originalEntryID, reversal.EntryID, reversal.LastUpdatedAt, reversal.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not posted or already reversed", apperrors.ErrConflict, originalEntryID)
	}
	return r.Commit(ctx, tx)
}

// postEntryTx writes the entry header and lines and applies the balance deltas
// within the supplied transaction.
func (r *PgxJournalEntryRepository) postEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	if err := r.insertEntryTx(ctx, tx, mapping.JournalEntryToModel(entry)); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, mapping.PostingLinesToModel(entry.Lines)); err != nil {
		return err
	}

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for id := range balanceChanges {
			accountIDs = append(accountIDs, id)
		}

		// Row locks keep concurrent posts from interleaving balance updates.
		lockQuery := `SELECT account_id FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`
		rows, err := tx.Query(ctx, lockQuery, accountIDs)
		if err != nil {
			return fmt.Errorf("failed to lock accounts for posting: %w", err)
		}
		locked := 0
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan locked account id: %w", err)
			}
			locked++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating locked accounts: %w", err)
		}
		if locked != len(accountIDs) {
			return fmt.Errorf("%w: could not lock all accounts for entry %s", apperrors.ErrNotFound, entry.EntryID)
		}

		updateQuery := `
			UPDATE accounts
			SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;
		`
		now := entry.LastUpdatedAt
		batch := &pgx.Batch{}
		for accountID, delta := range balanceChanges {
			batch.Queue(updateQuery, accountID, delta, now, entry.LastUpdatedBy)
		}
		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to apply balance delta: %w", err)
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close balance delta batch: %w", err)
		}
		if batchErr != nil {
			return batchErr
		}
	}

	return nil
}

// FindLinesByEntryID retrieves all posting lines of one entry.
func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.PostingLine, error) {
	lineModels, err := r.findLineModelsByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return mapping.PostingLinesToDomain(lineModels), nil
}

// FindLinesByEntryIDs retrieves posting lines for multiple entries, grouped by entry ID.
func (r *PgxJournalEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.PostingLine, error) {
	lineModels, err := r.findLineModelsByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]domain.PostingLine, len(lineModels))
	for entryID, ms := range lineModels {
		out[entryID] = mapping.PostingLinesToDomain(ms)
	}
	return out, nil
}

func (r *PgxJournalEntryRepository) findLineModelsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]models.PostingLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]models.PostingLine{}, nil
	}
	query := `SELECT ` + lineColumns + ` FROM posting_lines WHERE entry_id = ANY($1) ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entries: %w", err)
	}
	lines, err := collectLines(rows)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.PostingLine)
	for _, l := range lines {
		grouped[l.EntryID] = append(grouped[l.EntryID], l)
	}
	return grouped, nil
}

// ListLinesByAccountID retrieves a page of an account's posting lines, newest
// entry first, using keyset pagination on (entry_date, line created_at).
func (r *PgxJournalEntryRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.PostingLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{accountID}
	query := `
		SELECT pl.line_id, pl.entry_id, pl.account_id, pl.amount, pl.is_debit, pl.currency_code, pl.description,
			pl.created_at, pl.created_by, pl.last_updated_at, pl.last_updated_by, je.entry_date
		FROM posting_lines pl
		JOIN journal_entries je ON je.entry_id = pl.entry_id
		WHERE pl.account_id = $1`
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, entryDate, createdAt)
		query += fmt.Sprintf(` AND (je.entry_date, pl.created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY je.entry_date DESC, pl.created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.PostingLine
		entryDate time.Time
	}
	collected := []lineWithDate{}
	for rows.Next() {
		var m models.PostingLine
		var description sql.NullString
		var entryDate time.Time
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Amount,
			&m.IsDebit,
			&m.CurrencyCode,
			&description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&entryDate,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan posting line row: %w", err)
		}
		m.Description = description.String
		collected = append(collected, lineWithDate{line: m, entryDate: entryDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating posting line rows: %w", err)
	}

	var newNextToken *string
	if len(collected) > limit {
		last := collected[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		newNextToken = &token
		collected = collected[:limit]
	}

	lines := make([]domain.PostingLine, len(collected))
	for i, c := range collected {
		lines[i] = mapping.PostingLineToDomain(c.line)
	}
	return lines, newNextToken, nil
}

// FindPostedLinesByAccountAfter retrieves the posted lines of an account whose
// entry date is strictly after the cutoff. Used to rewind a balance.
func (r *PgxJournalEntryRepository) FindPostedLinesByAccountAfter(ctx context.Context, accountID string, after time.Time) ([]domain.PostingLine, error) {
	query := `
		SELECT pl.line_id, pl.entry_id, pl.account_id, pl.amount, pl.is_debit, pl.currency_code, pl.description,
			pl.created_at, pl.created_by, pl.last_updated_at, pl.last_updated_by
		FROM posting_lines pl
		JOIN journal_entries je ON je.entry_id = pl.entry_id
		WHERE pl.account_id = $1
			AND je.status IN ('POSTED', 'REVERSED')
			AND je.entry_date > $2
		ORDER BY je.entry_date DESC, pl.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines after %s for account %s: %w", after.Format(time.DateOnly), accountID, err)
	}
	lineModels, err := collectLines(rows)
	if err != nil {
		return nil, err
	}
	return mapping.PostingLinesToDomain(lineModels), nil
}

// FindPostedLinesByAccountBetween retrieves the account's posted activity
// within the inclusive date range, with entry headers projected in.
func (r *PgxJournalEntryRepository) FindPostedLinesByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.AccountActivityLine, error) {
	query := `
		SELECT je.entry_id, je.entry_number, je.entry_date, COALESCE(je.description, ''),
			CASE WHEN pl.is_debit THEN pl.amount ELSE 0 END,
			CASE WHEN pl.is_debit THEN 0 ELSE pl.amount END,
			pl.currency_code
		FROM posting_lines pl
		JOIN journal_entries je ON je.entry_id = pl.entry_id
		WHERE pl.account_id = $1
			AND je.status IN ('POSTED', 'REVERSED')
			AND je.entry_date >= $2
			AND je.entry_date <= $3
		ORDER BY je.entry_date, je.entry_number, pl.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.AccountActivityLine{}
	for rows.Next() {
		var l domain.AccountActivityLine
		if err := rows.Scan(&l.EntryID, &l.EntryNumber, &l.EntryDate, &l.Description, &l.DebitAmount, &l.CreditAmount, &l.CurrencyCode); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return lines, nil
}
