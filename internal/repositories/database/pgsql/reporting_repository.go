package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
)

// PgxReportingRepository answers aggregate report queries from posted ledger
// data. Reports are computed from posting lines rather than carried balances
// so historical dates work without snapshots.
type PgxReportingRepository struct {
	BaseRepository
}

// NewPgxReportingRepository creates a new repository for report data.
func NewPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData aggregates each account's posted debits and credits up
// to the report date. Accounts with no activity are omitted.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.classification,
			COALESCE(SUM(CASE WHEN pl.is_debit THEN pl.amount ELSE 0 END), 0) AS debits,
			COALESCE(SUM(CASE WHEN pl.is_debit THEN 0 ELSE pl.amount END), 0) AS credits
		FROM accounts a
		JOIN posting_lines pl ON pl.account_id = a.account_id
		JOIN journal_entries je ON je.entry_id = pl.entry_id
		WHERE je.status IN ('POSTED', 'REVERSED') AND je.entry_date <= $1
		GROUP BY a.account_id, a.name, a.classification
		ORDER BY a.account_number;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	out := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var debits, credits decimal.Decimal
		if err := rows.Scan(&row.AccountID, &row.AccountName, &row.Classification, &debits, &credits); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		// Present the net on the account's heavier side.
		net := debits.Sub(credits)
		if net.IsNegative() {
			row.Credit = net.Neg()
		} else {
			row.Debit = net
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return out, nil
}

// GetProfitAndLossData aggregates income and expense account movements over
// the period. Income is reported credit-positive, expenses debit-positive.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	income, err := r.aggregateByClassification(ctx, domain.Income, `
		COALESCE(SUM(CASE WHEN pl.is_debit THEN -pl.amount ELSE pl.amount END), 0)`, &from, to)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := r.aggregateByClassification(ctx, domain.Expense, `
		COALESCE(SUM(CASE WHEN pl.is_debit THEN pl.amount ELSE -pl.amount END), 0)`, &from, to)
	if err != nil {
		return nil, nil, err
	}
	return income, expenses, nil
}

// GetBalanceSheetData aggregates asset, liability and equity positions as of
// the report date.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	debitNet := `COALESCE(SUM(CASE WHEN pl.is_debit THEN pl.amount ELSE -pl.amount END), 0)`
	creditNet := `COALESCE(SUM(CASE WHEN pl.is_debit THEN -pl.amount ELSE pl.amount END), 0)`

	assets, err := r.aggregateByClassification(ctx, domain.Asset, debitNet, nil, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	liabilities, err := r.aggregateByClassification(ctx, domain.Liability, creditNet, nil, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	equity, err := r.aggregateByClassification(ctx, domain.Equity, creditNet, nil, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	return assets, liabilities, equity, nil
}

// aggregateByClassification sums posted movement per account of one
// classification. A nil from bounds the window only by the end date.
func (r *PgxReportingRepository) aggregateByClassification(ctx context.Context, classification domain.AccountClassification, netExpr string, from *time.Time, to time.Time) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.name, ` + netExpr + ` AS net
		FROM accounts a
		JOIN posting_lines pl ON pl.account_id = a.account_id
		JOIN journal_entries je ON je.entry_id = pl.entry_id
		WHERE a.classification = $1
			AND je.status IN ('POSTED', 'REVERSED')
			AND je.entry_date <= $2`
	args := []any{string(classification), to}
	if from != nil {
		args = append(args, *from)
		query += ` AND je.entry_date >= $3`
	}
	query += `
		GROUP BY a.account_id, a.name, a.account_number
		ORDER BY a.account_number;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s aggregates: %w", classification, err)
	}
	defer rows.Close()

	out := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.Name, &a.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan %s aggregate row: %w", classification, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s aggregate rows: %w", classification, err)
	}
	return out, nil
}
