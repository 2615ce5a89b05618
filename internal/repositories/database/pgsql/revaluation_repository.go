package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	"github.com/corebanking/gl_backend/internal/models"
	"github.com/corebanking/gl_backend/internal/utils/mapping"
)

const revaluationColumns = `revaluation_id, financial_period_id, revaluation_date, currency_code, previous_rate, current_rate, foreign_amount, previous_base_value, current_base_value, unrealized_gain, unrealized_loss, created_at, created_by, last_updated_at, last_updated_by`

// PgxRevaluationRepository persists currency revaluation records and reads the
// foreign currency exposure they are computed from.
type PgxRevaluationRepository struct {
	BaseRepository
}

// NewPgxRevaluationRepository creates a new repository for revaluation data.
func NewPgxRevaluationRepository(pool *pgxpool.Pool) *PgxRevaluationRepository {
	return &PgxRevaluationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RevaluationRepositoryFacade = (*PgxRevaluationRepository)(nil)

// GetForeignCurrencyBalances retrieves the nonzero balances of active accounts
// denominated in a currency other than the base, with the booked base value and
// the rate each account was last revalued at.
func (r *PgxRevaluationRepository) GetForeignCurrencyBalances(ctx context.Context, baseCurrencyCode string) ([]domain.ForeignCurrencyBalance, error) {
	query := `
		SELECT account_id, currency_code, balance, COALESCE(base_value, 0), last_revaluation_rate
		FROM accounts
		WHERE is_active = TRUE AND currency_code <> $1 AND balance <> 0
		ORDER BY currency_code, account_id;
	`
	rows, err := r.Pool.Query(ctx, query, baseCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign currency balances: %w", err)
	}
	defer rows.Close()

	balances := []domain.ForeignCurrencyBalance{}
	for rows.Next() {
		var b domain.ForeignCurrencyBalance
		var lastRate *decimal.Decimal
		if err := rows.Scan(&b.AccountID, &b.CurrencyCode, &b.ForeignAmount, &b.BaseAmount, &lastRate); err != nil {
			return nil, fmt.Errorf("failed to scan foreign currency balance row: %w", err)
		}
		b.LastRevaluationRate = lastRate
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign currency balance rows: %w", err)
	}
	return balances, nil
}

// SaveRevaluations persists a batch of revaluation records with their details
// and stamps the affected accounts with the new rate and base value, all in
// one transaction.
func (r *PgxRevaluationRepository) SaveRevaluations(ctx context.Context, revaluations []domain.CurrencyRevaluation) error {
	if len(revaluations) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	headerQuery := `
		INSERT INTO currency_revaluations (` + revaluationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	detailQuery := `
		INSERT INTO account_revaluation_details (revaluation_id, account_id, foreign_amount, previous_base_value, current_base_value, effect)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	stampQuery := `
		UPDATE accounts
		SET last_revaluation_rate = $2, base_value = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	for _, reval := range revaluations {
		m := mapping.RevaluationToModel(reval)
		batch.Queue(headerQuery,
			m.RevaluationID,
			m.FinancialPeriodID,
			m.RevaluationDate,
			m.CurrencyCode,
			m.PreviousRate,
			m.CurrentRate,
			m.ForeignAmount,
			m.PreviousBaseValue,
			m.CurrentBaseValue,
			m.UnrealizedGain,
			m.UnrealizedLoss,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		for _, d := range mapping.RevaluationDetailsToModel(m.RevaluationID, reval.Details) {
			batch.Queue(detailQuery,
				d.RevaluationID,
				d.AccountID,
				d.ForeignAmount,
				d.PreviousBaseValue,
				d.CurrentBaseValue,
				d.Effect,
			)
			batch.Queue(stampQuery, d.AccountID, m.CurrentRate, d.CurrentBaseValue, m.LastUpdatedAt, m.LastUpdatedBy)
		}
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to save revaluation batch: %w", err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close revaluation batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}

// ListRevaluations retrieves the revaluation records of a financial period with
// their per-account details, newest first.
func (r *PgxRevaluationRepository) ListRevaluations(ctx context.Context, financialPeriodID string) ([]domain.CurrencyRevaluation, error) {
	query := `
		SELECT ` + revaluationColumns + `
		FROM currency_revaluations
		WHERE financial_period_id = $1
		ORDER BY revaluation_date DESC, currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, financialPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revaluations for period %s: %w", financialPeriodID, err)
	}
	defer rows.Close()

	headers := []models.CurrencyRevaluation{}
	for rows.Next() {
		var m models.CurrencyRevaluation
		err := rows.Scan(
			&m.RevaluationID,
			&m.FinancialPeriodID,
			&m.RevaluationDate,
			&m.CurrencyCode,
			&m.PreviousRate,
			&m.CurrentRate,
			&m.ForeignAmount,
			&m.PreviousBaseValue,
			&m.CurrentBaseValue,
			&m.UnrealizedGain,
			&m.UnrealizedLoss,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revaluation row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revaluation rows: %w", err)
	}
	if len(headers) == 0 {
		return []domain.CurrencyRevaluation{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.RevaluationID
	}
	details, err := r.findDetailsByRevaluationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CurrencyRevaluation, len(headers))
	for i, h := range headers {
		out[i] = mapping.RevaluationToDomain(h, details[h.RevaluationID])
	}
	return out, nil
}

func (r *PgxRevaluationRepository) findDetailsByRevaluationIDs(ctx context.Context, revaluationIDs []string) (map[string][]models.AccountRevaluationDetail, error) {
	query := `
		SELECT revaluation_id, account_id, foreign_amount, previous_base_value, current_base_value, effect
		FROM account_revaluation_details
		WHERE revaluation_id = ANY($1)
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, revaluationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query revaluation details: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]models.AccountRevaluationDetail)
	for rows.Next() {
		var d models.AccountRevaluationDetail
		if err := rows.Scan(&d.RevaluationID, &d.AccountID, &d.ForeignAmount, &d.PreviousBaseValue, &d.CurrentBaseValue, &d.Effect); err != nil {
			return nil, fmt.Errorf("failed to scan revaluation detail row: %w", err)
		}
		grouped[d.RevaluationID] = append(grouped[d.RevaluationID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revaluation detail rows: %w", err)
	}
	return grouped, nil
}
