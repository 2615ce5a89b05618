package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	portsrepo "github.com/corebanking/gl_backend/internal/core/ports/repositories"
	"github.com/corebanking/gl_backend/internal/models"
	"github.com/corebanking/gl_backend/internal/utils/mapping"
)

const periodColumns = `period_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

// PgxPeriodRepository persists financial periods.
type PgxPeriodRepository struct {
	BaseRepository
}

// NewPgxPeriodRepository creates a new repository for financial period data.
func NewPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialPeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (*models.FinancialPeriod, error) {
	var m models.FinancialPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePeriod inserts a new financial period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FinancialPeriod) error {
	m := mapping.PeriodToModel(period)

	query := `
		INSERT INTO financial_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsClosed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: financial period %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save financial period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a financial period by ID. Returns nil when not found.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM financial_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find financial period %s: %w", periodID, err)
	}
	p := mapping.PeriodToDomain(*m)
	return &p, nil
}

// FindPeriodForDate retrieves the period containing the date. Returns nil when
// no period covers it.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM financial_periods
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY start_date DESC
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find financial period for %s: %w", date.Format(time.DateOnly), err)
	}
	p := mapping.PeriodToDomain(*m)
	return &p, nil
}

// ListPeriods retrieves all financial periods, newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM financial_periods ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.FinancialPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial period row: %w", err)
		}
		periods = append(periods, mapping.PeriodToDomain(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial period rows: %w", err)
	}
	return periods, nil
}

// ClosePeriod marks a financial period as closed.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE financial_periods
		SET is_closed = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE period_id = $1 AND is_closed = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, periodID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to close financial period %s: %w", periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		existing, findErr := r.FindPeriodByID(ctx, periodID)
		if findErr != nil {
			return findErr
		}
		if existing == nil {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: financial period %s is already closed", apperrors.ErrConflict, periodID)
	}
	return nil
}
