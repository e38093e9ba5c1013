package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
)

type PgxSettlementRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSettlementRepository creates a new repository for settlement snapshots.
func NewPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{pool: pool}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

const settlementColumns = `settlement_id, labourer_id, settlement_date, total_attendance, total_payable, total_paid, opening_balance, net_balance, wage_snapshot, is_carry_forward, note, created_at, created_by, last_updated_at, last_updated_by`

func scanSettlement(row pgx.Row) (domain.SettlementSnapshot, error) {
	var s domain.SettlementSnapshot
	var settlementDate time.Time
	err := row.Scan(
		&s.SettlementID,
		&s.LabourerID,
		&settlementDate,
		&s.TotalAttendance,
		&s.TotalPayable,
		&s.TotalPaid,
		&s.OpeningBalance,
		&s.NetBalance,
		&s.WageSnapshot,
		&s.IsCarryForward,
		&s.Note,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		return domain.SettlementSnapshot{}, err
	}
	s.SettlementDate = domain.DayOf(settlementDate)
	return s, nil
}

// SaveSettlement inserts the snapshot after re-checking, inside the same
// transaction, that no settlement at or after the new cut-off exists. The
// labourer's settlement rows are locked for the duration so a concurrent
// create cannot slip between check and insert.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, snapshot domain.SettlementSnapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var latest time.Time
	err = tx.QueryRow(ctx, `
		SELECT settlement_date FROM settlements
		WHERE labourer_id = $1
		ORDER BY settlement_date DESC
		LIMIT 1
		FOR UPDATE;
	`, snapshot.LabourerID).Scan(&latest)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check latest settlement for labourer %s: %w", snapshot.LabourerID, err)
	}
	if err == nil && !snapshot.SettlementDate.After(domain.DayOf(latest)) {
		return fmt.Errorf("%w: settlement date %s is not after latest settlement %s",
			apperrors.ErrConflict, snapshot.SettlementDate, domain.DayOf(latest))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO settlements (`+settlementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`,
		snapshot.SettlementID,
		snapshot.LabourerID,
		snapshot.SettlementDate.Start(),
		snapshot.TotalAttendance,
		snapshot.TotalPayable,
		snapshot.TotalPaid,
		snapshot.OpeningBalance,
		snapshot.NetBalance,
		snapshot.WageSnapshot,
		snapshot.IsCarryForward,
		snapshot.Note,
		snapshot.CreatedAt,
		snapshot.CreatedBy,
		snapshot.LastUpdatedAt,
		snapshot.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement %s: %w", snapshot.SettlementID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement %s: %w", snapshot.SettlementID, err)
	}
	return nil
}

func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.SettlementSnapshot, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`
	s, err := scanSettlement(r.pool.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}
	return &s, nil
}

func (r *PgxSettlementRepository) FindLatestSettlement(ctx context.Context, labourerID string) (*domain.SettlementSnapshot, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE labourer_id = $1
		ORDER BY settlement_date DESC
		LIMIT 1;
	`
	s, err := scanSettlement(r.pool.QueryRow(ctx, query, labourerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest settlement for labourer %s: %w", labourerID, err)
	}
	return &s, nil
}

func (r *PgxSettlementRepository) FindLatestSettlements(ctx context.Context) (map[string]domain.SettlementSnapshot, error) {
	query := `
		SELECT DISTINCT ON (labourer_id) ` + settlementColumns + `
		FROM settlements
		ORDER BY labourer_id, settlement_date DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest settlements: %w", err)
	}
	defer rows.Close()

	latest := map[string]domain.SettlementSnapshot{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		latest[s.LabourerID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return latest, nil
}

func (r *PgxSettlementRepository) FindPreviousSettlement(ctx context.Context, labourerID string, before domain.CalendarDay) (*domain.SettlementSnapshot, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE labourer_id = $1 AND settlement_date < $2
		ORDER BY settlement_date DESC
		LIMIT 1;
	`
	s, err := scanSettlement(r.pool.QueryRow(ctx, query, labourerID, before.Start()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find previous settlement for labourer %s before %s: %w", labourerID, before, err)
	}
	return &s, nil
}

func (r *PgxSettlementRepository) ListSettlements(ctx context.Context, labourerID string) ([]domain.SettlementSnapshot, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE labourer_id = $1
		ORDER BY settlement_date DESC;
	`
	rows, err := r.pool.Query(ctx, query, labourerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements for labourer %s: %w", labourerID, err)
	}
	defer rows.Close()

	settlements := []domain.SettlementSnapshot{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return settlements, nil
}
