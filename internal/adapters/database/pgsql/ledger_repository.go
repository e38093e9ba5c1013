package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository for attendance and payment rows.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const attendanceColumns = `attendance_id, labourer_id, entry_date, value, created_at, created_by, last_updated_at, last_updated_by`
const paymentColumns = `payment_id, labourer_id, entry_date, amount, description, category_id, created_at, created_by, last_updated_at, last_updated_by`

func scanAttendance(row pgx.Row) (domain.AttendanceEntry, error) {
	var e domain.AttendanceEntry
	var entryDate time.Time
	err := row.Scan(
		&e.AttendanceID,
		&e.LabourerID,
		&entryDate,
		&e.Value,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return domain.AttendanceEntry{}, err
	}
	e.Day = domain.DayOf(entryDate)
	return e, nil
}

func scanPayment(row pgx.Row) (domain.PaymentEntry, error) {
	var e domain.PaymentEntry
	var entryDate time.Time
	err := row.Scan(
		&e.PaymentID,
		&e.LabourerID,
		&entryDate,
		&e.Amount,
		&e.Description,
		&e.CategoryID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return domain.PaymentEntry{}, err
	}
	e.Day = domain.DayOf(entryDate)
	return e, nil
}

func (r *PgxLedgerRepository) FindAttendanceForDay(ctx context.Context, day domain.CalendarDay) ([]domain.AttendanceEntry, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_entries
		WHERE entry_date >= $1 AND entry_date <= $2
		ORDER BY labourer_id;
	`
	rows, err := r.pool.Query(ctx, query, day.Start(), day.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for day %s: %w", day, err)
	}
	defer rows.Close()

	entries := []domain.AttendanceEntry{}
	for rows.Next() {
		e, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) FindPaymentsForDay(ctx context.Context, day domain.CalendarDay) ([]domain.PaymentEntry, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_entries
		WHERE entry_date >= $1 AND entry_date <= $2
		ORDER BY labourer_id, created_at;
	`
	rows, err := r.pool.Query(ctx, query, day.Start(), day.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for day %s: %w", day, err)
	}
	defer rows.Close()

	entries := []domain.PaymentEntry{}
	for rows.Next() {
		e, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) FindAttendanceByLabourerAndDay(ctx context.Context, labourerID string, day domain.CalendarDay) (*domain.AttendanceEntry, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_entries
		WHERE labourer_id = $1 AND entry_date >= $2 AND entry_date <= $3;
	`
	e, err := scanAttendance(r.pool.QueryRow(ctx, query, labourerID, day.Start(), day.End()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absent row means zero attendance, not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance for labourer %s on %s: %w", labourerID, day, err)
	}
	return &e, nil
}

func (r *PgxLedgerRepository) FindPaymentsByLabourerAndDay(ctx context.Context, labourerID string, day domain.CalendarDay) ([]domain.PaymentEntry, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_entries
		WHERE labourer_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, labourerID, day.Start(), day.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for labourer %s on %s: %w", labourerID, day, err)
	}
	defer rows.Close()

	entries := []domain.PaymentEntry{}
	for rows.Next() {
		e, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return entries, nil
}

// rangeClause builds the optional window bounds shared by the two range queries.
func rangeClause(from, to *domain.CalendarDay, args []any) (string, []any) {
	clause := ""
	if from != nil {
		args = append(args, from.Start())
		clause += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, to.End())
		clause += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	return clause, args
}

func (r *PgxLedgerRepository) FindAttendanceInRange(ctx context.Context, labourerID string, from, to *domain.CalendarDay) ([]domain.AttendanceEntry, error) {
	args := []any{labourerID}
	clause, args := rangeClause(from, to, args)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_entries
		WHERE labourer_id = $1` + clause + `
		ORDER BY entry_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range for labourer %s: %w", labourerID, err)
	}
	defer rows.Close()

	entries := []domain.AttendanceEntry{}
	for rows.Next() {
		e, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) FindPaymentsInRange(ctx context.Context, labourerID string, from, to *domain.CalendarDay) ([]domain.PaymentEntry, error) {
	args := []any{labourerID}
	clause, args := rangeClause(from, to, args)
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_entries
		WHERE labourer_id = $1` + clause + `
		ORDER BY entry_date ASC, created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment range for labourer %s: %w", labourerID, err)
	}
	defer rows.Close()

	entries := []domain.PaymentEntry{}
	for rows.Next() {
		e, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return entries, nil
}

// ApplyDailyChanges applies a daily batch inside one database transaction.
func (r *PgxLedgerRepository) ApplyDailyChanges(ctx context.Context, changes []domain.DailyChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, change := range changes {
		switch {
		case change.Kind == domain.ChangeAttendance && change.Upsert:
			e := change.Attendance
			batch.Queue(`
				INSERT INTO attendance_entries (attendance_id, labourer_id, entry_date, value, created_at, created_by, last_updated_at, last_updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (labourer_id, entry_date) DO UPDATE SET
					value = EXCLUDED.value,
					last_updated_at = EXCLUDED.last_updated_at,
					last_updated_by = EXCLUDED.last_updated_by;
			`, e.AttendanceID, e.LabourerID, e.Day.Start(), e.Value, e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy)
		case change.Kind == domain.ChangeAttendance && !change.Upsert:
			batch.Queue(`
				DELETE FROM attendance_entries
				WHERE labourer_id = $1 AND entry_date >= $2 AND entry_date <= $3;
			`, change.LabourerID, change.Day.Start(), change.Day.End())
		case change.Kind == domain.ChangePayment && change.Upsert:
			e := change.Payment
			batch.Queue(`
				INSERT INTO payment_entries (payment_id, labourer_id, entry_date, amount, description, category_id, created_at, created_by, last_updated_at, last_updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (payment_id) DO UPDATE SET
					amount = EXCLUDED.amount,
					description = EXCLUDED.description,
					last_updated_at = EXCLUDED.last_updated_at,
					last_updated_by = EXCLUDED.last_updated_by;
			`, e.PaymentID, e.LabourerID, e.Day.Start(), e.Amount, e.Description, e.CategoryID, e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy)
		case change.Kind == domain.ChangePayment && !change.Upsert:
			batch.Queue(`
				DELETE FROM payment_entries
				WHERE labourer_id = $1 AND entry_date >= $2 AND entry_date <= $3;
			`, change.LabourerID, change.Day.Start(), change.Day.End())
		default:
			return fmt.Errorf("unknown daily change kind %q", change.Kind)
		}
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute daily change batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit daily change batch: %w", err)
	}
	return nil
}
