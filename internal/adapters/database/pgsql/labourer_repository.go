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

type PgxLabourerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLabourerRepository creates a new repository for labourer profiles.
func NewPgxLabourerRepository(pool *pgxpool.Pool) portsrepo.LabourerRepositoryFacade {
	return &PgxLabourerRepository{pool: pool}
}

var _ portsrepo.LabourerRepositoryFacade = (*PgxLabourerRepository)(nil)

func (r *PgxLabourerRepository) SaveLabourer(ctx context.Context, labourer domain.Labourer) error {
	query := `
		INSERT INTO labourers (labourer_id, name, default_daily_wage, is_deleted, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		labourer.LabourerID,
		labourer.Name,
		labourer.DefaultDailyWage,
		labourer.IsDeleted,
		labourer.CreatedAt,
		labourer.CreatedBy,
		labourer.LastUpdatedAt,
		labourer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save labourer %s: %w", labourer.LabourerID, err)
	}
	return nil
}

func (r *PgxLabourerRepository) FindLabourerByID(ctx context.Context, labourerID string) (*domain.Labourer, error) {
	query := `
		SELECT labourer_id, name, default_daily_wage, is_deleted, created_at, created_by, last_updated_at, last_updated_by
		FROM labourers
		WHERE labourer_id = $1;
	`
	var l domain.Labourer
	err := r.pool.QueryRow(ctx, query, labourerID).Scan(
		&l.LabourerID,
		&l.Name,
		&l.DefaultDailyWage,
		&l.IsDeleted,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find labourer by ID %s: %w", labourerID, err)
	}
	return &l, nil
}

func (r *PgxLabourerRepository) ListLabourers(ctx context.Context) ([]domain.Labourer, error) {
	query := `
		SELECT labourer_id, name, default_daily_wage, is_deleted, created_at, created_by, last_updated_at, last_updated_by
		FROM labourers
		WHERE is_deleted = FALSE
		ORDER BY name ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query labourers: %w", err)
	}
	defer rows.Close()

	labourers := []domain.Labourer{}
	for rows.Next() {
		var l domain.Labourer
		if err := rows.Scan(
			&l.LabourerID,
			&l.Name,
			&l.DefaultDailyWage,
			&l.IsDeleted,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan labourer row: %w", err)
		}
		labourers = append(labourers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating labourer rows: %w", err)
	}
	return labourers, nil
}

func (r *PgxLabourerRepository) UpdateLabourer(ctx context.Context, labourer domain.Labourer) error {
	query := `
		UPDATE labourers
		SET name = $2, default_daily_wage = $3, last_updated_at = $4, last_updated_by = $5
		WHERE labourer_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.pool.Exec(ctx, query,
		labourer.LabourerID,
		labourer.Name,
		labourer.DefaultDailyWage,
		labourer.LastUpdatedAt,
		labourer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update labourer %s: %w", labourer.LabourerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLabourerRepository) MarkLabourerDeleted(ctx context.Context, labourerID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE labourers
		SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE labourer_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.pool.Exec(ctx, query, labourerID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark labourer %s deleted: %w", labourerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
