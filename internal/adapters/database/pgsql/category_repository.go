package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCategoryRepository creates a new repository for expense categories.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// GetOrCreateCategory resolves a category by name, creating it on first use.
// The insert races behind the unique name constraint, so concurrent first-use
// creators converge on one row.
func (r *PgxCategoryRepository) GetOrCreateCategory(ctx context.Context, name string, creatorUserID string) (*domain.ExpenseCategory, error) {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO expense_categories (category_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO NOTHING;
	`, uuid.NewString(), name, now, creatorUserID, now, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure category %q: %w", name, err)
	}

	var c domain.ExpenseCategory
	err = r.pool.QueryRow(ctx, `
		SELECT category_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM expense_categories
		WHERE name = $1;
	`, name).Scan(
		&c.CategoryID,
		&c.Name,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category %q missing after ensure", name)
		}
		return nil, fmt.Errorf("failed to load category %q: %w", name, err)
	}
	return &c, nil
}
