package repositories

import (
	"context"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// UserRepositoryFacade persists application accounts.
type UserRepositoryFacade interface {
	// SaveUser returns apperrors.ErrDuplicate when the username is taken.
	SaveUser(ctx context.Context, user domain.User) error
	// FindUserByID returns apperrors.ErrNotFound when no such user exists.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByUsername returns apperrors.ErrNotFound when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
