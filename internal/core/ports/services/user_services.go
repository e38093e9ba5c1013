package services

import (
	"context"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
)

// UserSvcFacade manages application accounts and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
