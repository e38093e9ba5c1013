package dto

import "github.com/shopkhata/shopkhata-backend/internal/core/domain"

// CreateUserRequest is the payload for POST /auth/register.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse is the wire shape of an application account.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ToUserResponse converts a domain.User to its wire shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.UserID,
		Name:     u.Name,
		Username: u.Username,
	}
}
