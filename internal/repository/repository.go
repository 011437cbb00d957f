package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ndenisov/authd/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user with already hashed password
	// If a user with the same email exists must return apperrors.ErrEmailTaken
	CreateUser(ctx context.Context, email string, passwordHash string) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}
