package interfaces

import (
	"context"

	"campaignhub/internal/models"
)

// UserRepository persists accounts and the terms they agreed to at signup.
type UserRepository interface {
	Create(ctx context.Context, user *models.User, termsTypes []string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
