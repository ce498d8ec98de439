package interfaces

import (
	"context"

	"campaignhub/internal/models"
)

type InfluencerRepository interface {
	// Create inserts the profile and its channels together.
	Create(ctx context.Context, profile *models.InfluencerProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.InfluencerProfile, error)
	IDByUserID(ctx context.Context, userID string) (int64, error)
}
