package interfaces

import (
	"context"

	"campaignhub/internal/models"
)

// AdvertiserRepository defines the interface for advertiser profile data operations
type AdvertiserRepository interface {
	Create(ctx context.Context, profile *models.AdvertiserProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.AdvertiserProfile, error)
	IDByUserID(ctx context.Context, userID string) (int64, error)
}
