package interfaces

import (
	"context"

	"campaignhub/internal/models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	ListByInfluencer(ctx context.Context, influencerID int64, status models.ApplicationStatus) ([]models.Application, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.ApplicationDetail, error)
	GetByCampaignAndInfluencer(ctx context.Context, campaignID, influencerID int64) (*models.Application, error)
	SelectedRecipients(ctx context.Context, campaignID int64) ([]models.Recipient, error)
}
