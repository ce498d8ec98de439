// internal/interfaces/campaign_repository.go
package interfaces

import (
	"context"

	"campaignhub/internal/models"
)

// CampaignFilter defines the filter criteria for listing campaigns
type CampaignFilter struct {
	AdvertiserID int64
	Status       models.CampaignStatus
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id int64) (*models.Campaign, error)
	GetOwned(ctx context.Context, id, advertiserID int64) (*models.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]models.Campaign, error)
	// TransitionStatus moves the campaign from one status to the next and
	// returns a *StatusConflictError when it is no longer in from.
	TransitionStatus(ctx context.Context, id int64, from, to models.CampaignStatus) error
	// FinalizeSelection selects the given pending applications, rejects the
	// remaining pending ones and marks the campaign selected, atomically.
	FinalizeSelection(ctx context.Context, campaignID, advertiserID int64, applicationIDs []int64) (*models.SelectionResult, error)
	SetImageURL(ctx context.Context, id int64, imageURL string) error
}
