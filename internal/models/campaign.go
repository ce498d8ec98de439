// internal/models/campaign.go
package models

import "time"

type CampaignStatus string

const (
	CampaignStatusRecruiting CampaignStatus = "recruiting"
	CampaignStatusClosed     CampaignStatus = "closed"
	CampaignStatusSelected   CampaignStatus = "selected"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusRecruiting, CampaignStatusClosed, CampaignStatusSelected:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is the single forward step from s.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	switch s {
	case CampaignStatusRecruiting:
		return next == CampaignStatusClosed
	case CampaignStatusClosed:
		return next == CampaignStatusSelected
	}
	return false
}

type Campaign struct {
	ID                   int64          `json:"id"`
	AdvertiserID         int64          `json:"advertiserId"`
	Title                string         `json:"title"`
	RecruitmentStartDate Date           `json:"recruitmentStartDate"`
	RecruitmentEndDate   Date           `json:"recruitmentEndDate"`
	MaxParticipants      int            `json:"maxParticipants"`
	Benefits             string         `json:"benefits"`
	StoreInfo            string         `json:"storeInfo"`
	Mission              string         `json:"mission"`
	ImageURL             *string        `json:"imageUrl,omitempty"`
	Status               CampaignStatus `json:"status"`
	BusinessName         string         `json:"businessName,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"-"`
}

type CreateCampaignRequest struct {
	Title                string `json:"title" validate:"required"`
	RecruitmentStartDate string `json:"recruitmentStartDate" validate:"required,ymd"`
	RecruitmentEndDate   string `json:"recruitmentEndDate" validate:"required,ymd"`
	MaxParticipants      int    `json:"maxParticipants" validate:"required,gt=0"`
	Benefits             string `json:"benefits" validate:"required"`
	StoreInfo            string `json:"storeInfo" validate:"required"`
	Mission              string `json:"mission" validate:"required"`
}

type CreateCampaignResponse struct {
	CampaignID int64 `json:"campaignId"`
}

type CampaignListResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type CampaignImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
