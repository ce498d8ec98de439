package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusSelected ApplicationStatus = "selected"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusSelected, ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID            int64             `json:"id"`
	CampaignID    int64             `json:"campaignId"`
	CampaignTitle string            `json:"campaignTitle,omitempty"`
	InfluencerID  int64             `json:"-"`
	Motivation    string            `json:"motivation"`
	VisitDate     Date              `json:"visitDate"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"-"`
}

// ApplicationDetail is an application as seen by the campaign owner.
type ApplicationDetail struct {
	Application
	InfluencerName  string `json:"influencerName"`
	InfluencerEmail string `json:"influencerEmail,omitempty"`
	InfluencerPhone string `json:"influencerPhone,omitempty"`
}

type CreateApplicationRequest struct {
	CampaignID int64  `json:"campaignId" validate:"required,gt=0"`
	Motivation string `json:"motivation" validate:"required"`
	VisitDate  string `json:"visitDate" validate:"required,ymd"`
}

type CreateApplicationResponse struct {
	ApplicationID int64             `json:"applicationId"`
	Status        ApplicationStatus `json:"status"`
}

type ApplicationListResponse struct {
	Applications []Application `json:"applications"`
}

type CampaignApplicationListResponse struct {
	Applications []ApplicationDetail `json:"applications"`
}

type SelectApplicationsRequest struct {
	SelectedApplicationIDs []int64 `json:"selectedApplicationIds" validate:"required,min=1,dive,gt=0"`
}

// SelectionResult is what one bulk selection changed.
type SelectionResult struct {
	CampaignID int64   `json:"campaignId"`
	Selected   []int64 `json:"selectedApplicationIds"`
	Rejected   int64   `json:"rejectedCount"`
}

type SelectionResponse struct {
	Success bool `json:"success"`
	SelectionResult
}

// Recipient is a selected influencer to notify once a selection commits.
type Recipient struct {
	ApplicationID int64  `json:"applicationId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

type ApplicationStatusResponse struct {
	HasApplied        bool              `json:"hasApplied"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus,omitempty"`
}
