package models

import "time"

type Platform string

const (
	PlatformNaver     Platform = "naver"
	PlatformYoutube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformThreads   Platform = "threads"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationFailed   VerificationStatus = "failed"
)

type InfluencerProfile struct {
	ID        int64               `json:"influencerId"`
	UserID    string              `json:"userId"`
	BirthDate Date                `json:"birthDate"`
	Channels  []InfluencerChannel `json:"channels"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type InfluencerChannel struct {
	ID                 int64              `json:"id"`
	InfluencerID       int64              `json:"-"`
	Platform           Platform           `json:"platform"`
	ChannelName        string             `json:"channelName"`
	ChannelURL         string             `json:"channelUrl"`
	FollowerCount      int                `json:"followerCount"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

type ChannelInput struct {
	Platform      string `json:"platform" validate:"required,oneof=naver youtube instagram threads"`
	ChannelName   string `json:"channelName" validate:"required"`
	ChannelURL    string `json:"channelUrl" validate:"required,url"`
	FollowerCount int    `json:"followerCount" validate:"gte=0"`
}

type CreateInfluencerProfileRequest struct {
	BirthDate string         `json:"birthDate" validate:"required,ymd"`
	Channels  []ChannelInput `json:"channels" validate:"required,min=1,dive"`
}

type CreateInfluencerProfileResponse struct {
	InfluencerID int64               `json:"influencerId"`
	Channels     []InfluencerChannel `json:"channels"`
}
