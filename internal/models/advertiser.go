package models

import (
	"time"
)

type AdvertiserProfile struct {
	ID                         int64     `json:"advertiserId"`
	UserID                     string    `json:"userId"`
	BusinessName               string    `json:"businessName"`
	Location                   string    `json:"location"`
	Category                   string    `json:"category"`
	BusinessRegistrationNumber string    `json:"businessRegistrationNumber"`
	CreatedAt                  time.Time `json:"createdAt"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

type CreateAdvertiserProfileRequest struct {
	BusinessName               string `json:"businessName" validate:"required"`
	Location                   string `json:"location" validate:"required"`
	Category                   string `json:"category" validate:"required"`
	BusinessRegistrationNumber string `json:"businessRegistrationNumber" validate:"required,bizno"`
}

type CreateAdvertiserProfileResponse struct {
	AdvertiserID int64 `json:"advertiserId"`
}
