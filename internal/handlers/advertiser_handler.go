package handlers

import (
	"context"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

type AdvertiserService interface {
	CreateProfile(ctx context.Context, caller models.Caller, req models.CreateAdvertiserProfileRequest) (*models.CreateAdvertiserProfileResponse, error)
	GetMyProfile(ctx context.Context, caller models.Caller) (*models.AdvertiserProfile, error)
}

type AdvertiserHandler struct {
	svc       AdvertiserService
	validator *validator.Validate
	logger    log.Logger
}

func NewAdvertiserHandler(svc AdvertiserService, v *validator.Validate, logger log.Logger) *AdvertiserHandler {
	return &AdvertiserHandler{svc: svc, validator: v, logger: logger}
}

// CreateProfile godoc
// @Tags Advertisers
// @Summary Create the caller's advertiser profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateAdvertiserProfileRequest true "Business details"
// @Success 201 {object} handlers.Envelope{data=models.CreateAdvertiserProfileResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 403 {object} handlers.Envelope
// @Failure 409 {object} handlers.Envelope
// @Router /api/advertisers/profile [post]
func (h *AdvertiserHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req models.CreateAdvertiserProfileRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeAdvertiserValidationError, &req) {
		return
	}
	resp, err := h.svc.CreateProfile(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

// GetMyProfile godoc
// @Tags Advertisers
// @Summary The caller's advertiser profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.Envelope{data=models.AdvertiserProfile}
// @Failure 404 {object} handlers.Envelope
// @Router /api/advertisers/profile/me [get]
func (h *AdvertiserHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetMyProfile(r.Context(), caller)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, p)
}
