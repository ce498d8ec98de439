package handlers

import (
	"context"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

type InfluencerService interface {
	CreateProfile(ctx context.Context, caller models.Caller, req models.CreateInfluencerProfileRequest) (*models.CreateInfluencerProfileResponse, error)
	GetMyProfile(ctx context.Context, caller models.Caller) (*models.InfluencerProfile, error)
}

type InfluencerHandler struct {
	svc       InfluencerService
	validator *validator.Validate
	logger    log.Logger
}

func NewInfluencerHandler(svc InfluencerService, v *validator.Validate, logger log.Logger) *InfluencerHandler {
	return &InfluencerHandler{svc: svc, validator: v, logger: logger}
}

// CreateProfile godoc
// @Tags Influencers
// @Summary Create the caller's influencer profile and channels
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateInfluencerProfileRequest true "Birth date and channels"
// @Success 201 {object} handlers.Envelope{data=models.CreateInfluencerProfileResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 403 {object} handlers.Envelope
// @Failure 409 {object} handlers.Envelope
// @Router /api/influencers/profile [post]
func (h *InfluencerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req models.CreateInfluencerProfileRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeInfluencerValidationError, &req) {
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
// @Tags Influencers
// @Summary The caller's influencer profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.Envelope{data=models.InfluencerProfile}
// @Failure 404 {object} handlers.Envelope
// @Router /api/influencers/profile/me [get]
func (h *InfluencerHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
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
