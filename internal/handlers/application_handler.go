package handlers

import (
	"context"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

type ApplicationService interface {
	Submit(ctx context.Context, caller models.Caller, req models.CreateApplicationRequest) (*models.CreateApplicationResponse, error)
	ListMine(ctx context.Context, caller models.Caller, status models.ApplicationStatus) (*models.ApplicationListResponse, error)
	ListForCampaign(ctx context.Context, caller models.Caller, campaignID int64) (*models.CampaignApplicationListResponse, error)
	Select(ctx context.Context, caller models.Caller, campaignID int64, applicationIDs []int64) (*models.SelectionResponse, error)
	Status(ctx context.Context, caller models.Caller, campaignID int64) (*models.ApplicationStatusResponse, error)
}

type ApplicationHandler struct {
	svc       ApplicationService
	validator *validator.Validate
	logger    log.Logger
}

func NewApplicationHandler(svc ApplicationService, v *validator.Validate, logger log.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, validator: v, logger: logger}
}

// Submit godoc
// @Tags Applications
// @Summary Apply to a recruiting campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateApplicationRequest true "Application"
// @Success 201 {object} handlers.Envelope{data=models.CreateApplicationResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 403 {object} handlers.Envelope
// @Failure 409 {object} handlers.Envelope
// @Router /api/applications [post]
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req models.CreateApplicationRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeApplicationValidationError, &req) {
		return
	}
	resp, err := h.svc.Submit(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

// ListMine godoc
// @Tags Applications
// @Summary The calling influencer's applications
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, selected or rejected"
// @Success 200 {object} handlers.Envelope{data=models.ApplicationListResponse}
// @Failure 403 {object} handlers.Envelope
// @Router /api/applications/me [get]
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	status := models.ApplicationStatus(r.URL.Query().Get("status"))
	resp, err := h.svc.ListMine(r.Context(), caller, status)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// ListForCampaign godoc
// @Tags Applications
// @Summary Applications to a campaign the caller owns
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} handlers.Envelope{data=models.CampaignApplicationListResponse}
// @Failure 403 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope
// @Router /api/campaigns/{id}/applications [get]
func (h *ApplicationHandler) ListForCampaign(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", services.CodeApplicationValidationError)
	if !ok {
		return
	}
	resp, err := h.svc.ListForCampaign(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// Select godoc
// @Tags Applications
// @Summary Finalize the selection for a closed campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param body body models.SelectApplicationsRequest true "Selected application ids"
// @Success 200 {object} handlers.Envelope{data=models.SelectionResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope
// @Router /api/campaigns/{id}/select [post]
func (h *ApplicationHandler) Select(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", services.CodeApplicationValidationError)
	if !ok {
		return
	}
	var req models.SelectApplicationsRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeApplicationValidationError, &req) {
		return
	}
	resp, err := h.svc.Select(r.Context(), caller, id, req.SelectedApplicationIDs)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// Status godoc
// @Tags Applications
// @Summary Whether the caller has applied to a campaign
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} handlers.Envelope{data=models.ApplicationStatusResponse}
// @Router /api/campaigns/{id}/application-status [get]
func (h *ApplicationHandler) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", services.CodeApplicationValidationError)
	if !ok {
		return
	}
	resp, err := h.svc.Status(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
