package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

const maxImageBytes = 10 << 20

type CampaignService interface {
	Create(ctx context.Context, caller models.Caller, req models.CreateCampaignRequest) (*models.CreateCampaignResponse, error)
	List(ctx context.Context, status models.CampaignStatus) (*models.CampaignListResponse, error)
	Get(ctx context.Context, id int64) (*models.Campaign, error)
	ListMine(ctx context.Context, caller models.Caller) (*models.CampaignListResponse, error)
	Close(ctx context.Context, caller models.Caller, id int64) (*models.SuccessResponse, error)
	UploadImage(ctx context.Context, caller models.Caller, id int64, filename, contentType string, body io.Reader) (*models.CampaignImageResponse, error)
}

type CampaignHandler struct {
	svc       CampaignService
	validator *validator.Validate
	logger    log.Logger
}

func NewCampaignHandler(svc CampaignService, v *validator.Validate, logger log.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, validator: v, logger: logger}
}

// CreateCampaign godoc
// @Tags Campaigns
// @Summary Create a recruiting campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateCampaignRequest true "Campaign"
// @Success 201 {object} handlers.Envelope{data=models.CreateCampaignResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 403 {object} handlers.Envelope
// @Router /api/campaigns [post]
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req models.CreateCampaignRequest
	if !decodeAndValidate(w, r, h.validator, services.CodeCampaignValidationError, &req) {
		return
	}
	resp, err := h.svc.Create(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

// ListCampaigns godoc
// @Tags Campaigns
// @Summary List campaigns, newest first
// @Produce json
// @Param status query string false "recruiting, closed or selected"
// @Success 200 {object} handlers.Envelope{data=models.CampaignListResponse}
// @Failure 400 {object} handlers.Envelope
// @Router /api/campaigns [get]
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	status := models.CampaignStatus(r.URL.Query().Get("status"))
	resp, err := h.svc.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// GetCampaign godoc
// @Tags Campaigns
// @Summary Campaign detail
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} handlers.Envelope{data=models.Campaign}
// @Failure 404 {object} handlers.Envelope
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", services.CodeCampaignValidationError)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, c)
}

// ListMyCampaigns godoc
// @Tags Campaigns
// @Summary Campaigns owned by the calling advertiser
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.Envelope{data=models.CampaignListResponse}
// @Failure 403 {object} handlers.Envelope
// @Router /api/campaigns/me/list [get]
func (h *CampaignHandler) ListMyCampaigns(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.ListMine(r.Context(), caller)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// CloseCampaign godoc
// @Tags Campaigns
// @Summary Stop recruiting
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} handlers.Envelope{data=models.SuccessResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope
// @Router /api/campaigns/{id}/close [patch]
func (h *CampaignHandler) CloseCampaign(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", services.CodeCampaignValidationError)
	if !ok {
		return
	}
	resp, err := h.svc.Close(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// UploadImage godoc
// @Tags Campaigns
// @Summary Upload the campaign image
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Campaign ID"
// @Param file formData file true "Image file"
// @Success 200 {object} handlers.Envelope{data=models.CampaignImageResponse}
// @Failure 400 {object} handlers.Envelope
// @Failure 503 {object} handlers.Envelope
// @Router /api/campaigns/{id}/image [post]
func (h *CampaignHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", services.CodeCampaignValidationError)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, services.CodeCampaignValidationError, "Image is too large", nil)
			return
		}
		writeError(w, http.StatusBadRequest, services.CodeInvalidRequest, "Invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, services.CodeCampaignValidationError, "File is required",
			map[string]string{"file": "required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			writeError(w, http.StatusBadRequest, services.CodeInvalidRequest, "Invalid multipart form", nil)
			return
		}
	}

	resp, err := h.svc.UploadImage(r.Context(), caller, id, header.Filename, contentType, file)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
