package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"campaignhub/internal/events"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/metrics"
	"campaignhub/internal/models"
)

type CampaignService struct {
	campaigns   interfaces.CampaignRepository
	advertisers interfaces.AdvertiserRepository
	images      ImageStore
	events      events.Publisher
	metrics     *metrics.Metrics
	logger      log.Logger
}

func NewCampaignService(
	campaigns interfaces.CampaignRepository,
	advertisers interfaces.AdvertiserRepository,
	images ImageStore,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger log.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns:   campaigns,
		advertisers: advertisers,
		images:      images,
		events:      publisher,
		metrics:     m,
		logger:      logger,
	}
}

func (s *CampaignService) Create(ctx context.Context, caller models.Caller, req models.CreateCampaignRequest) (*models.CreateCampaignResponse, error) {
	start, err := models.ParseDate(req.RecruitmentStartDate)
	if err != nil {
		return nil, ValidationError(CodeCampaignValidationError, "Invalid start date format", nil)
	}
	end, err := models.ParseDate(req.RecruitmentEndDate)
	if err != nil {
		return nil, ValidationError(CodeCampaignValidationError, "Invalid end date format", nil)
	}
	if !start.Before(end) {
		return nil, ValidationError(CodeInvalidRecruitmentDates, "Start date must be before end date", nil)
	}
	if req.MaxParticipants <= 0 {
		return nil, ValidationError(CodeCampaignValidationError, "Max participants must be greater than 0", nil)
	}

	advertiserID, err := s.advertiserID(ctx, "create", CodeNotAdvertiser, "Only advertisers can create campaigns", CodeCampaignCreateError, caller)
	if err != nil {
		return nil, err
	}

	c := &models.Campaign{
		AdvertiserID:         advertiserID,
		Title:                req.Title,
		RecruitmentStartDate: start,
		RecruitmentEndDate:   end,
		MaxParticipants:      req.MaxParticipants,
		Benefits:             req.Benefits,
		StoreInfo:            req.StoreInfo,
		Mission:              req.Mission,
		Status:               models.CampaignStatusRecruiting,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		if errors.Is(err, interfaces.ErrForeignKey) {
			return nil, ForbiddenError(CodeNotAdvertiser, "Only advertisers can create campaigns")
		}
		return nil, s.internal("create", CodeCampaignCreateError, "Failed to create campaign", err)
	}

	s.metrics.RecordCampaignTransition(string(models.CampaignStatusRecruiting))
	publish(ctx, s.events, s.logger, events.New(events.CampaignCreated, map[string]any{
		"campaignId": c.ID, "advertiserId": c.AdvertiserID,
	}))
	return &models.CreateCampaignResponse{CampaignID: c.ID}, nil
}

// List returns campaigns newest first, optionally narrowed to one status.
func (s *CampaignService) List(ctx context.Context, status models.CampaignStatus) (*models.CampaignListResponse, error) {
	if status != "" && !status.Valid() {
		return nil, ValidationError(CodeCampaignValidationError, "Invalid campaign status",
			map[string]string{"status": "oneof=recruiting closed selected"})
	}
	list, err := s.campaigns.List(ctx, interfaces.CampaignFilter{Status: status})
	if err != nil {
		return nil, s.internal("list", CodeCampaignFetchError, "Failed to fetch campaigns", err)
	}
	return &models.CampaignListResponse{Campaigns: list}, nil
}

func (s *CampaignService) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeCampaignNotFound, "Campaign not found")
		}
		return nil, s.internal("get", CodeCampaignFetchError, "Failed to fetch campaign", err)
	}
	return c, nil
}

func (s *CampaignService) ListMine(ctx context.Context, caller models.Caller) (*models.CampaignListResponse, error) {
	advertiserID, err := s.advertiserID(ctx, "list_mine", CodeNotAdvertiser, "Not an advertiser", CodeCampaignFetchError, caller)
	if err != nil {
		return nil, err
	}
	list, err := s.campaigns.List(ctx, interfaces.CampaignFilter{AdvertiserID: advertiserID})
	if err != nil {
		return nil, s.internal("list_mine", CodeCampaignFetchError, "Failed to fetch campaigns", err)
	}
	return &models.CampaignListResponse{Campaigns: list}, nil
}

// Close ends recruitment. Only the owning advertiser may close, and only
// while the campaign is still recruiting.
func (s *CampaignService) Close(ctx context.Context, caller models.Caller, id int64) (*models.SuccessResponse, error) {
	advertiserID, err := s.advertiserID(ctx, "close", CodeNotAdvertiser, "Not an advertiser", CodeCampaignFetchError, caller)
	if err != nil {
		return nil, err
	}

	c, err := s.campaigns.GetOwned(ctx, id, advertiserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeCampaignNotFound, "Campaign not found or unauthorized")
		}
		return nil, s.internal("close", CodeCampaignFetchError, "Failed to fetch campaign", err)
	}
	if !c.Status.CanTransitionTo(models.CampaignStatusClosed) {
		return nil, TransitionError(CodeCampaignAlreadyClosed, "Campaign is not recruiting")
	}

	err = s.campaigns.TransitionStatus(ctx, id, models.CampaignStatusRecruiting, models.CampaignStatusClosed)
	if err != nil {
		var conflict *interfaces.StatusConflictError
		if errors.As(err, &conflict) {
			return nil, TransitionError(CodeCampaignAlreadyClosed, "Campaign is not recruiting")
		}
		return nil, s.internal("close", CodeCampaignUpdateError, "Failed to close campaign", err)
	}

	s.metrics.RecordCampaignTransition(string(models.CampaignStatusClosed))
	publish(ctx, s.events, s.logger, events.New(events.CampaignClosed, map[string]any{"campaignId": id}))
	return &models.SuccessResponse{Success: true}, nil
}

// UploadImage stores an image for a campaign the caller owns and records its URL.
func (s *CampaignService) UploadImage(ctx context.Context, caller models.Caller, id int64, filename, contentType string, body io.Reader) (*models.CampaignImageResponse, error) {
	if s.images == nil {
		return nil, UnavailableError(CodeStorageUnavailable, "Image storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ValidationError(CodeCampaignValidationError, "Only image files can be uploaded",
			map[string]string{"file": "image"})
	}

	advertiserID, err := s.advertiserID(ctx, "upload_image", CodeNotAdvertiser, "Not an advertiser", CodeCampaignFetchError, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.campaigns.GetOwned(ctx, id, advertiserID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeCampaignNotFound, "Campaign not found or unauthorized")
		}
		return nil, s.internal("upload_image", CodeCampaignFetchError, "Failed to fetch campaign", err)
	}

	key := fmt.Sprintf("campaigns/%d/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.images.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, s.internal("upload_image", CodeCampaignUpdateError, "Failed to upload image", err)
	}
	if err := s.campaigns.SetImageURL(ctx, id, url); err != nil {
		return nil, s.internal("upload_image", CodeCampaignUpdateError, "Failed to save image", err)
	}
	return &models.CampaignImageResponse{ImageURL: url}, nil
}

func (s *CampaignService) advertiserID(ctx context.Context, op, forbiddenCode, forbiddenMessage, failCode string, caller models.Caller) (int64, error) {
	id, err := s.advertisers.IDByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return 0, ForbiddenError(forbiddenCode, forbiddenMessage)
		}
		return 0, s.internal(op, failCode, "Failed to fetch advertiser profile", err)
	}
	return id, nil
}

func (s *CampaignService) internal(op, code, message string, err error) *Error {
	level.Error(s.logger).Log("op", "campaign."+op, "code", code, "err", err)
	return InternalError(code, message, err)
}
