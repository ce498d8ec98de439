package services

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"campaignhub/internal/events"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/metrics"
	"campaignhub/internal/models"
)

type ApplicationService struct {
	applications interfaces.ApplicationRepository
	campaigns    interfaces.CampaignRepository
	advertisers  interfaces.AdvertiserRepository
	influencers  interfaces.InfluencerRepository
	notifier     *SelectionNotifier
	events       events.Publisher
	clock        Clock
	metrics      *metrics.Metrics
	logger       log.Logger
}

type ApplicationServiceDeps struct {
	Applications interfaces.ApplicationRepository
	Campaigns    interfaces.CampaignRepository
	Advertisers  interfaces.AdvertiserRepository
	Influencers  interfaces.InfluencerRepository
	Notifier     *SelectionNotifier
	Events       events.Publisher
	Clock        Clock
	Metrics      *metrics.Metrics
	Logger       log.Logger
}

func NewApplicationService(d ApplicationServiceDeps) *ApplicationService {
	return &ApplicationService{
		applications: d.Applications,
		campaigns:    d.Campaigns,
		advertisers:  d.Advertisers,
		influencers:  d.Influencers,
		notifier:     d.Notifier,
		events:       d.Events,
		clock:        d.Clock,
		metrics:      d.Metrics,
		logger:       d.Logger,
	}
}

// Submit files a pending application for the calling influencer.
func (s *ApplicationService) Submit(ctx context.Context, caller models.Caller, req models.CreateApplicationRequest) (*models.CreateApplicationResponse, error) {
	visit, err := models.ParseDate(req.VisitDate)
	if err != nil {
		return nil, ValidationError(CodeApplicationValidationError, "Invalid date format", map[string]string{"visitDate": "ymd"})
	}
	if visit.Before(s.clock.Today()) {
		return nil, ValidationError(CodeInvalidVisitDate, "Visit date must be in the future", nil)
	}

	influencerID, err := s.influencers.IDByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ForbiddenError(CodeNotInfluencer, "Only influencers can apply")
		}
		return nil, s.internal("submit", CodeApplicationFetchError, "Failed to fetch influencer profile", err)
	}

	c, err := s.campaigns.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeApplicationNotFound, "Campaign not found")
		}
		return nil, s.internal("submit", CodeApplicationFetchError, "Failed to fetch campaign", err)
	}
	if c.Status != models.CampaignStatusRecruiting {
		return nil, ValidationError(CodeCampaignClosed, "Campaign is not accepting applications", nil)
	}

	a := &models.Application{
		CampaignID:   req.CampaignID,
		InfluencerID: influencerID,
		Motivation:   req.Motivation,
		VisitDate:    visit,
		Status:       models.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		var conflict *interfaces.StatusConflictError
		switch {
		case errors.Is(err, interfaces.ErrAlreadyExists):
			return nil, ConflictError(CodeDuplicateApplication, "You have already applied to this campaign")
		case errors.As(err, &conflict):
			return nil, ValidationError(CodeCampaignClosed, "Campaign is not accepting applications", nil)
		case errors.Is(err, interfaces.ErrForeignKey):
			return nil, NotFoundError(CodeApplicationNotFound, "Campaign not found")
		}
		return nil, s.internal("submit", CodeApplicationCreateError, "Failed to create application", err)
	}

	s.metrics.RecordApplicationSubmitted()
	publish(ctx, s.events, s.logger, events.New(events.ApplicationSubmitted, map[string]any{
		"applicationId": a.ID, "campaignId": a.CampaignID, "influencerId": a.InfluencerID,
	}))
	return &models.CreateApplicationResponse{ApplicationID: a.ID, Status: a.Status}, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, caller models.Caller, status models.ApplicationStatus) (*models.ApplicationListResponse, error) {
	if status != "" && !status.Valid() {
		return nil, ValidationError(CodeApplicationValidationError, "Invalid application status",
			map[string]string{"status": "oneof=pending selected rejected"})
	}
	influencerID, err := s.influencers.IDByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ForbiddenError(CodeNotInfluencer, "Not an influencer")
		}
		return nil, s.internal("list_mine", CodeApplicationFetchError, "Failed to fetch influencer profile", err)
	}
	list, err := s.applications.ListByInfluencer(ctx, influencerID, status)
	if err != nil {
		return nil, s.internal("list_mine", CodeApplicationFetchError, "Failed to fetch applications", err)
	}
	return &models.ApplicationListResponse{Applications: list}, nil
}

func (s *ApplicationService) ListForCampaign(ctx context.Context, caller models.Caller, campaignID int64) (*models.CampaignApplicationListResponse, error) {
	if _, err := s.ownedCampaign(ctx, "list_for_campaign", caller, campaignID); err != nil {
		return nil, err
	}
	list, err := s.applications.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, s.internal("list_for_campaign", CodeApplicationFetchError, "Failed to fetch applications", err)
	}
	return &models.CampaignApplicationListResponse{Applications: list}, nil
}

// Select finalizes a closed campaign: the given pending applications become
// selected, every other pending one is rejected and the campaign moves to
// selected. Selected influencers are emailed after the change commits.
func (s *ApplicationService) Select(ctx context.Context, caller models.Caller, campaignID int64, applicationIDs []int64) (*models.SelectionResponse, error) {
	if len(applicationIDs) == 0 {
		return nil, ValidationError(CodeApplicationValidationError, "At least one application must be selected",
			map[string]string{"selectedApplicationIds": "min=1"})
	}

	c, err := s.ownedCampaign(ctx, "select", caller, campaignID)
	if err != nil {
		return nil, err
	}
	if err := selectable(c.Status); err != nil {
		return nil, err
	}

	result, err := s.campaigns.FinalizeSelection(ctx, campaignID, c.AdvertiserID, applicationIDs)
	if err != nil {
		var conflict *interfaces.StatusConflictError
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			return nil, NotFoundError(CodeApplicationNotFound, "Campaign not found or unauthorized")
		case errors.As(err, &conflict):
			if svcErr := selectable(models.CampaignStatus(conflict.Current)); svcErr != nil {
				return nil, svcErr
			}
			return nil, ValidationError(CodeCampaignAlreadySelected, "Campaign selection has already been finalized", nil)
		}
		return nil, s.internal("select", CodeApplicationUpdateError, "Failed to update applications", err)
	}

	s.metrics.RecordSelection(len(result.Selected), int(result.Rejected))
	s.metrics.RecordCampaignTransition(string(models.CampaignStatusSelected))
	publish(ctx, s.events, s.logger, events.New(events.CampaignSelectionFinished, map[string]any{
		"campaignId": campaignID, "selected": result.Selected, "rejected": result.Rejected,
	}))
	s.notifier.Notify(ctx, c)

	return &models.SelectionResponse{Success: true, SelectionResult: *result}, nil
}

// Status reports whether the caller has applied to the campaign. Callers
// without an influencer profile simply have not applied.
func (s *ApplicationService) Status(ctx context.Context, caller models.Caller, campaignID int64) (*models.ApplicationStatusResponse, error) {
	influencerID, err := s.influencers.IDByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.ApplicationStatusResponse{HasApplied: false}, nil
		}
		return nil, s.internal("status", CodeApplicationFetchError, "Failed to fetch influencer profile", err)
	}

	a, err := s.applications.GetByCampaignAndInfluencer(ctx, campaignID, influencerID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.ApplicationStatusResponse{HasApplied: false}, nil
		}
		return nil, s.internal("status", CodeApplicationFetchError, "Failed to fetch application", err)
	}
	return &models.ApplicationStatusResponse{HasApplied: true, ApplicationStatus: a.Status}, nil
}

func (s *ApplicationService) ownedCampaign(ctx context.Context, op string, caller models.Caller, campaignID int64) (*models.Campaign, error) {
	advertiserID, err := s.advertisers.IDByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ForbiddenError(CodeApplicationUnauthorized, "Not an advertiser")
		}
		return nil, s.internal(op, CodeApplicationFetchError, "Failed to fetch advertiser profile", err)
	}
	c, err := s.campaigns.GetOwned(ctx, campaignID, advertiserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeApplicationNotFound, "Campaign not found or unauthorized")
		}
		return nil, s.internal(op, CodeApplicationFetchError, "Failed to fetch campaign", err)
	}
	return c, nil
}

func selectable(status models.CampaignStatus) *Error {
	switch status {
	case models.CampaignStatusRecruiting:
		return ValidationError(CodeApplicationValidationError, "Campaign must be closed before selection", nil)
	case models.CampaignStatusSelected:
		return ValidationError(CodeCampaignAlreadySelected, "Campaign selection has already been finalized", nil)
	}
	return nil
}

func (s *ApplicationService) internal(op, code, message string, err error) *Error {
	level.Error(s.logger).Log("op", "application."+op, "code", code, "err", err)
	return InternalError(code, message, err)
}
