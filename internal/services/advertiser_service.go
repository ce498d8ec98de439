package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/metrics"
	"campaignhub/internal/models"
)

type AdvertiserService struct {
	advertisers interfaces.AdvertiserRepository
	metrics     *metrics.Metrics
	logger      log.Logger
}

func NewAdvertiserService(advertisers interfaces.AdvertiserRepository, m *metrics.Metrics, logger log.Logger) *AdvertiserService {
	return &AdvertiserService{advertisers: advertisers, metrics: m, logger: logger}
}

func (s *AdvertiserService) CreateProfile(ctx context.Context, caller models.Caller, req models.CreateAdvertiserProfileRequest) (*models.CreateAdvertiserProfileResponse, error) {
	if err := roleMismatch(caller, models.RoleAdvertiser); err != nil {
		return nil, err
	}

	p := &models.AdvertiserProfile{
		UserID:                     caller.UserID,
		BusinessName:               req.BusinessName,
		Location:                   req.Location,
		Category:                   req.Category,
		BusinessRegistrationNumber: normalizeBusinessNumber(req.BusinessRegistrationNumber),
	}
	if err := s.advertisers.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrDuplicateBusinessNumber):
			return nil, ConflictError(CodeDuplicateBusinessNumber, "Business registration number already exists")
		case errors.Is(err, interfaces.ErrAlreadyExists):
			return nil, ConflictError(CodeAdvertiserAlreadyExists, "Advertiser profile already exists")
		}
		level.Error(s.logger).Log("op", "advertiser.create_profile", "user_id", caller.UserID, "err", err)
		return nil, InternalError(CodeAdvertiserCreateError, "Failed to create advertiser profile", err)
	}

	s.metrics.RecordProfileCreated(string(models.RoleAdvertiser))
	return &models.CreateAdvertiserProfileResponse{AdvertiserID: p.ID}, nil
}

func (s *AdvertiserService) GetMyProfile(ctx context.Context, caller models.Caller) (*models.AdvertiserProfile, error) {
	p, err := s.advertisers.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeAdvertiserNotFound, "Advertiser profile not found")
		}
		level.Error(s.logger).Log("op", "advertiser.get_profile", "user_id", caller.UserID, "err", err)
		return nil, InternalError(CodeAdvertiserFetchError, "Failed to fetch advertiser profile", err)
	}
	return p, nil
}

// normalizeBusinessNumber strips the xxx-xx-xxxxx separators so both written
// forms of a registration number share one stored value.
func normalizeBusinessNumber(n string) string {
	return strings.ReplaceAll(strings.TrimSpace(n), "-", "")
}
