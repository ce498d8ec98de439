package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/metrics"
	"campaignhub/internal/models"
)

type InfluencerService struct {
	influencers interfaces.InfluencerRepository
	clock       Clock
	metrics     *metrics.Metrics
	logger      log.Logger
}

func NewInfluencerService(influencers interfaces.InfluencerRepository, clock Clock, m *metrics.Metrics, logger log.Logger) *InfluencerService {
	return &InfluencerService{influencers: influencers, clock: clock, metrics: m, logger: logger}
}

func (s *InfluencerService) CreateProfile(ctx context.Context, caller models.Caller, req models.CreateInfluencerProfileRequest) (*models.CreateInfluencerProfileResponse, error) {
	if err := roleMismatch(caller, models.RoleInfluencer); err != nil {
		return nil, err
	}

	birth, err := models.ParseDate(req.BirthDate)
	if err != nil {
		return nil, ValidationError(CodeInfluencerValidationError, "Invalid date format", map[string]string{"birthDate": "ymd"})
	}
	if AgeOn(birth, s.clock.Today()) < MinimumInfluencerAge {
		return nil, ValidationError(CodeAgeTooYoung, fmt.Sprintf("User must be at least %d years old", MinimumInfluencerAge), nil)
	}
	if len(req.Channels) == 0 {
		return nil, ValidationError(CodeInfluencerValidationError, "At least one channel is required", nil)
	}

	p := &models.InfluencerProfile{UserID: caller.UserID, BirthDate: birth}
	for _, ch := range req.Channels {
		p.Channels = append(p.Channels, models.InfluencerChannel{
			Platform:           models.Platform(ch.Platform),
			ChannelName:        ch.ChannelName,
			ChannelURL:         ch.ChannelURL,
			FollowerCount:      ch.FollowerCount,
			VerificationStatus: models.VerificationPending,
		})
	}

	if err := s.influencers.Create(ctx, p); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			return nil, ConflictError(CodeInfluencerAlreadyExists, "Influencer profile already exists")
		}
		level.Error(s.logger).Log("op", "influencer.create_profile", "user_id", caller.UserID, "err", err)
		return nil, InternalError(CodeInfluencerCreateError, "Failed to create influencer profile", err)
	}

	s.metrics.RecordProfileCreated(string(models.RoleInfluencer))
	return &models.CreateInfluencerProfileResponse{InfluencerID: p.ID, Channels: p.Channels}, nil
}

func (s *InfluencerService) GetMyProfile(ctx context.Context, caller models.Caller) (*models.InfluencerProfile, error) {
	p, err := s.influencers.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NotFoundError(CodeInfluencerNotFound, "Influencer profile not found")
		}
		level.Error(s.logger).Log("op", "influencer.get_profile", "user_id", caller.UserID, "err", err)
		return nil, InternalError(CodeInfluencerFetchError, "Failed to fetch influencer profile", err)
	}
	return p, nil
}
