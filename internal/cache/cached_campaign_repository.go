package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

// CachedCampaignRepository serves public campaign reads from redis and
// drops the cached generation after every write.
type CachedCampaignRepository struct {
	interfaces.CampaignRepository
	cache  *CampaignCache
	logger log.Logger
}

func NewCachedCampaignRepository(next interfaces.CampaignRepository, cache *CampaignCache, logger log.Logger) *CachedCampaignRepository {
	return &CachedCampaignRepository{CampaignRepository: next, cache: cache, logger: logger}
}

var _ interfaces.CampaignRepository = (*CachedCampaignRepository)(nil)

func (r *CachedCampaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	key, ok := r.key(ctx, fmt.Sprintf("detail:%d", id))
	if ok {
		var cached models.Campaign
		if r.load(ctx, key, &cached) {
			return &cached, nil
		}
	}

	c, err := r.CampaignRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		r.store(ctx, key, c)
	}
	return c, nil
}

func (r *CachedCampaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]models.Campaign, error) {
	key, ok := r.key(ctx, fmt.Sprintf("list:%s:%d", filter.Status, filter.AdvertiserID))
	if ok {
		var cached []models.Campaign
		if r.load(ctx, key, &cached) {
			return cached, nil
		}
	}

	list, err := r.CampaignRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if ok {
		r.store(ctx, key, list)
	}
	return list, nil
}

func (r *CachedCampaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	if err := r.CampaignRepository.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedCampaignRepository) TransitionStatus(ctx context.Context, id int64, from, to models.CampaignStatus) error {
	if err := r.CampaignRepository.TransitionStatus(ctx, id, from, to); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedCampaignRepository) FinalizeSelection(ctx context.Context, campaignID, advertiserID int64, applicationIDs []int64) (*models.SelectionResult, error) {
	res, err := r.CampaignRepository.FinalizeSelection(ctx, campaignID, advertiserID, applicationIDs)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return res, nil
}

func (r *CachedCampaignRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	if err := r.CampaignRepository.SetImageURL(ctx, id, imageURL); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// key returns false when the cache cannot be consulted at all.
func (r *CachedCampaignRepository) key(ctx context.Context, name string) (string, bool) {
	key, err := r.cache.Key(ctx, name)
	if err != nil {
		level.Warn(r.logger).Log("msg", "campaign cache unavailable", "name", name, "err", err)
		return "", false
	}
	return key, true
}

func (r *CachedCampaignRepository) load(ctx context.Context, key string, dest any) bool {
	err := r.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrCacheMiss) {
		level.Warn(r.logger).Log("msg", "campaign cache read failed", "key", key, "err", err)
	}
	return false
}

func (r *CachedCampaignRepository) store(ctx context.Context, key string, value any) {
	if err := r.cache.Set(ctx, key, value); err != nil {
		level.Warn(r.logger).Log("msg", "campaign cache write failed", "key", key, "err", err)
	}
}

func (r *CachedCampaignRepository) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		level.Error(r.logger).Log("msg", "campaign cache invalidation failed", "err", err)
	}
}
