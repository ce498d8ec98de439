package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kit/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

type countingRepo struct {
	interfaces.CampaignRepository
	campaigns map[int64]models.Campaign
	getCalls  int
	listCalls int
	// afterRead runs once a row has been read but before it is returned.
	afterRead func()
}

func (r *countingRepo) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	r.getCalls++
	c, ok := r.campaigns[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if r.afterRead != nil {
		r.afterRead()
		r.afterRead = nil
	}
	return &c, nil
}

func (r *countingRepo) List(ctx context.Context, filter interfaces.CampaignFilter) ([]models.Campaign, error) {
	r.listCalls++
	out := []models.Campaign{}
	for _, c := range r.campaigns {
		if filter.Status == "" || c.Status == filter.Status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *countingRepo) TransitionStatus(ctx context.Context, id int64, from, to models.CampaignStatus) error {
	c := r.campaigns[id]
	if c.Status != from {
		return &interfaces.StatusConflictError{Resource: "campaign", Expected: string(from)}
	}
	c.Status = to
	r.campaigns[id] = c
	return nil
}

func newTestCache(t *testing.T) (*CampaignCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCampaignCache(client, time.Minute), mr
}

func seedRepo() *countingRepo {
	return &countingRepo{campaigns: map[int64]models.Campaign{
		1: {
			ID: 1, AdvertiserID: 7, Title: "Brunch review", MaxParticipants: 5,
			RecruitmentStartDate: models.NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			RecruitmentEndDate:   models.NewDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)),
			Status:               models.CampaignStatusRecruiting,
			BusinessName:         "Cafe",
		},
	}}
}

func TestGetByIDServesSecondReadFromCache(t *testing.T) {
	c, _ := newTestCache(t)
	inner := seedRepo()
	repo := NewCachedCampaignRepository(inner, c, log.NewNopLogger())
	ctx := context.Background()

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.getCalls)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, "Cafe", second.BusinessName)
	assert.Equal(t, "2025-01-10", second.RecruitmentEndDate.String())
}

func TestNotFoundIsNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	inner := seedRepo()
	repo := NewCachedCampaignRepository(inner, c, log.NewNopLogger())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Equal(t, 2, inner.getCalls)
}

func TestTransitionInvalidatesCachedLists(t *testing.T) {
	c, _ := newTestCache(t)
	inner := seedRepo()
	repo := NewCachedCampaignRepository(inner, c, log.NewNopLogger())
	ctx := context.Background()
	filter := interfaces.CampaignFilter{Status: models.CampaignStatusRecruiting}

	list, err := repo.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.listCalls)

	require.NoError(t, repo.TransitionStatus(ctx, 1, models.CampaignStatusRecruiting, models.CampaignStatusClosed))

	list, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 2, inner.listCalls)
}

func TestFailedWriteKeepsCache(t *testing.T) {
	c, mr := newTestCache(t)
	inner := seedRepo()
	repo := NewCachedCampaignRepository(inner, c, log.NewNopLogger())
	ctx := context.Background()

	err := repo.TransitionStatus(ctx, 1, models.CampaignStatusClosed, models.CampaignStatusSelected)
	assert.Error(t, err)
	assert.False(t, mr.Exists(versionKey))
}

func TestRedisOutageFallsBackToRepository(t *testing.T) {
	c, mr := newTestCache(t)
	inner := seedRepo()
	repo := NewCachedCampaignRepository(inner, c, log.NewNopLogger())

	mr.Close()

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Brunch review", got.Title)
	assert.Equal(t, 1, inner.getCalls)
}

func TestWriteDuringReadDoesNotCacheStaleRow(t *testing.T) {
	c, _ := newTestCache(t)
	inner := seedRepo()
	repo := NewCachedCampaignRepository(inner, c, log.NewNopLogger())
	ctx := context.Background()

	// A close commits while the first read is still in flight.
	inner.afterRead = func() {
		require.NoError(t, repo.TransitionStatus(ctx, 1, models.CampaignStatusRecruiting, models.CampaignStatusClosed))
	}

	stale, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusRecruiting, stale.Status)

	fresh, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusClosed, fresh.Status)
	assert.Equal(t, 2, inner.getCalls)
}

func TestKeyTracksGeneration(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before, err := c.Key(ctx, "detail:1")
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, before, map[string]int{"id": 1}))
	require.NoError(t, c.Invalidate(ctx))

	after, err := c.Key(ctx, "detail:1")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	var got map[string]int
	assert.ErrorIs(t, c.Get(ctx, after, &got), ErrCacheMiss)
	require.NoError(t, c.Get(ctx, before, &got))
	assert.Equal(t, 1, got["id"])
}
