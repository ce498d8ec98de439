package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/internal/events"
	"campaignhub/internal/models"
)

func onboardAdvertiser(t *testing.T, h *harness, email, bizno string) models.Caller {
	t.Helper()
	caller := signup(t, h, email, models.RoleAdvertiser)
	_, err := h.advertisers.CreateProfile(context.Background(), caller, models.CreateAdvertiserProfileRequest{
		BusinessName: "Biz " + bizno, Location: "Seoul", Category: "food", BusinessRegistrationNumber: bizno,
	})
	require.NoError(t, err)
	return caller
}

func onboardInfluencer(t *testing.T, h *harness, email string) models.Caller {
	t.Helper()
	caller := signup(t, h, email, models.RoleInfluencer)
	_, err := h.influencers.CreateProfile(context.Background(), caller, models.CreateInfluencerProfileRequest{
		BirthDate: "1995-03-03", Channels: channel(),
	})
	require.NoError(t, err)
	return caller
}

func campaignRequest() models.CreateCampaignRequest {
	return models.CreateCampaignRequest{
		Title:                "Brunch review",
		RecruitmentStartDate: "2025-01-01",
		RecruitmentEndDate:   "2025-01-10",
		MaxParticipants:      5,
		Benefits:             "Free brunch for two",
		StoreInfo:            "Gangnam-gu, Seoul",
		Mission:              "Post one review with three photos",
	}
}

func TestCreateCampaign(t *testing.T) {
	h := newHarness("2025-01-01")
	ctx := context.Background()
	owner := onboardAdvertiser(t, h, "owner@example.com", "123-45-67890")

	resp, err := h.campaigns.Create(ctx, owner, campaignRequest())
	require.NoError(t, err)

	c, err := h.campaigns.Get(ctx, resp.CampaignID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusRecruiting, c.Status)
	assert.Equal(t, "Biz 123-45-67890", c.BusinessName)
	assert.Equal(t, "2025-01-10", c.RecruitmentEndDate.String())
	assert.Equal(t, []string{events.CampaignCreated}, h.events.types())
}

func TestCreateCampaignValidation(t *testing.T) {
	h := newHarness("2025-01-01")
	ctx := context.Background()
	owner := onboardAdvertiser(t, h, "owner@example.com", "123-45-67890")

	req := campaignRequest()
	req.RecruitmentStartDate, req.RecruitmentEndDate = "2025-01-10", "2025-01-10"
	_, err := h.campaigns.Create(ctx, owner, req)
	requireServiceError(t, err, http.StatusBadRequest, CodeInvalidRecruitmentDates)

	req = campaignRequest()
	req.RecruitmentEndDate = "10/01/2025"
	_, err = h.campaigns.Create(ctx, owner, req)
	requireServiceError(t, err, http.StatusBadRequest, CodeCampaignValidationError)

	influencer := onboardInfluencer(t, h, "inf@example.com")
	_, err = h.campaigns.Create(ctx, influencer, campaignRequest())
	requireServiceError(t, err, http.StatusForbidden, CodeNotAdvertiser)
}

func TestListCampaigns(t *testing.T) {
	h := newHarness("2025-01-01")
	ctx := context.Background()
	a := onboardAdvertiser(t, h, "a@example.com", "111-11-11111")
	b := onboardAdvertiser(t, h, "b@example.com", "222-22-22222")

	first, err := h.campaigns.Create(ctx, a, campaignRequest())
	require.NoError(t, err)
	second, err := h.campaigns.Create(ctx, b, campaignRequest())
	require.NoError(t, err)
	_, err = h.campaigns.Close(ctx, a, first.CampaignID)
	require.NoError(t, err)

	all, err := h.campaigns.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all.Campaigns, 2)
	assert.Equal(t, second.CampaignID, all.Campaigns[0].ID)

	recruiting, err := h.campaigns.List(ctx, models.CampaignStatusRecruiting)
	require.NoError(t, err)
	require.Len(t, recruiting.Campaigns, 1)
	assert.Equal(t, second.CampaignID, recruiting.Campaigns[0].ID)

	mine, err := h.campaigns.ListMine(ctx, a)
	require.NoError(t, err)
	require.Len(t, mine.Campaigns, 1)
	assert.Equal(t, first.CampaignID, mine.Campaigns[0].ID)

	_, err = h.campaigns.List(ctx, "draft")
	requireServiceError(t, err, http.StatusBadRequest, CodeCampaignValidationError)

	_, err = h.campaigns.Get(ctx, 9999)
	requireServiceError(t, err, http.StatusNotFound, CodeCampaignNotFound)
}

func TestCloseCampaignOwnership(t *testing.T) {
	h := newHarness("2025-01-01")
	ctx := context.Background()
	owner := onboardAdvertiser(t, h, "owner@example.com", "111-11-11111")
	other := onboardAdvertiser(t, h, "other@example.com", "222-22-22222")

	created, err := h.campaigns.Create(ctx, owner, campaignRequest())
	require.NoError(t, err)

	_, err = h.campaigns.Close(ctx, other, created.CampaignID)
	requireServiceError(t, err, http.StatusNotFound, CodeCampaignNotFound)

	res, err := h.campaigns.Close(ctx, owner, created.CampaignID)
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = h.campaigns.Close(ctx, owner, created.CampaignID)
	requireServiceError(t, err, http.StatusBadRequest, CodeCampaignAlreadyClosed)
}

func TestUploadCampaignImage(t *testing.T) {
	h := newHarness("2025-01-01")
	ctx := context.Background()
	owner := onboardAdvertiser(t, h, "owner@example.com", "111-11-11111")
	created, err := h.campaigns.Create(ctx, owner, campaignRequest())
	require.NoError(t, err)

	_, err = h.campaigns.UploadImage(ctx, owner, created.CampaignID, "menu.txt", "text/plain", strings.NewReader("x"))
	requireServiceError(t, err, http.StatusBadRequest, CodeCampaignValidationError)

	resp, err := h.campaigns.UploadImage(ctx, owner, created.CampaignID, "Front.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ImageURL, "https://cdn.example.com/campaigns/"))
	assert.True(t, strings.HasSuffix(resp.ImageURL, ".jpg"))

	c, err := h.campaigns.Get(ctx, created.CampaignID)
	require.NoError(t, err)
	require.NotNil(t, c.ImageURL)
	assert.Equal(t, resp.ImageURL, *c.ImageURL)
	assert.Len(t, h.images.objects, 1)

	noStore := NewCampaignService(fakeCampaigns{h.store}, fakeAdvertisers{h.store}, nil, nil, nil, nil)
	_, err = noStore.UploadImage(ctx, owner, created.CampaignID, "a.png", "image/png", strings.NewReader("png"))
	requireServiceError(t, err, http.StatusServiceUnavailable, CodeStorageUnavailable)
}
