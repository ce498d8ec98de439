package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", d.String())

	d, err = ParseDate("2025-01-05T23:10:00+09:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", d.String())

	_, err = ParseDate("05/01/2025")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Visit Date  `json:"visit"`
		Empty *Date `json:"empty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"visit":"2025-01-05","empty":null}`), &payload))
	assert.Equal(t, 2025, payload.Visit.Year())
	assert.Equal(t, time.January, payload.Visit.Month())
	assert.Nil(t, payload.Empty)

	out, err := json.Marshal(payload.Visit)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-05"`, string(out))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-10", d.String())

	require.NoError(t, d.Scan([]byte("2025-02-01")))
	assert.Equal(t, "2025-02-01", d.String())

	require.NoError(t, d.Scan("2025-03-01T00:00:00Z"))
	assert.Equal(t, "2025-03-01", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestCampaignStatusTransitions(t *testing.T) {
	assert.True(t, CampaignStatusRecruiting.CanTransitionTo(CampaignStatusClosed))
	assert.True(t, CampaignStatusClosed.CanTransitionTo(CampaignStatusSelected))

	assert.False(t, CampaignStatusRecruiting.CanTransitionTo(CampaignStatusSelected))
	assert.False(t, CampaignStatusClosed.CanTransitionTo(CampaignStatusRecruiting))
	assert.False(t, CampaignStatusSelected.CanTransitionTo(CampaignStatusClosed))
	assert.False(t, CampaignStatusSelected.CanTransitionTo(CampaignStatusRecruiting))

	assert.True(t, CampaignStatusSelected.Valid())
	assert.False(t, CampaignStatus("draft").Valid())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("influencer")
	require.NoError(t, err)
	assert.Equal(t, RoleInfluencer, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}
