package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func draftCampaign(t *testing.T) *Campaign {
	t.Helper()
	c, err := NewCampaign("acc-1", "SaaS founders", CadenceDaily, Criteria{Keywords: "saas"}, 40)
	assert.NoError(t, err)
	return c
}

func TestNewCampaignStartsAsDraft(t *testing.T) {
	c := draftCampaign(t)
	assert.Equal(t, CampaignStatusDraft, c.Status)
	assert.Nil(t, c.NextRunAt)
	assert.Equal(t, 50, c.MaxLeadsPerRun)
}

func TestCampaignValidation(t *testing.T) {
	_, err := NewCampaign("", "x", CadenceDaily, Criteria{Keywords: "saas"}, 40)
	assert.Error(t, err)

	_, err = NewCampaign("acc-1", "", CadenceDaily, Criteria{Keywords: "saas"}, 40)
	assert.Error(t, err)

	_, err = NewCampaign("acc-1", "x", "hourly", Criteria{Keywords: "saas"}, 40)
	assert.Error(t, err)

	_, err = NewCampaign("acc-1", "x", CadenceDaily, Criteria{Keywords: "saas"}, 105)
	assert.Error(t, err)

	_, err = NewCampaign("acc-1", "x", CadenceDaily, Criteria{}, 40)
	assert.Error(t, err, "empty criteria must be rejected")
}

func TestCustomCadenceNeedsFrequency(t *testing.T) {
	_, err := NewCampaign("acc-1", "x", CadenceCustom, Criteria{Keywords: "saas"}, 40)
	assert.Error(t, err)

	c, err := NewCampaign("acc-1", "x", CadenceDaily, Criteria{Keywords: "saas"}, 40)
	assert.NoError(t, err)
	c.Cadence = CadenceCustom
	c.FrequencyHours = 6
	assert.NoError(t, c.Validate())
}

func TestActivateSchedulesFirstRunSoon(t *testing.T) {
	c := draftCampaign(t)
	now := time.Now().UTC()

	assert.NoError(t, c.Activate(now))
	assert.Equal(t, CampaignStatusActive, c.Status)
	assert.Equal(t, now.Add(5*time.Minute), *c.NextRunAt)
}

func TestActivateKeepsExistingSchedule(t *testing.T) {
	c := draftCampaign(t)
	now := time.Now().UTC()
	assert.NoError(t, c.Activate(now))
	planned := *c.NextRunAt

	assert.NoError(t, c.Pause(now))
	assert.NoError(t, c.Activate(now.Add(time.Hour)))
	assert.Equal(t, planned, *c.NextRunAt)
}

func TestLifecycleTransitions(t *testing.T) {
	c := draftCampaign(t)
	now := time.Now().UTC()

	assert.Error(t, c.Pause(now), "draft cannot be paused")
	assert.NoError(t, c.Activate(now))
	assert.Error(t, c.Activate(now), "active cannot be re-activated")
	assert.NoError(t, c.Pause(now))
	assert.NoError(t, c.Cancel(now))
	assert.Error(t, c.Cancel(now), "cancel is terminal")
	assert.Error(t, c.Activate(now), "cancelled cannot be activated")
}

func TestRemainingQuota(t *testing.T) {
	c := draftCampaign(t)
	c.MaxLeadsPerRun = 50

	assert.Equal(t, 50, c.RemainingQuota(), "no total cap")

	c.MaxLeadsTotal = 120
	c.TotalLeadsGenerated = 100
	assert.Equal(t, 20, c.RemainingQuota(), "total cap closer than per-run cap")

	c.TotalLeadsGenerated = 120
	assert.Equal(t, 0, c.RemainingQuota())
	assert.True(t, c.HasReachedTotalLimit())
}

func TestUpdateAfterRunSchedulesByCadence(t *testing.T) {
	now := time.Now().UTC()

	c := draftCampaign(t)
	assert.NoError(t, c.Activate(now))
	c.UpdateAfterRun(now, 10)
	assert.Equal(t, now.Add(24*time.Hour), *c.NextRunAt)
	assert.Equal(t, 10, c.TotalLeadsGenerated)

	c.Cadence = CadenceWeekly
	c.UpdateAfterRun(now, 5)
	assert.Equal(t, now.Add(7*24*time.Hour), *c.NextRunAt)

	c.Cadence = CadenceCustom
	c.FrequencyHours = 6
	c.UpdateAfterRun(now, 5)
	assert.Equal(t, now.Add(6*time.Hour), *c.NextRunAt)
}

func TestUpdateAfterRunCompletesAtTotalCap(t *testing.T) {
	now := time.Now().UTC()
	c := draftCampaign(t)
	assert.NoError(t, c.Activate(now))
	c.MaxLeadsTotal = 30
	c.TotalLeadsGenerated = 25

	c.UpdateAfterRun(now, 10)

	assert.Equal(t, CampaignStatusCompleted, c.Status)
	assert.Nil(t, c.NextRunAt)
}
