package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnabledRespectsOptOut(t *testing.T) {
	orig := PostHogAPIKey
	PostHogAPIKey = "phc_test"
	t.Cleanup(func() { PostHogAPIKey = orig })

	t.Setenv("PLANSYNC_TELEMETRY_TRACKING_ENABLED", "false")
	assert.False(t, IsEnabled())

	t.Setenv("PLANSYNC_TELEMETRY_TRACKING_ENABLED", "true")
	assert.True(t, IsEnabled())

	t.Setenv("PLANSYNC_TELEMETRY_TRACKING_ENABLED", "")
	assert.True(t, IsEnabled())
}

func TestIsEnabledRequiresAPIKey(t *testing.T) {
	orig := PostHogAPIKey
	PostHogAPIKey = ""
	t.Cleanup(func() { PostHogAPIKey = orig })

	t.Setenv("PLANSYNC_TELEMETRY_TRACKING_ENABLED", "true")
	assert.False(t, IsEnabled())
}

func TestNewWithoutAPIKeyIsNoop(t *testing.T) {
	orig := PostHogAPIKey
	PostHogAPIKey = ""
	t.Cleanup(func() { PostHogAPIKey = orig })

	c := New(nil)
	assert.Equal(t, "", c.GetTrackingID())

	// All tracking calls must be safe on the noop client
	c.Track("event", nil)
	c.TrackPlanCreated(2)
	c.TrackSyncCompleted(1, 2, 3, 4, 0)
	c.TrackSyncSkipped("offline")
	c.Close()
}

func TestNewNoop(t *testing.T) {
	c := NewNoop()
	assert.Equal(t, "", c.GetTrackingID())
	c.TrackCLIError("sync", "network_error")
	c.Close()
}
