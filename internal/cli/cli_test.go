package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medjourney/plansync/internal/telemetry"
)

func init() {
	telemetryClient = telemetry.NewNoop()
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"load config: missing file", "config_error"},
		{"initialize database: locked", "database_error"},
		{"sync aborted: offline", "network_error"},
		{"connection refused", "network_error"},
		{"permission denied for path", "permission_error"},
		{"plan abc not found", "not_found_error"},
		{"invalid date \"x\"", "validation_error"},
		{"plan name is required", "validation_error"},
		{"something exploded", "unknown_error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyError(errors.New(tt.err)), "error %q", tt.err)
	}
}

func TestTrackCLIErrorPassthrough(t *testing.T) {
	assert.NoError(t, trackCLIError("sync", nil))

	err := errors.New("boom")
	assert.Equal(t, err, trackCLIError("sync", err))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("Connection Timeout", "timeout"))
	assert.False(t, containsAny("all good", "timeout", "offline"))
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.September, got.Month())
	assert.Equal(t, 1, got.Day())

	_, err = parseDate("01/09/2026")
	assert.Error(t, err)
}

func TestFormatTimeSince(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", formatTimeSince(now.Add(-30*time.Second)))
	assert.Equal(t, "1 minute ago", formatTimeSince(now.Add(-90*time.Second)))
	assert.Equal(t, "2 hours ago", formatTimeSince(now.Add(-2*time.Hour)))
	assert.Equal(t, "3 days ago", formatTimeSince(now.Add(-72*time.Hour)))

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Format("2006-01-02"), formatTimeSince(old))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus("active"))
	assert.True(t, validStatus("paused"))
	assert.True(t, validStatus("completed"))
	assert.False(t, validStatus("archived"))
}
