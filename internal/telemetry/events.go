package telemetry

import (
	"runtime"

	"github.com/medjourney/plansync/pkg/version"
)

// Event names - CLI
const (
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
)

// Event names - plan lifecycle
const (
	EventPlanCreated  = "plan_created"
	EventPlanRemoved  = "plan_removed"
	EventSessionAdded = "session_added"
)

// Event names - sync
const (
	EventSyncCompleted = "sync_completed"
	EventSyncSkipped   = "sync_skipped"
)

// baseProperties returns properties attached to every event.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"app_version": version.Short(),
		"os":          runtime.GOOS,
		"arch":        runtime.GOARCH,
	}
}

func (c *posthogClient) track(event string, props map[string]interface{}) {
	merged := baseProperties()
	for k, v := range props {
		merged[k] = v
	}
	c.Track(event, merged)
}

// TrackCLICommandExecuted records a CLI command invocation.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	c.track(EventCLICommandExecuted, map[string]interface{}{
		"command_name": commandName,
		"has_flags":    hasFlags,
		"duration_ms":  durationMs,
	})
}

// TrackCLIError records a classified CLI error.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	c.track(EventCLIErrorOccurred, map[string]interface{}{
		"command_name": commandName,
		"error_type":   errorType,
	})
}

// TrackPlanCreated records a local plan creation.
func (c *posthogClient) TrackPlanCreated(disciplineCount int) {
	c.track(EventPlanCreated, map[string]interface{}{
		"discipline_count": disciplineCount,
	})
}

// TrackPlanRemoved records a local plan removal.
func (c *posthogClient) TrackPlanRemoved(wasSynced bool) {
	c.track(EventPlanRemoved, map[string]interface{}{
		"was_synced": wasSynced,
	})
}

// TrackSessionAdded records a study session creation.
func (c *posthogClient) TrackSessionAdded() {
	c.track(EventSessionAdded, nil)
}

// TrackSyncCompleted records the outcome of a reconciliation pass.
func (c *posthogClient) TrackSyncCompleted(created, updated, pulled, deleted, errorCount int) {
	c.track(EventSyncCompleted, map[string]interface{}{
		"plans_created": created,
		"plans_updated": updated,
		"plans_pulled":  pulled,
		"plans_deleted": deleted,
		"error_count":   errorCount,
	})
}

// TrackSyncSkipped records a pass that aborted before doing any work.
func (c *posthogClient) TrackSyncSkipped(reason string) {
	c.track(EventSyncSkipped, map[string]interface{}{
		"reason": reason,
	})
}

// No-op implementations for disabled telemetry.

func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                {}
func (c *noopClient) TrackPlanCreated(disciplineCount int)                                       {}
func (c *noopClient) TrackPlanRemoved(wasSynced bool)                                            {}
func (c *noopClient) TrackSessionAdded()                                                         {}
func (c *noopClient) TrackSyncCompleted(created, updated, pulled, deleted, errorCount int)       {}
func (c *noopClient) TrackSyncSkipped(reason string)                                             {}
