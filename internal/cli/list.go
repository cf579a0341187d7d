package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all study plans",
	Long: `List all study plans in the local store.

Shows each plan's disciplines, overall progress and sync state. Plans
that have not reached the remote authority yet show as "pending".`,
	RunE: runList,
}

var (
	stateSyncedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	statePendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	stateFailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B"))
)

func runList(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("list", err)
	}
	defer cleanup()

	plans := engine.Plans()
	if len(plans) == 0 {
		fmt.Println("No study plans yet.")
		fmt.Println("\nUse 'plansync create <name> -d <discipline-id>' to create one.")
		return nil
	}

	fmt.Printf("STUDY PLANS (%d)\n", len(plans))
	fmt.Println("──────────────────────────────────────────────────")

	for _, plan := range plans {
		fmt.Printf("  %s %s\n", renderState(plan.Sync), plan.Name)
		fmt.Printf("    %s\n", dimStyle.Render(plan.LocalID))

		for _, disc := range plan.Disciplines {
			fmt.Printf("    %s — %d%% (%d subjects)\n", disc.Name, disc.Progress, len(disc.Subjects))
		}
		if len(plan.Sessions) > 0 {
			fmt.Printf("    %d session(s)\n", len(plan.Sessions))
		}

		lastSync := "never"
		if plan.Sync.LastSyncedAt != nil {
			lastSync = formatTimeSince(*plan.Sync.LastSyncedAt)
		}
		fmt.Printf("    Last synced: %s\n", lastSync)
		fmt.Println()
	}

	return nil
}

// renderState returns a colored sync-state label.
func renderState(s models.SyncStatus) string {
	switch {
	case s.SyncFailed:
		return stateFailedStyle.Render("✗ failed ")
	case s.PendingSync:
		return statePendingStyle.Render("… pending")
	case s.Synced:
		return stateSyncedStyle.Render("✓ synced ")
	default:
		return dimStyle.Render("· local  ")
	}
}

// formatTimeSince formats a duration since a time in a human-readable way.
func formatTimeSince(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
