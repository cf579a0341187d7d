package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/models"
	"github.com/medjourney/plansync/internal/sync"
)

var statusCmd = &cobra.Command{
	Use:   "status [local-id]",
	Short: "Show sync status and queue contents",
	Long: `Show the synchronization status of the local store.

Without arguments, prints the three sync queues and a per-plan summary.
With a plan's local id, prints that plan's detailed sync state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("status", err)
	}
	defer cleanup()

	if len(args) == 1 {
		return runStatusOne(engine, args[0])
	}

	queues, err := engine.Queues()
	if err != nil {
		return trackCLIError("status", fmt.Errorf("read sync queues: %w", err))
	}

	fmt.Println("SYNC QUEUES")
	fmt.Println("──────────────────────────────────────────────────")
	printQueue("create", queues.Create, queues)
	printQueue("update", queues.Update, queues)
	printQueue("delete", queues.Delete, queues)
	fmt.Println()

	plans := engine.Plans()
	if len(plans) == 0 {
		fmt.Println("No study plans.")
		return nil
	}

	fmt.Println("PLANS")
	fmt.Println("──────────────────────────────────────────────────")
	for _, plan := range plans {
		fmt.Printf("  %s %s\n", renderState(plan.Sync), plan.Name)
		if plan.Sync.SyncFailed && plan.Sync.ErrorMessage != "" {
			fmt.Printf("    %s\n", stateFailedStyle.Render(plan.Sync.ErrorMessage))
		}
	}
	return nil
}

func runStatusOne(engine *sync.Engine, localID string) error {
	plan := engine.Plan(localID)
	if plan == nil {
		return trackCLIError("status", fmt.Errorf("plan %s not found", localID))
	}

	fmt.Printf("%s %s\n", renderState(plan.Sync), plan.Name)
	fmt.Printf("  Local id:  %s\n", plan.LocalID)
	if plan.RemoteID != nil {
		fmt.Printf("  Remote id: %d\n", *plan.RemoteID)
	} else {
		fmt.Println("  Remote id: not assigned yet")
	}
	if plan.Sync.LastSyncedAt != nil {
		fmt.Printf("  Last synced: %s\n", formatTimeSince(*plan.Sync.LastSyncedAt))
	} else {
		fmt.Println("  Last synced: never")
	}
	if plan.Sync.SyncFailed {
		fmt.Printf("  Error: %s\n", plan.Sync.ErrorMessage)
	}
	return nil
}

// printQueue renders one queue with first-enqueued ages.
func printQueue(name string, ids []string, queues models.SyncQueues) {
	if len(ids) == 0 {
		fmt.Printf("  %s: empty\n", name)
		return
	}
	fmt.Printf("  %s (%d):\n", name, len(ids))
	for _, id := range ids {
		age := ""
		if at, ok := queues.Timestamps[id]; ok {
			age = dimStyle.Render(" queued " + formatTimeSince(at))
		}
		fmt.Printf("    %s%s\n", id, age)
	}
}
