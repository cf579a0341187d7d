package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/models"
	"github.com/medjourney/plansync/internal/sync"
)

var (
	editName        string
	editDescription string
	editStatus      string
	editStart       string
	editEnd         string
	editComplete    []string
	editNoSync      bool
)

var editCmd = &cobra.Command{
	Use:   "edit <local-id>",
	Short: "Edit a study plan",
	Long: `Edit a study plan's fields or mark subjects completed.

Changes are applied locally and queued for the remote authority. A plan
that was never synced stays in the create queue; an already-synced plan
moves to the update queue.

Examples:
  # Rename a plan
  plansync edit 5e9f... --name "Revisão intensiva"

  # Pause a plan
  plansync edit 5e9f... --status paused

  # Mark subject 3 of discipline 1 completed
  plansync edit 5e9f... --complete 1:3`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New plan name")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	editCmd.Flags().StringVar(&editStatus, "status", "", "New status (active, paused, completed)")
	editCmd.Flags().StringVar(&editStart, "start", "", "New start date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New end date (YYYY-MM-DD)")
	editCmd.Flags().StringSliceVar(&editComplete, "complete", nil, "Mark a subject completed, as <discipline-id>:<subject-id> (repeatable)")
	editCmd.Flags().BoolVar(&editNoSync, "no-sync", false, "Skip the background sync attempt")
}

func runEdit(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("edit", err)
	}
	defer cleanup()

	localID := args[0]
	input := sync.UpdatePlanInput{LocalID: localID}
	changed := false

	if cmd.Flags().Changed("name") {
		input.Name = &editName
		changed = true
	}
	if cmd.Flags().Changed("description") {
		input.Description = &editDescription
		changed = true
	}
	if cmd.Flags().Changed("status") {
		status := models.PlanStatus(editStatus)
		if !validStatus(status) {
			return trackCLIError("edit", fmt.Errorf("invalid status %q", editStatus))
		}
		input.Status = &status
		changed = true
	}
	if editStart != "" {
		start, err := parseDate(editStart)
		if err != nil {
			return trackCLIError("edit", err)
		}
		input.StartDate = &start
		changed = true
	}
	if editEnd != "" {
		end, err := parseDate(editEnd)
		if err != nil {
			return trackCLIError("edit", err)
		}
		input.EndDate = &end
		changed = true
	}

	if changed {
		if _, err := engine.UpdatePlan(input); err != nil {
			return trackCLIError("edit", fmt.Errorf("update plan: %w", err))
		}
	}

	for _, pair := range editComplete {
		var discID, subID int
		if _, err := fmt.Sscanf(pair, "%d:%d", &discID, &subID); err != nil {
			return trackCLIError("edit", fmt.Errorf("invalid --complete value %q (expected <discipline-id>:<subject-id>)", pair))
		}
		if _, err := engine.SetSubjectCompleted(localID, discID, subID, true); err != nil {
			return trackCLIError("edit", fmt.Errorf("complete subject %d of discipline %d: %w", subID, discID, err))
		}
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change.")
		return nil
	}

	plan := engine.Plan(localID)
	if plan != nil {
		fmt.Printf("Updated plan %q (%s)\n", plan.Name, plan.Sync.State())
	}

	if !editNoSync {
		attemptSync(cmd.Context(), engine)
	}
	return nil
}

func validStatus(s models.PlanStatus) bool {
	for _, v := range models.ValidPlanStatuses() {
		if s == v {
			return true
		}
	}
	return false
}
