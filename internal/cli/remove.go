package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	removeForce  bool
	removeNoSync bool
)

var removeCmd = &cobra.Command{
	Use:     "remove <local-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a study plan (alias: rm)",
	Long: `Remove a study plan from the local store.

The plan disappears locally right away. If it was ever synced, its
remote copy is queued for deletion and removed on the next sync; a
failed remote delete keeps retrying without resurrecting the plan.

Examples:
  # Remove with confirmation
  plansync remove 5e9f...

  # Remove without confirmation
  plansync remove 5e9f... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
	removeCmd.Flags().BoolVar(&removeNoSync, "no-sync", false, "Skip the background sync attempt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("remove", err)
	}
	defer cleanup()

	localID := args[0]
	plan := engine.Plan(localID)
	if plan == nil {
		return trackCLIError("remove", fmt.Errorf("plan %s not found", localID))
	}

	if !removeForce {
		fmt.Printf("Remove plan %q? [y/N] ", plan.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := engine.RemovePlan(localID)
	if err != nil {
		return trackCLIError("remove", fmt.Errorf("remove plan: %w", err))
	}
	if !removed {
		return trackCLIError("remove", fmt.Errorf("plan %s not found", localID))
	}

	fmt.Printf("Removed plan %q\n", plan.Name)
	if plan.RemoteID != nil {
		fmt.Printf("Remote copy (%d) queued for deletion.\n", *plan.RemoteID)
	}

	if !removeNoSync {
		attemptSync(cmd.Context(), engine)
	}
	return nil
}
