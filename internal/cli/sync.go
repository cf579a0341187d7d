package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncDeletesOnly bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile local plans with the remote authority",
	Long: `Run one full reconciliation pass against the remote authority.

The pass drains the delete, create and update queues in that order,
then pulls remote plans that are new or newer than the local copy.
Items that fail are left queued and retried on the next pass.

Examples:
  # Full reconciliation
  plansync sync

  # Only flush pending remote deletions
  plansync sync --deletes-only`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDeletesOnly, "deletes-only", false, "Only drain the delete queue")
}

func runSync(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("sync", err)
	}
	defer cleanup()

	if syncDeletesOnly {
		qr := engine.ProcessDeleteQueue(cmd.Context())
		if !qr.Success {
			for _, e := range qr.Errors {
				fmt.Println(stateFailedStyle.Render("  " + e))
			}
			return trackCLIError("sync", fmt.Errorf("delete queue not fully drained"))
		}
		fmt.Printf("Processed %d remote deletion(s).\n", qr.Processed)
		return nil
	}

	res := engine.Synchronize(cmd.Context())
	if !res.Success && res.Reason != "" {
		return trackCLIError("sync", fmt.Errorf("sync aborted: %s", res.Reason))
	}

	fmt.Printf("Sync finished: %d created, %d updated, %d pulled, %d deleted\n",
		res.Created, res.Updated, res.Pulled, res.Deleted)
	for _, e := range res.Errors {
		fmt.Println(stateFailedStyle.Render("  " + e))
	}
	if len(res.Errors) > 0 {
		fmt.Println("Failed items stay queued and will be retried.")
	}
	return nil
}
