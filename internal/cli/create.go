package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/models"
	"github.com/medjourney/plansync/internal/sync"
)

var (
	createDescription string
	createDisciplines []int
	createStart       string
	createEnd         string
	createNoSync      bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new study plan",
	Long: `Create a new study plan with one or more disciplines.

The plan is stored locally right away and queued for remote creation;
no network access is needed. Discipline ids 1-8 are the predefined set
(use 'plansync taxonomy list' to see them), higher ids must be defined
first with 'plansync taxonomy set'.

Examples:
  # Plan covering Anatomia and Fisiologia
  plansync create "Primeiro semestre" -d 1 -d 2

  # Plan with a date range
  plansync create "Revisão final" -d 5 --start 2026-09-01 --end 2026-12-15`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Plan description")
	createCmd.Flags().IntSliceVarP(&createDisciplines, "discipline", "d", nil, "Discipline id to include (repeatable)")
	createCmd.Flags().StringVar(&createStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	createCmd.Flags().StringVar(&createEnd, "end", "", "End date (YYYY-MM-DD)")
	createCmd.Flags().BoolVar(&createNoSync, "no-sync", false, "Skip the background sync attempt")
}

func runCreate(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("create", err)
	}
	defer cleanup()

	input := sync.CreatePlanInput{
		Name:        args[0],
		Description: createDescription,
	}
	for _, id := range createDisciplines {
		input.Disciplines = append(input.Disciplines, sync.DisciplineSelection{
			ID:       id,
			Priority: models.PriorityMedium,
		})
	}

	if createStart != "" {
		start, err := parseDate(createStart)
		if err != nil {
			return trackCLIError("create", err)
		}
		input.StartDate = &start
	}
	if createEnd != "" {
		end, err := parseDate(createEnd)
		if err != nil {
			return trackCLIError("create", err)
		}
		input.EndDate = &end
	}

	plan, err := engine.CreatePlan(input)
	if err != nil {
		return trackCLIError("create", fmt.Errorf("create plan: %w", err))
	}

	fmt.Printf("Created plan %q (%s)\n", plan.Name, plan.LocalID)
	fmt.Printf("  %d discipline(s), status %s\n", len(plan.Disciplines), plan.Sync.State())

	if !createNoSync {
		attemptSync(cmd.Context(), engine)
	}
	return nil
}

// parseDate parses a YYYY-MM-DD date in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}
