package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/sync"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage study sessions",
	Long: `Manage study sessions attached to a plan.

Sessions ride their plan's sync lifecycle: adding, completing or
removing one flips the plan to pending and queues it for the remote.`,
}

var (
	sessionDiscipline string
	sessionSubject    string
	sessionWhen       string
	sessionDuration   int
	sessionNotes      string
	sessionActual     int
	sessionNoSync     bool
)

var sessionAddCmd = &cobra.Command{
	Use:   "add <plan-local-id> <title>",
	Short: "Add a study session to a plan",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionAdd,
}

var sessionCompleteCmd = &cobra.Command{
	Use:   "complete <session-id>",
	Short: "Mark a study session completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionComplete,
}

var sessionRemoveCmd = &cobra.Command{
	Use:   "remove <session-id>",
	Short: "Remove a study session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionRemove,
}

func init() {
	sessionAddCmd.Flags().StringVar(&sessionDiscipline, "discipline", "", "Discipline name for the session")
	sessionAddCmd.Flags().StringVar(&sessionSubject, "subject", "", "Subject name for the session")
	sessionAddCmd.Flags().StringVar(&sessionWhen, "date", "", "Scheduled date (YYYY-MM-DD)")
	sessionAddCmd.Flags().IntVar(&sessionDuration, "minutes", 60, "Planned duration in minutes")
	sessionAddCmd.Flags().StringVar(&sessionNotes, "notes", "", "Free-form notes")

	sessionCompleteCmd.Flags().IntVar(&sessionActual, "minutes", 0, "Actual duration in minutes")

	for _, c := range []*cobra.Command{sessionAddCmd, sessionCompleteCmd, sessionRemoveCmd} {
		c.Flags().BoolVar(&sessionNoSync, "no-sync", false, "Skip the background sync attempt")
	}

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionCompleteCmd)
	sessionCmd.AddCommand(sessionRemoveCmd)
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("session", err)
	}
	defer cleanup()

	input := sync.SessionInput{
		PlanLocalID:     args[0],
		Title:           args[1],
		DisciplineName:  sessionDiscipline,
		SubjectName:     sessionSubject,
		DurationMinutes: sessionDuration,
		Notes:           sessionNotes,
	}
	if sessionWhen != "" {
		when, err := parseDate(sessionWhen)
		if err != nil {
			return trackCLIError("session", err)
		}
		input.ScheduledAt = &when
	}

	sess, err := engine.AddSession(input)
	if err != nil {
		return trackCLIError("session", fmt.Errorf("add session: %w", err))
	}

	fmt.Printf("Added session %q (%s)\n", sess.Title, sess.ID)
	if !sessionNoSync {
		attemptSync(cmd.Context(), engine)
	}
	return nil
}

func runSessionComplete(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("session", err)
	}
	defer cleanup()

	completed := true
	update := sync.SessionUpdate{ID: args[0], Completed: &completed}
	if sessionActual > 0 {
		update.ActualDuration = &sessionActual
	}

	sess, err := engine.UpdateSession(update)
	if err != nil {
		return trackCLIError("session", fmt.Errorf("complete session: %w", err))
	}

	fmt.Printf("Completed session %q\n", sess.Title)
	if !sessionNoSync {
		attemptSync(cmd.Context(), engine)
	}
	return nil
}

func runSessionRemove(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return trackCLIError("session", err)
	}
	defer cleanup()

	removed, err := engine.RemoveSession(args[0])
	if err != nil {
		return trackCLIError("session", fmt.Errorf("remove session: %w", err))
	}
	if !removed {
		return trackCLIError("session", fmt.Errorf("session %s not found", args[0]))
	}

	fmt.Println("Removed session.")
	if !sessionNoSync {
		attemptSync(cmd.Context(), engine)
	}
	return nil
}
