package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/models"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage discipline and subject names",
	Long: `Manage the taxonomy used to resolve discipline and subject names.

Ids 1-8 are the predefined disciplines and cannot be changed. Higher
ids are user-defined; plans referring to a discipline with no name get
a placeholder ("Disciplina N") until one is defined here.`,
}

var taxonomySubjects []string

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all disciplines",
	RunE:  runTaxonomyList,
}

var taxonomySetCmd = &cobra.Command{
	Use:   "set <id> <name>",
	Short: "Define or rename a user-defined discipline",
	Long: `Define or rename a user-defined discipline (id > 8).

Examples:
  plansync taxonomy set 9 "Pediatria"
  plansync taxonomy set 9 "Pediatria" --subject 1:Neonatologia --subject 2:Vacinação`,
	Args: cobra.ExactArgs(2),
	RunE: runTaxonomySet,
}

var taxonomyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a user-defined discipline",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaxonomyRemove,
}

func init() {
	taxonomySetCmd.Flags().StringSliceVar(&taxonomySubjects, "subject", nil, "Subject as <id>:<name> (repeatable)")

	taxonomyCmd.AddCommand(taxonomyListCmd)
	taxonomyCmd.AddCommand(taxonomySetCmd)
	taxonomyCmd.AddCommand(taxonomyRemoveCmd)
}

func runTaxonomyList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openTaxonomy()
	if err != nil {
		return trackCLIError("taxonomy", err)
	}
	defer cleanup()

	disciplines, err := svc.List()
	if err != nil {
		return trackCLIError("taxonomy", fmt.Errorf("list disciplines: %w", err))
	}
	sort.Slice(disciplines, func(i, j int) bool { return disciplines[i].ID < disciplines[j].ID })

	fmt.Println("DISCIPLINES")
	fmt.Println("──────────────────────────────────────────────────")
	for _, disc := range disciplines {
		tag := ""
		if disc.ID <= models.PredefinedDisciplineMax {
			tag = dimStyle.Render(" (predefined)")
		}
		fmt.Printf("  %2d  %s%s\n", disc.ID, disc.Name, tag)
		for _, sub := range disc.Subjects {
			fmt.Printf("      %2d  %s\n", sub.ID, sub.Name)
		}
	}
	return nil
}

func runTaxonomySet(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openTaxonomy()
	if err != nil {
		return trackCLIError("taxonomy", err)
	}
	defer cleanup()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return trackCLIError("taxonomy", fmt.Errorf("invalid discipline id %q", args[0]))
	}

	disc := &models.Discipline{ID: id, Name: args[1]}
	for _, spec := range taxonomySubjects {
		idPart, name, ok := strings.Cut(spec, ":")
		if !ok || name == "" {
			return trackCLIError("taxonomy", fmt.Errorf("invalid --subject value %q (expected <id>:<name>)", spec))
		}
		subID, err := strconv.Atoi(idPart)
		if err != nil {
			return trackCLIError("taxonomy", fmt.Errorf("invalid subject id in %q", spec))
		}
		disc.Subjects = append(disc.Subjects, models.Subject{DisciplineID: id, ID: subID, Name: name})
	}

	if err := svc.Save(disc); err != nil {
		return trackCLIError("taxonomy", fmt.Errorf("save discipline: %w", err))
	}
	fmt.Printf("Saved discipline %d %q with %d subject(s)\n", id, disc.Name, len(disc.Subjects))
	return nil
}

func runTaxonomyRemove(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openTaxonomy()
	if err != nil {
		return trackCLIError("taxonomy", err)
	}
	defer cleanup()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return trackCLIError("taxonomy", fmt.Errorf("invalid discipline id %q", args[0]))
	}
	if err := svc.Remove(id); err != nil {
		return trackCLIError("taxonomy", fmt.Errorf("remove discipline: %w", err))
	}
	fmt.Printf("Removed discipline %d\n", id)
	return nil
}
