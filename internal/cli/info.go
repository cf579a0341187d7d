package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medjourney/plansync/internal/config"
	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/pkg/version"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, paths and local store statistics",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Println(version.Info())
	if version.IsDevBuild() {
		fmt.Println(dimStyle.Render("development build"))
	} else if version.IsPrerelease() {
		fmt.Println(dimStyle.Render("pre-release build"))
	}
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("info", fmt.Errorf("load config: %w", err))
	}
	paths := config.GetPaths(cfg)

	fmt.Printf("Data directory: %s\n", cfg.BaseDir)
	fmt.Printf("Database:       %s\n", paths.Database)
	if cfg.Remote.BaseURL != "" {
		fmt.Printf("Remote:         %s\n", cfg.Remote.BaseURL)
	} else {
		fmt.Println("Remote:         not configured (offline-only)")
	}
	fmt.Println()

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return trackCLIError("info", fmt.Errorf("initialize database: %w", err))
	}
	defer func() { _ = database.Close() }()

	stats, err := database.GetStats()
	if err != nil {
		return trackCLIError("info", fmt.Errorf("read store stats: %w", err))
	}

	fmt.Printf("Plans:          %d (%d pending sync)\n", stats.TotalPlans, stats.PendingPlans)
	fmt.Printf("Queued entries: %d\n", stats.QueuedEntries)
	if stats.CacheSizeBytes > 0 {
		fmt.Printf("Store size:     %.1f KB\n", float64(stats.CacheSizeBytes)/1024)
	}
	return nil
}
