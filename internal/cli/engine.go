package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/medjourney/plansync/internal/config"
	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/internal/remote"
	"github.com/medjourney/plansync/internal/sync"
	"github.com/medjourney/plansync/internal/taxonomy"
)

// loadedConfig is the config of the current command invocation, set by
// openEngine so attemptSync can honor the auto-sync setting.
var loadedConfig *config.Config

// openEngine wires up the full stack for one command invocation: config,
// database, taxonomy, remote transport and the sync engine. The returned
// cleanup closes the database.
func openEngine() (*sync.Engine, *db.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	loadedConfig = cfg

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	cleanup := func() { _ = database.Close() }

	var client remote.Client
	if cfg.Remote.BaseURL != "" {
		client = remote.NewHTTPClient(
			cfg.Remote.BaseURL,
			cfg.Remote.Token,
			time.Duration(cfg.Remote.TimeoutSeconds)*time.Second,
		)
	}

	engine, err := sync.NewEngine(database, client, taxonomy.NewService(database), telemetryClient)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("initialize sync engine: %w", err)
	}
	if cfg.Sync.MinIntervalSeconds > 0 {
		engine.SetSyncInterval(time.Duration(cfg.Sync.MinIntervalSeconds) * time.Second)
	}
	return engine, database, cleanup, nil
}

// openTaxonomy opens just the store-backed taxonomy service, without the
// sync engine on top.
func openTaxonomy() (*taxonomy.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	return taxonomy.NewService(database), func() { _ = database.Close() }, nil
}

// attemptSync runs a reconciliation pass after a mutation. Offline is the
// normal case, not an error: the change is queued and the next sync picks
// it up.
func attemptSync(ctx context.Context, engine *sync.Engine) {
	if loadedConfig != nil && !loadedConfig.Sync.AutoSync {
		fmt.Println("Auto-sync disabled; run 'plansync sync' to push queued changes.")
		return
	}

	res := engine.Synchronize(ctx)
	switch {
	case res.Success:
		if res.Created+res.Updated+res.Pulled+res.Deleted > 0 {
			fmt.Printf("Synced: %d created, %d updated, %d pulled, %d deleted\n",
				res.Created, res.Updated, res.Pulled, res.Deleted)
		}
	case res.Reason == sync.ReasonOffline:
		fmt.Println("Offline; changes queued and will sync when the server is reachable.")
	case res.Reason != "":
		fmt.Printf("Sync incomplete (%s); queued changes will be retried.\n", res.Reason)
	default:
		fmt.Printf("Sync finished with %d error(s); affected items stay queued.\n", len(res.Errors))
	}
}
