package cmd

import (
	"context"
	"fmt"

	"github.com/chrisns/govreposcrape-sub006/pkg/api"
	"github.com/chrisns/govreposcrape-sub006/pkg/core"
	"github.com/chrisns/govreposcrape-sub006/pkg/metrics"
	"github.com/chrisns/govreposcrape-sub006/pkg/repo/expander"
	"github.com/chrisns/govreposcrape-sub006/pkg/repo/objstore"
	"github.com/chrisns/govreposcrape-sub006/pkg/repo/search"
)

// RunCommand initializes the logger, loads configuration, creates the core and API services,
// and starts the API service. It returns an error if any step fails.
func RunCommand(ctx context.Context, flags *cmdFlags) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize the object store used for metadata probes.
	store, err := objstore.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create object store: %w", err)
	}

	// Initialize the external search index client.
	index, err := search.New(cfg.Search)
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	collector := metrics.NewCollector()

	// Query expansion is best-effort and only enabled when configured.
	var coreOpts []core.Option
	if cfg.Expander.APIKey != "" {
		coreOpts = append(coreOpts, core.WithExpander(expander.New(cfg.Expander)))
	}

	svc := core.New(index, store, collector, coreOpts...)

	apiSvc, err := api.New(cfg.API, svc, collector)
	if err != nil {
		return fmt.Errorf("failed to create API service: %w", err)
	}

	if err := apiSvc.Run(ctx); err != nil {
		return fmt.Errorf("failed to run API service: %w", err)
	}

	return nil
}
