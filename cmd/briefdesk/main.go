// Command briefdesk is the topic briefing console. It wires the
// config store, webhook backend, staging storage, and core services
// into the CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driven/webhook"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/briefdesk-cli/internal/core/services"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	// Without a configured base URL the stores run local-only and
	// report the degradation per operation.
	var backend driven.Backend
	if baseURL := cfg.GetString(driven.ConfigKeyBaseURL); baseURL != "" {
		backend = webhook.NewClient(baseURL, cfg)
	}

	reporter := services.NewReporter()
	catalog := services.NewTopicCatalog(backend, reporter)

	stores := map[domain.Kind]driving.ContentService{
		domain.KindQA:        services.NewContentStore(domain.KindQA, backend, reporter),
		domain.KindCriticism: services.NewContentStore(domain.KindCriticism, backend, reporter),
		domain.KindDocument:  services.NewContentStore(domain.KindDocument, backend, reporter),
		domain.KindMember:    services.NewContentStore(domain.KindMember, backend, reporter),
	}

	// Removing a topic invalidates every collection loaded under it.
	catalog.SetOnRemoved(func(name string) {
		for kind, store := range stores {
			if kind != domain.KindMember && store.Topic() == name {
				store.Clear()
			}
		}
	})

	staging := newStagingStore(cfg)
	uploads := services.NewUploadQueue(backend, staging, stores[domain.KindDocument], reporter)
	if err := uploads.Restore(context.Background()); err != nil {
		logger.Warn("restore staged uploads: %v", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Catalog:  catalog,
		Stores:   stores,
		Uploads:  uploads,
		Reporter: reporter,
		Config:   cfg,
		Flush: func() {
			for _, store := range stores {
				if cs, ok := store.(*services.ContentStore); ok {
					cs.WaitDispatches()
				}
			}
			catalog.WaitDispatches()
		},
	})

	return cli.Execute()
}

// newStagingStore opens the sqlite staging store, falling back to the
// in-memory store when the database cannot be opened.
func newStagingStore(cfg driven.ConfigStore) driven.StagingStore {
	dataDir := cfg.GetString(driven.ConfigKeyStagingDB)
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("open staging database: %v, staged uploads will not persist", err)
		return memory.NewStagingStore()
	}
	return store
}
