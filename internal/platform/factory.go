package platform

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/aretw0/jurnalo/pkg/adapters/sqlstore"
	"github.com/aretw0/jurnalo/pkg/core"
	"github.com/aretw0/jurnalo/pkg/seed"
)

// Journal bundles the opened store with the service in front of it.
type Journal struct {
	Store   *sqlstore.Store
	Service *core.Service
	Config  *Config
}

// Close releases the database.
func (j *Journal) Close() error {
	return j.Store.Close()
}

// Open connects to the configured database, migrates the schema and, when a
// seed file is configured and the database is empty, seeds it.
//
//	journal, err := platform.Open(ctx, cfg, platform.WithLogger(logger))
func Open(ctx context.Context, cfg *Config, opts ...Option) (*Journal, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := sqlstore.Open(ctx, cfg.Driver, cfg.DatabaseDSN(),
		sqlstore.WithLogger(logger),
		sqlstore.WithClock(o.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}

	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, err
	}

	journal := &Journal{
		Store:   store,
		Service: core.NewService(store),
		Config:  cfg,
	}

	if o.seed && cfg.Seed != "" {
		if _, err := journal.SeedFrom(ctx, cfg.Seed); err != nil {
			store.Close()
			return nil, err
		}
	}
	return journal, nil
}

// SeedFrom loads the seed file at path into the journal if it is empty.
// It reports whether anything was written.
func (j *Journal) SeedFrom(ctx context.Context, path string) (bool, error) {
	doc, err := seed.Load(path)
	if err != nil {
		return false, errors.Wrap(err, "failed to load seed")
	}
	seeded, err := j.Service.Seed(ctx, doc.SeedData())
	if err != nil {
		return false, errors.Wrap(err, "failed to seed journal")
	}
	return seeded, nil
}
