package cli

import (
	"context"
	"io"

	"chores/internal/backend/memory"
	"chores/internal/config"
	"chores/internal/logging"
	"chores/internal/seed"
	"chores/internal/service"
)

// MemoryFactory returns a ServiceFactory that builds the in-memory store
// from the configured seed. Store logs go to logOut.
func MemoryFactory(logOut io.Writer) ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		tasks := seed.Default()
		if cfg.SeedFile != "" {
			var err error
			tasks, err = seed.Load(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
		}

		logger, logFile := logging.Open(logOut, logging.Options{Debug: cfg.Debug, Quiet: cfg.Quiet, File: cfg.LogFile})
		store, err := memory.New(tasks,
			memory.WithUndoWindow(cfg.UndoWindow),
			memory.WithLogger(logger),
			memory.WithOnClose(logFile.Close),
		)
		if err != nil {
			logFile.Close()
			return nil, err
		}
		return store, nil
	}
}
