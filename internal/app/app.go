package app

import (
	"context"
	"fmt"

	"github.com/gilleon/book-journal/internal/api"
	"github.com/gilleon/book-journal/internal/config"
	"github.com/gilleon/book-journal/internal/controller"
	"github.com/gilleon/book-journal/internal/identity"
	"github.com/gilleon/book-journal/internal/logging"
	"github.com/gilleon/book-journal/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
}

// Run boots the book journal TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	client, err := api.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := identity.NewFileStore(cfg.ReaderPath)
	resolver := identity.NewResolver(store, client, logger)

	reader, err := resolver.Current()
	if err != nil {
		logger.Warn().Err(err).Msg("stored reader unreadable, starting onboarding")
		reader = nil
	}

	books := controller.NewBooks(client, logger)
	readers := controller.NewReaders(client, logger)
	session := controller.NewSession(client, logger)

	logger.Info().Str("api", cfg.APIBaseURL).Msg("starting book journal")

	// Prime the catalog before the first frame; failures surface in the UI.
	_ = books.FetchAll(ctx)

	uiOpts := ui.Options{
		Context:  ctx,
		Books:    books,
		Readers:  readers,
		Session:  session,
		Resolver: resolver,
		Reader:   reader,
		Logger:   logger,
	}
	return ui.Run(uiOpts)
}
