package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/tgsms/internal/config"
	"github.com/wizzomafizzo/tgsms/internal/database"
	"github.com/wizzomafizzo/tgsms/internal/history"
	"github.com/wizzomafizzo/tgsms/internal/logging"
	"github.com/wizzomafizzo/tgsms/internal/storage"
)

// environment bundles what every command needs: a logger in ctx, the config
// store and, when the database could be opened, the send journal
type environment struct {
	ctx     context.Context //nolint:containedctx // lives for one command invocation
	store   *config.Store
	journal *history.Journal
	db      *database.Manager
}

func openEnvironment(cmd *cobra.Command) (*environment, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	fs := afero.NewOsFs()
	logCfg := logging.Config{
		SessionID: uuid.NewString(),
		Level:     logging.ParseLevel(levelName),
	}

	ctx, err := logging.New(cmd.Context(), fs, logCfg)
	if err != nil {
		// keep working without a log file
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
		logCfg.Writer = io.Discard
		ctx, err = logging.New(cmd.Context(), nil, logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	env := &environment{
		ctx:   ctx,
		store: config.NewStore(fs, configPath),
	}

	logger := logging.Get(ctx)
	dbPath, err := storage.New(fs).GetDatabasePath()
	if err != nil {
		logger.Warn().Err(err).Msg("send history unavailable")
		return env, nil
	}
	db, err := database.NewManager(ctx, dbPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", dbPath).Msg("send history unavailable")
		return env, nil
	}

	env.db = db
	env.journal = history.New(db.DB())
	logger.Debug().Str("config", configPath).Str("history", dbPath).Msg("environment ready")
	return env, nil
}

func (e *environment) Close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			logging.Get(e.ctx).Warn().Err(err).Msg("failed to close history database")
		}
	}
}
