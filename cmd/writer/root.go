package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/japaniel/writer/pkg/config"
	"github.com/japaniel/writer/pkg/db"
)

// app carries what the subcommands share: flags, the loaded configuration
// and the logger.
type app struct {
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "writer",
		Short: "Chinese dictionary storage and import",
		Long: `writer keeps CC-CEDICT dictionaries in a local SQLite database.

Import a dictionary source, then look words up by the start of their
simplified or traditional headword.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", config.DefaultPath, "Path to config file")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "Path to SQLite database (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newImportCmd(a),
		newSearchCmd(a),
		newDocumentCmd(a),
		newDictCmd(a),
	)
	return root
}

// setup loads the configuration once and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.cfgFile)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// withStore opens the configured database for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(*db.Store) error) error {
	store, err := db.Open(ctx, a.cfg.Database, db.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Debug("database opened", "path", a.cfg.Database)
	defer store.Close()
	return fn(store)
}
