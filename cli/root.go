// Package cli provides the Cobra-based CLI for the inventory.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"stockroom/store"
)

var (
	rootCmd = &cobra.Command{
		Use:           "inventory",
		Short:         "A product inventory management system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// already loaded: tests inject state, and the shell re-enters here
			if inventory != nil {
				if inShell {
					return rejectStartupFlags(cmd.Root().PersistentFlags())
				}
				return nil
			}
			return setup(cmd)
		},
	}

	appFs afero.Fs = afero.NewOsFs()

	inventory *store.Inventory
	persister store.Persister
	dataFile  string
	autosave  bool
	inShell   bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data-file", "data/inventory.json", "inventory snapshot path")
	pf.String("format", "", "snapshot format: json|lines|sqlite (default inferred from --data-file)")
	pf.Bool("autosave", true, "save after every change")
	pf.String("log-level", "info", "log level: debug|info|warn|error")
	pf.String("log-format", "text", "log format: text|json")
	pf.String("config", "", "config file")
}

func setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	format := cfg.Format
	if format == "" {
		format = store.FormatFromPath(cfg.DataFile)
	}
	p, err := store.NewPersister(format, appFs)
	if err != nil {
		return err
	}

	start := time.Now()
	inv, warnings, err := p.Load(cmd.Context(), cfg.DataFile)
	if err != nil {
		slog.Error("load failed", "path", cfg.DataFile, "format", format, "error", err)
		return err
	}
	for _, w := range warnings {
		slog.Warn("skipped malformed record", "path", cfg.DataFile, "position", w.Position, "error", w.Err)
	}
	slog.Debug("inventory loaded",
		"path", cfg.DataFile,
		"format", format,
		"products", inv.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	inventory, persister, dataFile, autosave = inv, p, cfg.DataFile, cfg.Autosave
	return nil
}

// rejectStartupFlags fails when a shell line sets a root flag. Those flags
// are only read when the inventory is first loaded.
func rejectStartupFlags(flags *pflag.FlagSet) error {
	var name string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed && name == "" {
			name = f.Name
		}
	})
	if name != "" {
		return fmt.Errorf("--%s only applies when the shell starts", name)
	}
	return nil
}

// persist writes the inventory back to the data file when autosave is on.
// A failure leaves the in-memory state as it is.
func persist(ctx context.Context) error {
	if !autosave {
		return nil
	}
	start := time.Now()
	if err := persister.Save(ctx, inventory, dataFile); err != nil {
		slog.Error("autosave failed", "path", dataFile, "error", err)
		return fmt.Errorf("autosave: %w", err)
	}
	slog.Debug("inventory saved",
		"path", dataFile,
		"products", inventory.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
