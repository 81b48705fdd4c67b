package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stockroom/store"
)

func init() {
	// save
	var sFile, sFormat string
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Write the inventory to the data file, or export it with --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, p := dataFile, persister
			if sFile != "" || sFormat != "" {
				if sFile != "" {
					path = sFile
				}
				format := sFormat
				if format == "" {
					format = store.FormatFromPath(path)
				}
				var err error
				if p, err = store.NewPersister(format, appFs); err != nil {
					return err
				}
			}

			start := time.Now()
			if err := p.Save(cmd.Context(), inventory, path); err != nil {
				slog.Error("save failed", "path", path, "error", err)
				return err
			}
			slog.Info("inventory saved",
				"path", path,
				"products", inventory.Len(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d products to %s\n", inventory.Len(), path)
			return nil
		},
	}
	saveCmd.Flags().StringVar(&sFile, "file", "", "output file (default the data file)")
	saveCmd.Flags().StringVar(&sFormat, "format", "", "output format: json|lines|sqlite (default inferred from --file)")
	rootCmd.AddCommand(saveCmd)

	// import
	var iFile, iFormat string
	importCmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Add every product from another snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iFile == "" {
				return errors.New("--file required")
			}
			format := store.FormatFromPath(iFile)
			if iFormat != "" {
				var err error
				if format, err = store.CanonicalFormat(iFormat); err != nil {
					return err
				}
			}
			if err := requireFile(format, iFile); err != nil {
				return err
			}
			p, err := store.NewPersister(format, appFs)
			if err != nil {
				return err
			}

			src, warnings, err := p.Load(cmd.Context(), iFile)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				slog.Warn("skipped malformed record", "path", iFile, "position", w.Position, "error", w.Err)
			}

			var errs []error
			added := 0
			for _, prod := range src.List() {
				if err := inventory.Add(prod); err != nil {
					slog.Warn("import skipped product", "product_id", prod.ID(), "error", err)
					errs = append(errs, err)
					continue
				}
				added++
			}
			slog.Info("import finished", "path", iFile, "added", added, "skipped", len(errs)+len(warnings))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d products\n", added, src.Len())

			if added > 0 {
				if err := persist(cmd.Context()); err != nil {
					errs = append(errs, err)
				}
			}
			if len(errs) > 0 {
				return fmt.Errorf("import incomplete: %w", errors.Join(errs...))
			}
			return nil
		},
	}
	importCmd.Flags().StringVar(&iFile, "file", "", "input file")
	importCmd.Flags().StringVar(&iFormat, "format", "", "input format: json|lines|sqlite (default inferred from --file)")
	rootCmd.AddCommand(importCmd)
}

// requireFile rejects a missing import source; Load alone would treat it as
// an empty inventory. format must already be canonical.
func requireFile(format, path string) error {
	var err error
	if format == store.FormatSQLite {
		_, err = os.Stat(path)
	} else {
		_, err = appFs.Stat(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("import file not found: %s", path)
		}
		return err
	}
	return nil
}

