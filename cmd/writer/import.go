package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/writer/pkg/cedict"
	"github.com/japaniel/writer/pkg/db"
	"github.com/japaniel/writer/pkg/ingest"
)

const defaultDictName = "cc-cedict"

func newImportCmd(a *app) *cobra.Command {
	var name string
	var download bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace a dictionary with the contents of a CC-CEDICT file",
		Long: `Parse a CC-CEDICT source (plain or gzip-compressed) and make it the
complete content of the named dictionary. Nothing is changed if any line
fails to parse or the write fails.`,
		Example: `  writer import cedict_ts.u8
  writer import cedict.txt --download --name cc-cedict-2024`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()

			if download {
				if err := cedict.EnsureSource(ctx, path, a.cfg.Import.SourceURL); err != nil {
					return fmt.Errorf("fetch dictionary source: %w", err)
				}
			}

			src, err := cedict.OpenSource(path)
			if err != nil {
				return err
			}
			defer src.Close()

			return a.withStore(ctx, func(store *db.Store) error {
				im := ingest.NewImporter(store)
				im.Workers = a.cfg.Import.Workers
				im.ChunkSize = a.cfg.Import.ChunkSize
				im.Logger = a.logger

				n, err := im.Import(ctx, name, src)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %q.\n", n, name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", defaultDictName, "Dictionary name")
	cmd.Flags().BoolVar(&download, "download", false, "Download the configured source into FILE if it does not exist")
	return cmd
}
