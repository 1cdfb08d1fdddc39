package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/atomicsite"
	"github.com/eringen/atomicsite/content"
)

func newImportCmd(opts *options) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import [site.yaml]",
		Short: "Replace the chronicle catalog in the SQLite database",
		Long: `import reads the chronicles list from a site.yaml document and writes it to
the database, replacing whatever was there. Without an argument the entries
compiled into the binary are imported. Restart the server to pick them up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = opts.cfg.DatabasePath
			}
			if dbPath == "" {
				return errors.New("no database: set database_path or pass --db")
			}

			var (
				raw []byte
				err error
			)
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = content.Embedded.ReadFile("site.yaml")
			}
			if err != nil {
				return fmt.Errorf("read chronicles: %w", err)
			}
			data, err := content.ParseData(raw)
			if err != nil {
				return err
			}

			store, err := atomicsite.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", dbPath, err)
			}
			defer store.Close()
			if err := store.ReplaceEntries(data.Chronicles); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d chronicles into %s\n", len(data.Chronicles), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides database_path from config)")
	return cmd
}
