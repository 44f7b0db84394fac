package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/outlier/dataset"
	"github.com/viant/outlier/engine"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a dataset file into a SQLite items table",
		Long: `Read a dataset file and append its items to a SQLite table, so it can be
scored with --format sqlite or the outlier_scan virtual table.

Examples:
  outlier import ColorMoments.asc --format moments --db corel.sqlite
  outlier import human_gene.data --format fasta --db genes.sqlite --table genes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			dbPath, _ := cmd.Flags().GetString("db")
			table, _ := cmd.Flags().GetString("table")
			format, err := dataset.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if format == dataset.FormatSQLite {
				return fmt.Errorf("import reads dataset files, not %s", format)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			db, err := engine.OpenContext(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			store, err := dataset.NewStore(ctx, db, table)
			if err != nil {
				return err
			}

			var count int
			if format.IsText() {
				ds, err := readTexts(format, f)
				if err != nil {
					return err
				}
				if err := store.AddTexts(ctx, ds); err != nil {
					return err
				}
				count = ds.Len()
			} else {
				ds, err := readVectors(format, f)
				if err != nil {
					return err
				}
				if err := store.AddVectors(ctx, ds); err != nil {
					return err
				}
				count = ds.Len()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items into %s\n", count, store.Table())
			return nil
		},
	}
	cmd.Flags().String("format", string(dataset.FormatMoments), "Dataset format (csv-weight-height, moments, fasta)")
	cmd.Flags().String("db", "outlier.sqlite", "SQLite database")
	cmd.Flags().String("table", dataset.DefaultTable, "Items table")
	return cmd
}
