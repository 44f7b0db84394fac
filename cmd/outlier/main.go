package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outlier",
		Short: "Exact top-N distance-based outlier detection",
		Long: `outlier ranks the N most anomalous items of a dataset, scoring each item
by the mean distance to its k nearest neighbors. Divisive clustering prunes
most pairwise comparisons while the reported ranking stays exact.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML run configuration")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newCompareCmd(),
		newImportCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "outlier version %s\n", version)
		},
	}
}
