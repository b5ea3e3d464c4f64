package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/config"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/version"
)

func main() {
	if os.Getenv("COVIDBOARD_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := cobra.Command{
		Use:          "covidboard",
		Short:        "covidboard is a terminal dashboard for daily national COVID-19 case counts.",
		SilenceUsage: true,
		Run: func(_ *cobra.Command, _ []string) {
			runDashboard(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Dataset.Path, "data", cfg.Dataset.Path, "dataset file (.json or .db/.sqlite)")
	flags.StringVar(&cfg.Dataset.Format, "format", cfg.Dataset.Format, "dataset format: json or sqlite (default: from extension)")
	flags.StringVar(&cfg.Dataset.Table, "table", cfg.Dataset.Table, "SQLite table holding the timeseries")
	flags.IntVar(&cfg.Chart.Window, "window", cfg.Chart.Window, "trailing moving-average window in days")
	flags.StringVar(&cfg.Theme, "theme", cfg.Theme, "dashboard theme")
	root.Flags().BoolVar(&cfg.UI.Watch, "watch", cfg.UI.Watch, "reload the dashboard when the dataset file changes")

	root.AddCommand(newExportCommand(&cfg))
	root.AddCommand(newSummaryCommand(&cfg))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
