package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/chart"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/config"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/dataset"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/export"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

func loadSeries(ctx context.Context, cfg *config.Config) (*series.Series, error) {
	d, err := dataset.Load(ctx, cfg.Source())
	if err != nil {
		return nil, err
	}
	s, err := d.Enrich(cfg.Chart.Window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Source, err)
	}
	return s, nil
}

func newExportCommand(cfg *config.Config) *cobra.Command {
	var (
		output    string
		highlight int
	)
	cmd := &cobra.Command{
		Use:   "export [svg|png]",
		Short: "Render the national chart to an SVG or PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := export.FormatForPath(output, export.FormatSVG)
			if len(args) == 1 {
				f, err := export.ParseFormat(args[0])
				if err != nil {
					return err
				}
				format = f
			}

			s, err := loadSeries(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			opts := export.Options{
				Chart:     cfg.ChartOptions(),
				Style:     chart.DefaultStyle(),
				Highlight: highlight,
			}
			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return export.Render(w, format, s, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&cfg.Chart.Width, "width", cfg.Chart.Width, "image width in pixels")
	cmd.Flags().IntVar(&cfg.Chart.Height, "height", cfg.Chart.Height, "image height in pixels")
	cmd.Flags().IntVar(&highlight, "highlight", -1, "index of the day to highlight with a tooltip")
	return cmd
}

func newSummaryCommand(cfg *config.Config) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the most recent days with their moving averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSeries(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return export.WriteSummary(cmd.OutOrStdout(), s, days)
		},
	}
	cmd.Flags().IntVarP(&days, "days", "n", 14, "number of days to list")
	return cmd
}

func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if strings.TrimSpace(path) == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
