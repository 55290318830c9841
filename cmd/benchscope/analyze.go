package main

import (
	"fmt"
	"log/slog"
	"time"

	"benchscope/internal/benchmark"
	"benchscope/internal/chart"
	"benchscope/internal/config"
	"benchscope/internal/report"
	"benchscope/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "Rank every algorithm/variant by its restricted maximum",
		Long: `Loads every measurement file in the data directory (default ./data),
groups the series by algorithm and variant and prints one
"algorithm[variant]: size" line per series, ascending by size. The size is
the one of the slowest observation whose runtime stays within the cutoff.

By default each series uses the cutoff from its own filename. With
--cutoff-mode=shared every series uses the cutoff of the last file read.
--cutoff overrides both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("ext", ".dat", "Extension of measurement files")
	cmd.Flags().Float64("cutoff", 0, "Time budget in seconds for every series (default: the filename cutoffs)")
	cmd.Flags().String("cutoff-mode", "per-series", "Cutoff resolution: per-series or shared")
	cmd.Flags().String("on-error", "abort", "Malformed files: abort or skip")
	cmd.Flags().StringP("format", "f", "text", "Report format: text, markdown or json")
	cmd.Flags().String("chart", "", "Also draw runtime curves to this file (.png, .svg, .pdf)")
	cmd.Flags().Bool("log-x", false, "Use a logarithmic size axis in the chart")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics in text format to this file")

	if err := config.BindFlags(cmd.Flags(), map[string]string{
		"extension":    "ext",
		"cutoff":       "cutoff",
		"cutoff_mode":  "cutoff-mode",
		"on_error":     "on-error",
		"format":       "format",
		"chart.output": "chart",
		"chart.log_x":  "log-x",
		"metrics_file": "metrics-file",
	}); err != nil {
		panic(err)
	}
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set("data_dir", args[0])
	}
	s, closeLog, err := loadSettings()
	if err != nil {
		return err
	}
	defer closeLog()

	start := time.Now()
	metrics := telemetry.NewMetrics()
	defer func() {
		if s.MetricsFile == "" {
			return
		}
		metrics.ObserveDuration(start)
		if err := metrics.WriteFile(s.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics", "error", err)
		}
	}()

	results, err := benchmark.Scan(s.DataDir, s.Extension, s.OnError)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			metrics.TrackFile(0, benchmark.ErrorKind(r.Err))
		} else {
			metrics.TrackFile(len(r.Measurement.Series), "")
		}
	}
	if len(results) == 0 {
		return benchmark.ErrNoData
	}

	ds, err := benchmark.Collect(results, s.OnError)
	if err != nil {
		return fmt.Errorf("analysis aborted: %w", err)
	}
	if ds.Len() == 0 {
		return benchmark.ErrNoData
	}
	slog.Info("Loaded measurements", "dir", s.DataDir, "files", len(results), "series", ds.Len(), "variants", len(ds.Variants()))

	opts := s.Options()
	if opts.Override == nil && opts.Mode == benchmark.CutoffShared {
		cutoff, _ := ds.SharedCutoff()
		slog.Info("Using shared cutoff from last file", "cutoff", cutoff)
	}

	rankings, err := benchmark.Rank(ds, opts)
	if err != nil {
		return err
	}
	for _, r := range rankings {
		metrics.TrackDerivation(r.OK())
		if !r.OK() {
			slog.Warn("No observation within cutoff", "series", r.Key.String(), "cutoff", r.Cutoff)
		}
	}

	if err := report.Write(cmd.OutOrStdout(), s.Format, rankings); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if s.ChartOutput != "" {
		panels, err := chart.Build(ds, chart.Options{
			Title:      s.ChartTitle,
			PanelWidth: s.ChartWidth,
			Height:     s.ChartHeight,
			LogX:       s.ChartLogX,
		})
		if err != nil {
			return fmt.Errorf("failed to build chart: %w", err)
		}
		if err := panels.Save(s.ChartOutput); err != nil {
			return err
		}
	}
	return nil
}
