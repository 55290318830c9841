package config

import (
	"benchscope/internal/benchmark"

	"github.com/spf13/viper"
)

// Settings is the typed view of the loaded configuration.
type Settings struct {
	DataDir     string
	Extension   string
	Cutoff      *float64 // nil unless an explicit override is configured
	CutoffMode  benchmark.CutoffMode
	OnError     benchmark.ErrorPolicy
	Format      string
	ChartOutput string
	ChartTitle  string
	ChartWidth  float64 // inches per panel
	ChartHeight float64 // inches
	ChartLogX   bool
	MetricsFile string
	Verbose     bool
	LogFile     string
}

// Current validates the configuration and returns it as Settings.
func Current() (*Settings, error) {
	if err := ValidateConfig(); err != nil {
		return nil, err
	}

	// Validated above, errors cannot occur here.
	mode, _ := benchmark.ParseCutoffMode(viper.GetString("cutoff_mode"))
	policy, _ := benchmark.ParseErrorPolicy(viper.GetString("on_error"))

	s := &Settings{
		DataDir:     viper.GetString("data_dir"),
		Extension:   viper.GetString("extension"),
		CutoffMode:  mode,
		OnError:     policy,
		Format:      viper.GetString("format"),
		ChartOutput: viper.GetString("chart.output"),
		ChartTitle:  viper.GetString("chart.title"),
		ChartWidth:  viper.GetFloat64("chart.width"),
		ChartHeight: viper.GetFloat64("chart.height"),
		ChartLogX:   viper.GetBool("chart.log_x"),
		MetricsFile: viper.GetString("metrics_file"),
		Verbose:     viper.GetBool("verbose"),
		LogFile:     viper.GetString("log_file"),
	}
	if viper.IsSet("cutoff") {
		c := viper.GetFloat64("cutoff")
		s.Cutoff = &c
	}
	return s, nil
}

// Options returns the derivation options implied by s.
func (s *Settings) Options() benchmark.Options {
	return benchmark.Options{Mode: s.CutoffMode, Override: s.Cutoff}
}
