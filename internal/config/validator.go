package config

import (
	"fmt"
	"math"

	"benchscope/internal/benchmark"

	"github.com/spf13/viper"
)

// Formats lists the supported report formats.
var Formats = []string{"text", "markdown", "json"}

// ValidateConfig validates configuration values and returns an error listing
// every invalid one. It should be called after Load.
func ValidateConfig() error {
	var errors []string

	if viper.GetString("extension") == "" {
		errors = append(errors, "extension must not be empty")
	}

	// unset means "use the cutoffs from the filenames"
	if viper.IsSet("cutoff") {
		cutoff := viper.GetFloat64("cutoff")
		if !(cutoff > 0) || math.IsInf(cutoff, 0) {
			errors = append(errors, fmt.Sprintf("cutoff must be a positive number of seconds, got: %v", cutoff))
		}
	}

	if _, err := benchmark.ParseCutoffMode(viper.GetString("cutoff_mode")); err != nil {
		errors = append(errors, err.Error())
	}

	if _, err := benchmark.ParseErrorPolicy(viper.GetString("on_error")); err != nil {
		errors = append(errors, err.Error())
	}

	if format := viper.GetString("format"); !validFormat(format) {
		errors = append(errors, fmt.Sprintf("format must be one of %v, got: %q", Formats, format))
	}

	for _, key := range []string{"chart.width", "chart.height"} {
		if v := viper.GetFloat64(key); v <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %v", key, v))
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
