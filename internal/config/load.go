package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BENCHSCOPE_DATA_DIR.
const EnvPrefix = "BENCHSCOPE"

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error.
func Load(cfgFile string) error {
	// explicit .env loading, a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchscope")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
		return nil
	}
	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	return nil
}

// SetDefaults registers the default value of every key. cutoff has no
// default so that an unset override can be told apart from an explicit one.
func SetDefaults() {
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("extension", ".dat")
	viper.SetDefault("cutoff_mode", "per-series")
	viper.SetDefault("on_error", "abort")
	viper.SetDefault("format", "text")
	viper.SetDefault("chart.output", "")
	viper.SetDefault("chart.title", "Runtimes")
	viper.SetDefault("chart.width", 6.0)
	viper.SetDefault("chart.height", 5.0)
	viper.SetDefault("chart.log_x", false)
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
}

// BindFlags binds config keys to flags of fs. bindings maps key to flag name.
func BindFlags(fs *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q for config key %q", name, key)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}
