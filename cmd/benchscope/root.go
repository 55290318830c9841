package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"benchscope/internal/benchmark"
	"benchscope/internal/config"
	"benchscope/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchscope",
	Short: "Analyze how far algorithms scale within a time budget",
	Long: `benchscope reads benchmark measurement files named
<algorithm>.<variant>.<cutoff>.<tag>, each line holding
"<size> :: <result> :: <seconds>", and reports for every algorithm and
optimization variant the size of the slowest run that stayed within the
cutoff. Runtime curves can be drawn with one panel per variant.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exit(handleError(os.Stderr, err))
	}
}

// handleError prints err for the user and returns the exit status.
func handleError(w io.Writer, err error) int {
	if errors.Is(err, benchmark.ErrNoData) {
		fmt.Fprintln(w, "No data found!")
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./benchscope.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newInspectCmd())
}

// loadSettings reads config and environment, configures logging and
// returns the validated settings. The caller must call closeLog when done.
func loadSettings() (s *config.Settings, closeLog func() error, err error) {
	if err := config.Load(cfgFile); err != nil {
		return nil, nil, err
	}
	s, err = config.Current()
	if err != nil {
		return nil, nil, err
	}
	return s, telemetry.InitLogger(s.Verbose, s.LogFile), nil
}
