package main

import (
	"fmt"
	"text/tabwriter"

	"benchscope/internal/benchmark"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var cutoff float64

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode a single measurement file",
		Long: `Prints the algorithm, variant, cutoff and observations of one measurement
file and marks the observation chosen as its restricted maximum.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeLog, err := loadSettings()
			if err != nil {
				return err
			}
			defer closeLog()

			m, err := benchmark.LoadFile(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cutoff") {
				m.Cutoff = cutoff
			}
			return printMeasurement(cmd, m)
		},
	}

	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "Use this cutoff instead of the one in the filename")
	return cmd
}

func printMeasurement(cmd *cobra.Command, m *benchmark.Measurement) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Algorithm: %s\n", m.Key.Algorithm)
	fmt.Fprintf(out, "Variant:   %s\n", m.Key.Variant)
	fmt.Fprintf(out, "Cutoff:    %gs\n", m.Cutoff)
	fmt.Fprintf(out, "Tag:       %s\n\n", m.Tag)

	chosen, rmErr := benchmark.RestrictedMaxIndex(m.Series, m.Cutoff)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SIZE\tTIME (s)\tWITHIN\tRESULT")
	for i, o := range m.Series {
		within := "yes"
		if !(o.Time <= m.Cutoff) {
			within = "no"
		}
		if i == chosen {
			within += " *"
		}
		fmt.Fprintf(w, "%d\t%g\t%s\t%s\n", o.Size, o.Time, within, truncate(o.Result, 40))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if rmErr != nil {
		fmt.Fprintf(out, "\nRestricted max: none (%v)\n", rmErr)
		return nil
	}
	fmt.Fprintf(out, "\nRestricted max: %d\n", m.Series[chosen].Size)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
