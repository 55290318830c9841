// Package report renders ranked restricted-maximum results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"benchscope/internal/benchmark"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Write renders rankings to w in the given format: text, markdown or json.
func Write(w io.Writer, format string, rankings []benchmark.Ranking) error {
	switch format {
	case "", "text":
		return WriteText(w, rankings)
	case "markdown":
		return WriteMarkdown(w, rankings)
	case "json":
		return WriteJSON(w, rankings)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteText prints one "algorithm[variant]: size" line per ranking.
// Colors are only emitted when w is a terminal.
func WriteText(w io.Writer, rankings []benchmark.Ranking) error {
	r := lipgloss.NewRenderer(w)
	keyStyle := r.NewStyle().Foreground(lipgloss.Color("252"))
	sizeStyle := r.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle := r.NewStyle().Foreground(lipgloss.Color("203"))

	for _, rk := range rankings {
		key := keyStyle.Render(rk.Key.String() + ":")
		var line string
		if rk.OK() {
			line = fmt.Sprintf("%s %s\n", key, sizeStyle.Render(fmt.Sprint(rk.Size)))
		} else {
			line = fmt.Sprintf("%s %s\n", key, failStyle.Render(fmt.Sprintf("no observation within cutoff %g", rk.Cutoff)))
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Markdown returns the rankings as a markdown table.
func Markdown(rankings []benchmark.Ranking) string {
	var sb strings.Builder
	sb.WriteString("# Restricted maxima\n\n")
	sb.WriteString("| # | Algorithm | Variant | Cutoff (s) | Restricted max |\n")
	sb.WriteString("|---|-----------|---------|-----------:|---------------:|\n")
	for i, rk := range rankings {
		value := "n/a"
		if rk.OK() {
			value = fmt.Sprint(rk.Size)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %g | %s |\n", i+1, rk.Key.Algorithm, rk.Key.Variant, rk.Cutoff, value)
	}
	return sb.String()
}

// WriteMarkdown renders the markdown table for the terminal.
func WriteMarkdown(w io.Writer, rankings []benchmark.Ranking) error {
	md := Markdown(rankings)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		_, werr := io.WriteString(w, md)
		return werr
	}

	out, err := renderer.Render(md)
	if err != nil {
		_, werr := io.WriteString(w, md)
		return werr
	}
	_, err = io.WriteString(w, out)
	return err
}

type jsonRanking struct {
	Algorithm     string  `json:"algorithm"`
	Variant       string  `json:"variant"`
	Cutoff        float64 `json:"cutoff"`
	RestrictedMax *int64  `json:"restricted_max"`
	Error         string  `json:"error,omitempty"`
}

// WriteJSON writes the rankings as an indented JSON array.
func WriteJSON(w io.Writer, rankings []benchmark.Ranking) error {
	out := make([]jsonRanking, 0, len(rankings))
	for _, rk := range rankings {
		jr := jsonRanking{Algorithm: rk.Key.Algorithm, Variant: rk.Key.Variant, Cutoff: rk.Cutoff}
		if rk.OK() {
			size := rk.Size
			jr.RestrictedMax = &size
		} else {
			jr.Error = rk.Err.Error()
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
