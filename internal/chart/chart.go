// Package chart draws runtime growth curves, one panel per variant.
package chart

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"benchscope/internal/benchmark"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options control the rendered figure.
type Options struct {
	Title      string  // drawn above all panels, omitted when empty
	PanelWidth float64 // inches
	Height     float64 // inches
	LogX       bool
}

// DefaultOptions matches the config defaults.
var DefaultOptions = Options{Title: "Runtimes", PanelWidth: 6, Height: 5}

// Panels maps every variant to its own plot. The mapping is fixed when
// the panels are created; routing a curve never creates a panel.
type Panels struct {
	variants []string
	plots    map[string]*plot.Plot
	curves   map[string]int
	opts     Options
}

// NewPanels creates an empty panel for each variant, in the given order.
func NewPanels(variants []string, opts Options) *Panels {
	p := &Panels{
		variants: append([]string(nil), variants...),
		plots:    make(map[string]*plot.Plot, len(variants)),
		curves:   make(map[string]int, len(variants)),
		opts:     opts,
	}
	for _, v := range variants {
		pl := plot.New()
		pl.Title.Text = v
		pl.X.Label.Text = "Input size"
		pl.Y.Label.Text = "Runtime (s)"
		pl.Legend.Top = true
		pl.Legend.Left = true
		pl.Legend.Padding = vg.Millimeter
		pl.Add(plotter.NewGrid())
		if opts.LogX {
			pl.X.Scale = plot.LogScale{}
			pl.X.Tick.Marker = plot.LogTicks{}
		}
		p.plots[v] = pl
	}
	return p
}

// Variants returns the panel order.
func (p *Panels) Variants() []string {
	return p.variants
}

// Plot returns the panel of variant, or nil.
func (p *Panels) Plot(variant string) *plot.Plot {
	return p.plots[variant]
}

// Curves returns how many curves were routed to variant.
func (p *Panels) Curves(variant string) int {
	return p.curves[variant]
}

// Route adds a labelled size/time curve to the panel of variant.
func (p *Panels) Route(variant, label string, series benchmark.Series) error {
	pl, ok := p.plots[variant]
	if !ok {
		return fmt.Errorf("no panel for variant %q", variant)
	}
	if len(series) == 0 {
		slog.Debug("Skipping empty series", "variant", variant, "algorithm", label)
		return nil
	}

	xys := make(plotter.XYs, len(series))
	for i, o := range series {
		if p.opts.LogX && o.Size <= 0 {
			return fmt.Errorf("%s[%s]: size %d cannot be drawn on a log scale", label, variant, o.Size)
		}
		xys[i].X = float64(o.Size)
		xys[i].Y = o.Time
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", label, variant, err)
	}
	idx := p.curves[variant]
	line.Color = plotutil.Color(idx)
	line.Width = vg.Points(1.5)
	points.Color = plotutil.Color(idx)
	points.Shape = plotutil.Shape(idx)

	pl.Add(line, points)
	pl.Legend.Add(label, line, points)
	p.curves[variant] = idx + 1
	return nil
}

// Build creates the panels for every variant of d and routes each series
// to the panel of its variant, in algorithm order.
func Build(d *benchmark.Dataset, opts Options) (*Panels, error) {
	panels := NewPanels(d.Variants(), opts)
	groups := d.ByVariant()
	for _, v := range panels.Variants() {
		for _, c := range groups[v] {
			if err := panels.Route(v, c.Algorithm, c.Series); err != nil {
				return nil, err
			}
		}
	}
	return panels, nil
}

// Save renders all panels side by side into path. The image format
// follows the file extension (png, svg, pdf, ...).
func (p *Panels) Save(path string) error {
	if len(p.variants) == 0 {
		return fmt.Errorf("no panels to draw")
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("cannot infer image format from %q", path)
	}

	opts := p.opts
	if opts.PanelWidth <= 0 {
		opts.PanelWidth = DefaultOptions.PanelWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions.Height
	}

	cols := len(p.variants)
	width := vg.Length(opts.PanelWidth*float64(cols)) * vg.Inch
	height := vg.Length(opts.Height) * vg.Inch

	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return fmt.Errorf("unsupported chart format %q: %w", format, err)
	}

	row := make([]*plot.Plot, cols)
	for i, v := range p.variants {
		row[i] = p.plots[v]
	}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      cols,
		PadX:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	body := draw.New(c)
	if opts.Title != "" {
		sty := row[0].Title.TextStyle
		sty.Font.Size = vg.Points(14)
		pad := 2 * vg.Millimeter
		body.FillText(sty, vg.Point{X: (body.Min.X + body.Max.X) / 2, Y: body.Max.Y - pad}, opts.Title)
		body = draw.Crop(body, 0, 0, 0, -(sty.Height(opts.Title) + 2*pad))
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, body)
	for i, pl := range row {
		pl.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	slog.Info("Chart written", "path", path, "panels", cols)
	return nil
}
