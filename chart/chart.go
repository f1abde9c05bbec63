// Package chart renders the plottable series of a report to a PNG file.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/rustyeddy/pokerlog/ledger"
)

// DefaultDir is where summary charts are written unless configured otherwise.
const DefaultDir = "summary"

var (
	pnlColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	bbColor  = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
)

// Options controls the size and layout of a chart.
type Options struct {
	Width      int // points
	Height     int // points
	Histograms bool
	Bins       int
}

// DefaultOptions is an 8x6 inch chart without histograms.
func DefaultOptions() Options {
	return Options{Width: 576, Height: 432, Bins: 20}
}

// FileName returns the chart file name for a filter:
// [<year>_][<location>_]summary.png.
func FileName(location string, year int) string {
	name := "summary.png"
	if location != "" {
		name = location + "_" + name
	}
	if year != 0 {
		name = strconv.Itoa(year) + "_" + name
	}
	return name
}

// Path joins dir and the chart file name of f.
func Path(dir string, f ledger.Filter) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, FileName(f.Location, f.Year))
}

// Render draws the cumulative PnL and cumulative Win/bb panels, and with
// Histograms set the per-session distributions next to them, and writes
// the image to path as PNG. Missing directories are created.
func Render(path string, s ledger.Series, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Bins <= 0 {
		opts.Bins = DefaultOptions().Bins
	}
	if len(s.CumPnL) == 0 {
		s = ledger.NewSeries(nil)
	}

	pnl, err := cumulativePlot(s.CumPnL, "PnL/USD", pnlColor)
	if err != nil {
		return err
	}
	bb, err := cumulativePlot(s.CumWinBB, "Win/bb", bbColor)
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{{pnl}, {bb}}
	if opts.Histograms {
		pnlHist, err := histogramPlot(s.PnL, "PnL/USD", opts.Bins, pnlColor)
		if err != nil {
			return err
		}
		bbHist, err := histogramPlot(s.WinBB, "Win/bb", opts.Bins, bbColor)
		if err != nil {
			return err
		}
		plots[0] = append(plots[0], pnlHist)
		plots[1] = append(plots[1], bbHist)
	}

	img := vgimg.New(vg.Points(float64(opts.Width)), vg.Points(float64(opts.Height)))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
	}

	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return f.Close()
}

func cumulativePlot(values []float64, ylabel string, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Session"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("%s series: %w", ylabel, err)
	}
	line.Color = c
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	points.Color = c
	points.Shape = starGlyph{}
	points.Radius = vg.Points(3)
	p.Add(line, points)

	widen(&p.X)
	widen(&p.Y)
	return p, nil
}

func histogramPlot(values []float64, xlabel string, bins int, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Sessions"

	if len(values) == 0 {
		widen(&p.X)
		widen(&p.Y)
		return p, nil
	}

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("%s histogram: %w", xlabel, err)
	}
	h.FillColor = c
	p.Add(h)

	widen(&p.X)
	widen(&p.Y)
	return p, nil
}

// widen gives an empty or degenerate axis a range so it can be drawn.
func widen(a *plot.Axis) {
	switch {
	case math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0):
		a.Min, a.Max = 0, 1
	case a.Min == a.Max:
		a.Min--
		a.Max++
	}
}

// starGlyph draws a plus over a cross.
type starGlyph struct{}

func (starGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	draw.PlusGlyph{}.DrawGlyph(c, sty, pt)
	draw.CrossGlyph{}.DrawGlyph(c, sty, pt)
}
