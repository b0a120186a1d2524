package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"strat_bot/internal/models"
)

const (
	dpi       = 96
	minWidth  = 200
	minHeight = 120
)

var (
	green = color.RGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
	red   = color.RGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
)

// Panel is one candlestick pane; Limit keeps only the newest candles (0 keeps all).
type Panel struct {
	Title  string
	Series models.Series
	Limit  int
}

// Render draws the panels side by side, each with a title and price axis, and
// writes a PNG of width x height pixels to path.
func Render(path string, width, height int, panels ...Panel) error {
	if len(panels) == 0 {
		return fmt.Errorf("chart has no panels")
	}
	if width < minWidth*len(panels) || height < minHeight {
		return fmt.Errorf("chart size %dx%d too small for %d panels", width, height, len(panels))
	}

	plots := [][]*plot.Plot{make([]*plot.Plot, len(panels))}
	for i, p := range panels {
		plots[0][i] = newPlot(p)
	}

	img := vgimg.NewWith(vgimg.UseWH(pixels(width), pixels(height)), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, p := range plots[0] {
		p.Draw(canvases[0][i])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode chart: %w", err)
	}
	return f.Close()
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}

func newPlot(p Panel) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Y.Label.Text = "Price"
	pl.X.Tick.Marker = plot.TimeTicks{Format: "15:04"}
	pl.Add(plotter.NewGrid())

	s := p.Series
	if p.Limit > 0 {
		s = s.Tail(p.Limit)
	}
	if len(s) == 0 {
		pl.X.Min, pl.X.Max = 0, 1
		pl.Y.Min, pl.Y.Max = 0, 1
		return pl
	}
	pl.Add(candles{series: s, width: spacing(s) * 0.6})
	return pl
}

// spacing is the smallest gap between candle starts, in seconds.
func spacing(s models.Series) float64 {
	var gap time.Duration
	for i := 1; i < len(s); i++ {
		d := s[i].Start.Sub(s[i-1].Start)
		if d > 0 && (gap == 0 || d < gap) {
			gap = d
		}
	}
	if gap == 0 {
		gap = time.Minute
	}
	return gap.Seconds()
}

// candles is a plot.Plotter drawing OHLC bodies and wicks at unix-second x values.
type candles struct {
	series models.Series
	width  float64
}

func (c candles) DataRange() (xmin, xmax, ymin, ymax float64) {
	first, last := c.series[0], c.series[len(c.series)-1]
	xmin = float64(first.Start.Unix()) - c.width
	xmax = float64(last.Start.Unix()) + c.width
	ymin, ymax = first.Low, first.High
	for _, k := range c.series {
		ymin = min(ymin, k.Low)
		ymax = max(ymax, k.High)
	}
	if ymin == ymax {
		ymax = ymin + 1
	}
	return xmin, xmax, ymin, ymax
}

func (c candles) Plot(dc draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&dc)
	for _, k := range c.series {
		col := red
		if k.Green() {
			col = green
		}
		x := float64(k.Start.Unix())
		mid := trX(x)
		dc.StrokeLine2(draw.LineStyle{Color: col, Width: vg.Points(1)}, mid, trY(k.Low), mid, trY(k.High))

		left, right := trX(x-c.width/2), trX(x+c.width/2)
		bottom, top := trY(min(k.Open, k.Close)), trY(max(k.Open, k.Close))
		if top-bottom < vg.Points(1) {
			top = bottom + vg.Points(1)
		}
		dc.FillPolygon(col, []vg.Point{
			{X: left, Y: bottom}, {X: right, Y: bottom},
			{X: right, Y: top}, {X: left, Y: top},
		})
	}
}
