// Package chart renders a user's glucose readings as a category scatter
// chart: one x-axis slot per measurement period, a shaded 5.1–7.0 target
// band and a small stats box. Rendering is delegated to gonum/plot; the
// bucketed data and summary are exposed separately because the jitter makes
// pixel output non-deterministic.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// Target band bounds in mmol/L.
const (
	TargetLow  = 5.1
	TargetHigh = 7.0
)

// Horizontal jitter: σ is a small fraction of one category width and the
// offset is clamped so a point can never cross into a neighboring category.
const (
	jitterSigma = 0.05
	jitterMax   = 0.35
)

var (
	pointBlue   = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	pointOrange = color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	bandGreen   = color.NRGBA{G: 0xa0, A: 0x28}
	lineGreen   = color.NRGBA{G: 0xa0, A: 0xff}
	lineRed     = color.NRGBA{R: 0xd0, A: 0xff}
)

// Summary holds the numbers shown in the chart's stats box.
type Summary struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

// Buckets groups reading values by period. Readings with a period outside
// the fixed six are dropped, matching the historical charts.
func Buckets(readings []domain.GlucoseReading) map[domain.Period][]float64 {
	buckets := make(map[domain.Period][]float64, len(domain.AllPeriods))
	for _, r := range readings {
		if r.Period.Valid() {
			buckets[r.Period] = append(buckets[r.Period], r.Value)
		}
	}
	return buckets
}

// Summarize computes the stats box numbers over all bucketed values.
func Summarize(buckets map[domain.Period][]float64) Summary {
	var s Summary
	sum := 0.0
	for _, values := range buckets {
		for _, v := range values {
			if s.Count == 0 || v < s.Min {
				s.Min = v
			}
			if s.Count == 0 || v > s.Max {
				s.Max = v
			}
			sum += v
			s.Count++
		}
	}
	if s.Count > 0 {
		s.Avg = sum / float64(s.Count)
	}
	return s
}

func jitterOffset(rng *rand.Rand) float64 {
	off := rng.NormFloat64() * jitterSigma
	if off > jitterMax {
		off = jitterMax
	}
	if off < -jitterMax {
		off = -jitterMax
	}
	return off
}

// Render draws the chart and returns it as PNG bytes.
func Render(readings []domain.GlucoseReading, title string) ([]byte, error) {
	buckets := Buckets(readings)
	summary := Summarize(buckets)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Глюкоза (ммоль/л)"
	p.Add(plotter.NewGrid())

	names := make([]string, len(domain.AllPeriods))
	for i, period := range domain.AllPeriods {
		names[i] = string(period)
	}
	p.NominalX(names...)

	xMin, xMax := -0.5, float64(len(domain.AllPeriods))-0.5

	// Target band with reference lines at its bounds.
	band, err := plotter.NewPolygon(plotter.XYs{
		{X: xMin, Y: TargetLow},
		{X: xMax, Y: TargetLow},
		{X: xMax, Y: TargetHigh},
		{X: xMin, Y: TargetHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("target band: %w", err)
	}
	band.Color = bandGreen
	band.LineStyle.Color = color.Transparent
	p.Add(band)

	lowLine, err := referenceLine(xMin, xMax, TargetLow, lineGreen)
	if err != nil {
		return nil, err
	}
	highLine, err := referenceLine(xMin, xMax, TargetHigh, lineRed)
	if err != nil {
		return nil, err
	}
	p.Add(lowLine, highLine)
	p.Legend.Add(fmt.Sprintf("Цель %.1f", TargetLow), lowLine)
	p.Legend.Add(fmt.Sprintf("Граница %.1f", TargetHigh), highLine)
	p.Legend.Top = true

	for i, period := range domain.AllPeriods {
		values := buckets[period]
		if len(values) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(values))
		for j, v := range values {
			pts[j] = plotter.XY{X: float64(i) + jitterOffset(rng), Y: v}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter for %s: %w", period, err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(5)
		scatter.GlyphStyle.Color = pointBlue
		if period == domain.PeriodAfterMeal {
			scatter.GlyphStyle.Color = pointOrange
		}
		p.Add(scatter)
	}

	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min = minFloat(summary.Min-1.5, 2.0)
	p.Y.Max = maxFloat(summary.Max+1.5, 8.0)

	statsBox, err := statsLabels(summary, xMin+0.1, p.Y.Max)
	if err != nil {
		return nil, err
	}
	p.Add(statsBox)

	writer, err := p.WriterTo(14*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("png writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func referenceLine(xMin, xMax, y float64, c color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: y}, {X: xMax, Y: y}})
	if err != nil {
		return nil, fmt.Errorf("reference line at %.1f: %w", y, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(2)
	return line, nil
}

func statsLabels(s Summary, x, yTop float64) (*plotter.Labels, error) {
	texts := []string{
		fmt.Sprintf("Всего замеров: %d", s.Count),
		fmt.Sprintf("Среднее: %.1f", s.Avg),
		fmt.Sprintf("Мин: %.1f", s.Min),
		fmt.Sprintf("Макс: %.1f", s.Max),
	}

	xys := make(plotter.XYs, len(texts))
	step := (yTop - TargetHigh) / float64(len(texts)+1)
	for i := range texts {
		xys[i] = plotter.XY{X: x, Y: yTop - float64(i+1)*step}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("stats labels: %w", err)
	}
	return labels, nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
