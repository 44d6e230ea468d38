// Package chart renders the comparison bar charts and trend line panels as
// PNG files.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/digitaldrywood/healthpulse/internal/compare"
	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

var (
	colorA = drawing.Color{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	colorB = drawing.Color{R: 0xff, G: 0x7f, B: 0x0e, A: 255}

	vendorColors = map[string]drawing.Color{
		"fitbit": colorA,
		"oura":   colorB,
	}
)

// ComparisonBar draws a grouped bar chart of the rows valid on both sides
// and writes it under dir, named by metric kind and date. It returns the
// written path, or "" when no row qualifies for charting.
func ComparisonBar(dir string, c *compare.Comparison) (string, error) {
	rows := c.ChartRows()
	if len(rows) == 0 {
		return "", nil
	}

	bars := make([]chart.Value, 0, len(rows)*2)
	maxValue := 0.0
	for _, row := range rows {
		bars = append(bars,
			chart.Value{
				Label: fmt.Sprintf("%s (%s)", row.Metric, c.AName),
				Value: row.AValue,
				Style: chart.Style{FillColor: colorA, StrokeColor: colorA},
			},
			chart.Value{
				Label: fmt.Sprintf("%s (%s)", row.Metric, c.BName),
				Value: row.BValue,
				Style: chart.Style{FillColor: colorB, StrokeColor: colorB},
			},
		)
		if row.AValue > maxValue {
			maxValue = row.AValue
		}
		if row.BValue > maxValue {
			maxValue = row.BValue
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	bc := chart.BarChart{
		Title:    fmt.Sprintf("%s Data Comparison (%s)", strings.Title(c.Kind), c.Date),
		Width:    1200,
		Height:   600,
		BarWidth: 36,
		XAxis:    chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_comparison_%s.png", fileSlug(c.Kind), c.Date))
	if err := render(path, bc.Render); err != nil {
		return "", err
	}
	return path, nil
}

// TrendLines draws one line-chart panel per trend metric (resting heart
// rate, HRV score, stress score), each with a series per vendor. Days
// whose fetch failed are simply absent from the series. Panels with fewer
// than two plottable points on every series are skipped.
func TrendLines(dir, from, to string, seriesList []metrics.VendorTrend) ([]string, error) {
	panels := []struct {
		name  string
		title string
		pick  func(metrics.DayRecord) (float64, bool)
	}{
		{"resting_heart_rate", "Resting Heart Rate (bpm)", func(d metrics.DayRecord) (float64, bool) {
			if d.HeartRate == nil {
				return 0, false
			}
			return d.HeartRate.RestingHeartRate, true
		}},
		{"hrv_score", "HRV Score (rmssd)", func(d metrics.DayRecord) (float64, bool) {
			if d.Stress == nil {
				return 0, false
			}
			return d.Stress.HRVScore, true
		}},
		{"stress_score", "Stress Score", func(d metrics.DayRecord) (float64, bool) {
			if d.Stress == nil || !d.Stress.HasStressScore {
				return 0, false
			}
			return d.Stress.StressScore, true
		}},
	}

	var paths []string
	for _, panel := range panels {
		var series []chart.Series
		for _, vt := range seriesList {
			ts := timeSeries(vt, panel.pick)
			if ts != nil {
				series = append(series, ts)
			}
		}
		if len(series) == 0 {
			continue
		}

		graph := chart.Chart{
			Title:  panel.title,
			Width:  1200,
			Height: 400,
			XAxis: chart.XAxis{
				ValueFormatter: chart.TimeValueFormatterWithFormat(metrics.DateFormat),
			},
			Series: series,
		}
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}

		path := filepath.Join(dir, fmt.Sprintf("%s_trend_%s_%s.png", panel.name, from, to))
		if err := render(path, graph.Render); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func timeSeries(vt metrics.VendorTrend, pick func(metrics.DayRecord) (float64, bool)) chart.Series {
	var xs []time.Time
	var ys []float64
	for _, day := range vt.Days {
		v, ok := pick(day)
		if !ok {
			continue
		}
		t, err := time.Parse(metrics.DateFormat, day.Date)
		if err != nil {
			continue
		}
		xs = append(xs, t)
		ys = append(ys, v)
	}

	// A single point has no range to draw.
	if len(xs) < 2 {
		return nil
	}

	color := vendorColors[vt.Vendor]
	if color.IsZero() {
		color = chart.ColorAlternateGray
	}

	return chart.TimeSeries{
		Name:    vt.Vendor,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
		},
	}
}

func render(path string, renderFn func(chart.RendererProvider, io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %v", err)
	}
	defer f.Close()

	if err := renderFn(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %v", filepath.Base(path), err)
	}
	return nil
}

func fileSlug(kind string) string {
	return strings.ReplaceAll(strings.ToLower(kind), " ", "_")
}
