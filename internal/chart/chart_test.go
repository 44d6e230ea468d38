package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digitaldrywood/healthpulse/internal/compare"
	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	require.Equal(t, pngMagic, b[:4])
}

func TestComparisonBarWritesPNG(t *testing.T) {
	dir := t.TempDir()

	c := compare.Build("heart rate", "Fitbit", "Oura",
		&metrics.Record{Date: "2024-01-01", Fields: []metrics.Field{
			{Name: "resting_heart_rate", Value: 52, Valid: true},
			{Name: "avg_heart_rate", Value: 68, Valid: true},
		}},
		&metrics.Record{Date: "2024-01-01", Fields: []metrics.Field{
			{Name: "resting_heart_rate", Value: 49, Valid: true},
			{Name: "avg_heart_rate", Value: 65, Valid: true},
		}},
	)

	path, err := ComparisonBar(dir, c)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "heart_rate_comparison_2024-01-01.png"), path)
	requirePNG(t, path)
}

func TestComparisonBarSkipsWhenNothingChartable(t *testing.T) {
	dir := t.TempDir()

	c := compare.Build("stress", "Fitbit", "Oura",
		&metrics.Record{Date: "2024-01-01", Fields: []metrics.Field{
			{Name: "stress_score", Value: 0, Valid: false},
		}},
		&metrics.Record{Date: "2024-01-01", Fields: []metrics.Field{
			{Name: "stress_score", Value: 80, Valid: true},
		}},
	)

	path, err := ComparisonBar(dir, c)
	require.NoError(t, err)
	require.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func trendDays(vendor string, n int) metrics.VendorTrend {
	vt := metrics.VendorTrend{Vendor: vendor}
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}
	for i := 0; i < n; i++ {
		vt.Days = append(vt.Days, metrics.DayRecord{
			Date:      dates[i],
			HeartRate: &metrics.HeartRateSummary{Date: dates[i], RestingHeartRate: 50 + float64(i)},
			Stress:    &metrics.StressSummary{Date: dates[i], HRVScore: 35 + float64(i), StressScore: 75, HasStressScore: true},
		})
	}
	return vt
}

func TestTrendLinesWritesAllPanels(t *testing.T) {
	dir := t.TempDir()

	paths, err := TrendLines(dir, "2024-01-01", "2024-01-04", []metrics.VendorTrend{
		trendDays("fitbit", 4),
		trendDays("oura", 4),
	})
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		requirePNG(t, path)
	}

	require.Contains(t, paths[0], "resting_heart_rate_trend_2024-01-01_2024-01-04.png")
}

func TestTrendLinesSkipsUnplottablePanels(t *testing.T) {
	dir := t.TempDir()

	// Single plottable day per series: no panel has a drawable range.
	paths, err := TrendLines(dir, "2024-01-01", "2024-01-01", []metrics.VendorTrend{
		trendDays("fitbit", 1),
	})
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestTrendLinesSkipsMissingDays(t *testing.T) {
	dir := t.TempDir()

	vt := trendDays("fitbit", 3)
	vt.Days[1].HeartRate = nil
	vt.Days[1].Stress = nil

	paths, err := TrendLines(dir, "2024-01-01", "2024-01-03", []metrics.VendorTrend{vt})
	require.NoError(t, err)
	require.Len(t, paths, 3)
}
