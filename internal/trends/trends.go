// Package trends aggregates a trailing window of daily heart rate and
// stress data per vendor, one record per day no matter which fetches fail.
package trends

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/digitaldrywood/healthpulse/internal/database"
	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

// Cache is the subset of the metrics database the aggregator needs.
type Cache interface {
	Get(vendor, date string) (*database.DailyMetrics, error)
	Put(m *database.DailyMetrics) error
}

type Aggregator struct {
	providers []metrics.Provider
	cache     Cache

	// Refresh bypasses cache reads; fetched days are still written back.
	Refresh bool
}

// NewAggregator builds an aggregator over the given providers. cache may
// be nil, in which case every day is fetched.
func NewAggregator(providers []metrics.Provider, cache Cache) *Aggregator {
	return &Aggregator{providers: providers, cache: cache}
}

// Collect walks the closed interval [from, to] day by day, serially, and
// returns one trend per provider with exactly one DayRecord per calendar
// day. A failed fetch leaves that slice of the day nil; the day itself is
// never dropped.
func (a *Aggregator) Collect(ctx context.Context, from, to time.Time) []metrics.VendorTrend {
	var trends []metrics.VendorTrend

	for _, p := range a.providers {
		vt := metrics.VendorTrend{Vendor: p.Name()}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			date := day.Format(metrics.DateFormat)
			vt.Days = append(vt.Days, a.collectDay(ctx, p, date))
		}

		trends = append(trends, vt)
	}

	return trends
}

func (a *Aggregator) collectDay(ctx context.Context, p metrics.Provider, date string) metrics.DayRecord {
	if a.cache != nil && !a.Refresh {
		if cached, err := a.cache.Get(p.Name(), date); err == nil && cached != nil {
			return fromCached(cached)
		}
	}

	rec := metrics.DayRecord{Date: date}

	hr, err := p.HeartRate(ctx, date)
	if err != nil {
		printFetchError(p.Name(), "heart rate", date, err)
	} else {
		rec.HeartRate = hr
	}

	stress, err := p.Stress(ctx, date)
	if err != nil {
		printFetchError(p.Name(), "stress", date, err)
	} else {
		rec.Stress = stress
	}

	// Only fully fetched days are cached, so a flaky day gets another
	// chance on the next run.
	if a.cache != nil && rec.HeartRate != nil && rec.Stress != nil {
		if err := a.cache.Put(toCached(p.Name(), rec)); err != nil {
			fmt.Printf("Failed to cache %s data for %s: %v\n", p.Name(), date, err)
		}
	}

	return rec
}

func printFetchError(vendor, kind, date string, err error) {
	if errors.Is(err, metrics.ErrNoData) {
		fmt.Printf("No %s %s data available for %s\n", vendor, kind, date)
		return
	}
	fmt.Printf("Error fetching %s %s data for %s: %v\n", vendor, kind, date, err)
}

func toCached(vendor string, rec metrics.DayRecord) *database.DailyMetrics {
	m := &database.DailyMetrics{
		Vendor:    vendor,
		Date:      rec.Date,
		FetchedAt: time.Now().UTC(),
	}
	if hr := rec.HeartRate; hr != nil {
		m.RestingHeartRate = sql.NullFloat64{Float64: hr.RestingHeartRate, Valid: true}
		m.MinHeartRate = sql.NullFloat64{Float64: hr.MinHeartRate, Valid: true}
		m.MaxHeartRate = sql.NullFloat64{Float64: hr.MaxHeartRate, Valid: true}
		m.AvgHeartRate = sql.NullFloat64{Float64: hr.AvgHeartRate, Valid: true}
	}
	if st := rec.Stress; st != nil {
		m.HRVScore = sql.NullFloat64{Float64: st.HRVScore, Valid: true}
		m.StressScore = sql.NullFloat64{Float64: st.StressScore, Valid: st.HasStressScore}
	}
	return m
}

func fromCached(m *database.DailyMetrics) metrics.DayRecord {
	rec := metrics.DayRecord{Date: m.Date}

	if m.RestingHeartRate.Valid {
		rec.HeartRate = &metrics.HeartRateSummary{
			Date:             m.Date,
			RestingHeartRate: m.RestingHeartRate.Float64,
			MinHeartRate:     m.MinHeartRate.Float64,
			MaxHeartRate:     m.MaxHeartRate.Float64,
			AvgHeartRate:     m.AvgHeartRate.Float64,
		}
	}
	if m.HRVScore.Valid {
		rec.Stress = &metrics.StressSummary{
			Date:           m.Date,
			HRVScore:       m.HRVScore.Float64,
			StressScore:    m.StressScore.Float64,
			HasStressScore: m.StressScore.Valid,
		}
	}

	return rec
}

// Format renders the collected window as one console table per vendor.
func Format(trends []metrics.VendorTrend) string {
	var out strings.Builder

	for _, vt := range trends {
		fmt.Fprintf(&out, "\n=== %s trend ===\n", vt.Vendor)

		w := tabwriter.NewWriter(&out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Date\tResting HR\tHRV\tStress\n")
		for _, day := range vt.Days {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				day.Date,
				formatHR(day.HeartRate),
				formatHRV(day.Stress),
				formatStress(day.Stress),
			)
		}
		w.Flush()
	}

	return out.String()
}

func formatHR(hr *metrics.HeartRateSummary) string {
	if hr == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", hr.RestingHeartRate)
}

func formatHRV(st *metrics.StressSummary) string {
	if st == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", st.HRVScore)
}

func formatStress(st *metrics.StressSummary) string {
	if st == nil || !st.HasStressScore {
		return "-"
	}
	return fmt.Sprintf("%.0f", st.StressScore)
}
