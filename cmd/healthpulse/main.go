package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/digitaldrywood/healthpulse/internal/chart"
	"github.com/digitaldrywood/healthpulse/internal/compare"
	"github.com/digitaldrywood/healthpulse/internal/config"
	"github.com/digitaldrywood/healthpulse/internal/credentials"
	"github.com/digitaldrywood/healthpulse/internal/database"
	"github.com/digitaldrywood/healthpulse/internal/fitbit"
	"github.com/digitaldrywood/healthpulse/internal/metrics"
	"github.com/digitaldrywood/healthpulse/internal/oura"
	"github.com/digitaldrywood/healthpulse/internal/trends"
)

func main() {
	var (
		compareDay = flag.Bool("compare", false, "Compare one day's metrics between vendors (default)")
		showTrends = flag.Bool("trends", false, "Aggregate a trailing window and draw trend charts")
		date       = flag.String("date", "", "Date to fetch (YYYY-MM-DD, default yesterday)")
		days       = flag.Int("days", 8, "Trend window length in days")
		refresh    = flag.Bool("refresh", false, "Bypass the local metrics cache")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	target := *date
	if target == "" {
		target = time.Now().AddDate(0, 0, -1).Format(metrics.DateFormat)
	}
	targetDay, err := time.Parse(metrics.DateFormat, target)
	if err != nil {
		log.Fatalf("Invalid -date %q: %v", target, err)
	}

	ctx := context.Background()
	store := credentials.NewFileStore(cfg.DataDir)

	fitbitCreds, err := store.Load("fitbit")
	if err != nil {
		log.Fatalf("Error: Fitbit credentials not found: %v", err)
	}
	fb := fitbit.NewClient(fitbitCreds, store)
	if err := fb.Connect(ctx); err != nil {
		log.Fatalf("Error initializing Fitbit client: %v", err)
	}

	ouraCreds, err := store.Load("oura")
	if err != nil {
		log.Fatalf("Error: Oura credentials not found: %v", err)
	}
	oc := oura.NewClient(ouraCreds, store)
	if err := oc.Connect(ctx); err != nil {
		log.Fatalf("Error initializing Oura client: %v", err)
	}

	providers := []metrics.Provider{fb, oc}

	switch {
	case *showTrends:
		runTrends(ctx, cfg, providers, targetDay, *days, *refresh)
	case *compareDay:
		runCompare(ctx, cfg, fb, oc, target)
	default:
		runCompare(ctx, cfg, fb, oc, target)
	}
}

func runCompare(ctx context.Context, cfg *config.Config, a, b metrics.Provider, date string) {
	fmt.Println("Health Pulse - Comparing Fitbit and Oura Ring Data")
	fmt.Println("============================================================")
	fmt.Printf("\nFetching data for: %s\n", date)

	kinds := []struct {
		name  string
		fetch func(metrics.Provider) *metrics.Record
	}{
		{"sleep", func(p metrics.Provider) *metrics.Record {
			return record(p, "sleep", date, func() (recorder, error) { return p.Sleep(ctx, date) })
		}},
		{"heart rate", func(p metrics.Provider) *metrics.Record {
			return record(p, "heart rate", date, func() (recorder, error) { return p.HeartRate(ctx, date) })
		}},
		{"stress", func(p metrics.Provider) *metrics.Record {
			return record(p, "stress", date, func() (recorder, error) { return p.Stress(ctx, date) })
		}},
	}

	for _, kind := range kinds {
		c := compare.Report(os.Stdout, kind.name, "Fitbit", "Oura", kind.fetch(a), kind.fetch(b))
		if c == nil {
			continue
		}

		path, err := chart.ComparisonBar(cfg.ChartDir, c)
		if err != nil {
			fmt.Printf("Failed to render %s chart: %v\n", kind.name, err)
			continue
		}
		if path != "" {
			fmt.Printf("\nChart saved as %s\n", path)
		}
	}

	fmt.Println("\nData comparison complete!")
}

// recorder lets the per-kind fetchers share one error-to-absent-record
// path.
type recorder interface {
	Record() *metrics.Record
}

func record(p metrics.Provider, kind, date string, fetch func() (recorder, error)) *metrics.Record {
	sum, err := fetch()
	if err != nil {
		if errors.Is(err, metrics.ErrNoData) {
			fmt.Printf("No %s %s data available for %s\n", p.Name(), kind, date)
		} else {
			fmt.Printf("Error fetching %s %s data: %v\n", p.Name(), kind, err)
		}
		return nil
	}
	return sum.Record()
}

func runTrends(ctx context.Context, cfg *config.Config, providers []metrics.Provider, to time.Time, days int, refresh bool) {
	if days < 1 {
		log.Fatalf("Invalid -days %d: window must span at least one day", days)
	}
	from := to.AddDate(0, 0, -(days - 1))

	var cache trends.Cache
	if db, err := database.New(cfg.DataDir); err != nil {
		log.Printf("Metrics cache unavailable, fetching everything: %v", err)
	} else {
		defer db.Close()
		cache = db
	}

	agg := trends.NewAggregator(providers, cache)
	agg.Refresh = refresh

	fmt.Printf("Aggregating trends from %s to %s\n",
		from.Format(metrics.DateFormat), to.Format(metrics.DateFormat))

	result := agg.Collect(ctx, from, to)
	fmt.Print(trends.Format(result))

	paths, err := chart.TrendLines(cfg.ChartDir,
		from.Format(metrics.DateFormat), to.Format(metrics.DateFormat), result)
	if err != nil {
		fmt.Printf("Failed to render trend charts: %v\n", err)
	}
	for _, path := range paths {
		fmt.Printf("Chart saved as %s\n", path)
	}
}
