// Command history inspects the local metrics cache that the trend
// aggregator fills: list what's cached per vendor, or purge a date range
// so it gets refetched.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/digitaldrywood/healthpulse/internal/config"
	"github.com/digitaldrywood/healthpulse/internal/database"
)

func main() {
	var (
		vendor = flag.String("vendor", "", "Vendor to inspect (fitbit or oura, default both)")
		list   = flag.Bool("list", false, "List cached days")
		purge  = flag.Bool("purge", false, "Purge cached days in the -from/-to range")
		from   = flag.String("from", "", "Range start (YYYY-MM-DD)")
		to     = flag.String("to", "", "Range end (YYYY-MM-DD)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open metrics cache: %v", err)
	}
	defer db.Close()

	switch {
	case *purge:
		if *vendor == "" || *from == "" || *to == "" {
			fmt.Fprintln(os.Stderr, "Usage: history -purge -vendor <vendor> -from <date> -to <date>")
			os.Exit(1)
		}
		purgeRange(db, *vendor, *from, *to)
	case *list:
		listCached(db, *vendor)
	default:
		listCached(db, *vendor)
	}
}

func listCached(db *database.DB, vendor string) {
	vendors := []string{"fitbit", "oura"}
	if vendor != "" {
		vendors = []string{vendor}
	}

	for _, v := range vendors {
		rows, err := db.List(v)
		if err != nil {
			log.Fatalf("Failed to list %s cache: %v", v, err)
		}

		fmt.Printf("=== %s (%d cached days) ===\n", v, len(rows))
		if len(rows) == 0 {
			continue
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Date\tResting HR\tHRV\tStress\tFetched\n")
		for _, m := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				m.Date,
				nullable(m.RestingHeartRate, "%.0f"),
				nullable(m.HRVScore, "%.1f"),
				nullable(m.StressScore, "%.0f"),
				m.FetchedAt.Format("2006-01-02 15:04"),
			)
		}
		w.Flush()
	}
}

func purgeRange(db *database.DB, vendor, from, to string) {
	n, err := db.PurgeRange(vendor, from, to)
	if err != nil {
		log.Fatalf("Failed to purge %s cache: %v", vendor, err)
	}
	fmt.Printf("Purged %d cached days for %s (%s to %s)\n", n, vendor, from, to)
}

func nullable(v sql.NullFloat64, format string) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf(format, v.Float64)
}
