// Package compare builds side-by-side comparisons of two vendors' records
// for the same day and renders them as console tables.
package compare

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

// NotAvailable marks table cells that have no numeric value: fields one
// vendor lacks, and derived columns that need both sides.
const NotAvailable = "N/A"

type Row struct {
	Metric string

	AValue float64
	AValid bool
	BValue float64
	BValid bool

	// Diff is A minus B, valid only when both sides are.
	Diff      float64
	DiffValid bool

	// Pct is |Diff| relative to the mean of both sides, in percent.
	Pct      float64
	PctValid bool
}

type Comparison struct {
	Kind  string
	Date  string
	AName string
	BName string
	Rows  []Row
}

// Build pairs the two records field by field in a's order. Either side
// missing yields nil: there is nothing to compare.
func Build(kind, aName, bName string, a, b *metrics.Record) *Comparison {
	if a == nil || b == nil {
		return nil
	}

	c := &Comparison{
		Kind:  kind,
		Date:  a.Date,
		AName: aName,
		BName: bName,
	}

	for _, fa := range a.Fields {
		row := Row{
			Metric: fa.Name,
			AValue: fa.Value,
			AValid: fa.Valid,
		}
		if fb, ok := b.Lookup(fa.Name); ok {
			row.BValue = fb.Value
			row.BValid = fb.Valid
		}

		if row.AValid && row.BValid {
			row.Diff = row.AValue - row.BValue
			row.DiffValid = true

			if mean := (row.AValue + row.BValue) / 2; mean > 0 {
				diff := row.Diff
				if diff < 0 {
					diff = -diff
				}
				row.Pct = diff / mean * 100
				row.PctValid = true
			}
		}

		c.Rows = append(c.Rows, row)
	}

	return c
}

// ChartRows returns the rows valid on both sides; only these belong on the
// grouped bar chart.
func (c *Comparison) ChartRows() []Row {
	var rows []Row
	for _, row := range c.Rows {
		if row.AValid && row.BValid {
			rows = append(rows, row)
		}
	}
	return rows
}

func (c *Comparison) Format() string {
	var out strings.Builder

	fmt.Fprintf(&out, "\n--- %s DATA COMPARISON ---\n", strings.ToUpper(c.Kind))
	fmt.Fprintf(&out, "Date: %s\n", c.Date)

	w := tabwriter.NewWriter(&out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Metric\t%s\t%s\tDifference\t%% Difference\n", c.AName, c.BName)
	for _, row := range c.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Metric,
			formatCell(row.AValue, row.AValid),
			formatCell(row.BValue, row.BValid),
			formatCell(row.Diff, row.DiffValid),
			formatCell(row.Pct, row.PctValid),
		)
	}
	w.Flush()

	return out.String()
}

// Report prints either the comparison table or the short-circuit message
// when a side is missing. The returned comparison is nil in the latter
// case.
func Report(w io.Writer, kind, aName, bName string, a, b *metrics.Record) *Comparison {
	c := Build(kind, aName, bName, a, b)
	if c == nil {
		fmt.Fprintf(w, "Cannot compare %s data: missing data from one or both sources.\n", kind)
		return nil
	}

	fmt.Fprint(w, c.Format())
	return c
}

func formatCell(v float64, valid bool) string {
	if !valid {
		return NotAvailable
	}
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
