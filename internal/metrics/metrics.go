// Package metrics defines the normalized per-day health records shared by
// every vendor, and the Provider interface each vendor client implements.
package metrics

import "context"

// DateFormat is the calendar-date layout used at every package boundary.
// Vendor APIs accept it verbatim.
const DateFormat = "2006-01-02"

// Provider is implemented once per vendor so the comparator and aggregator
// stay vendor-agnostic.
type Provider interface {
	Name() string
	Sleep(ctx context.Context, date string) (*SleepSummary, error)
	HeartRate(ctx context.Context, date string) (*HeartRateSummary, error)
	Stress(ctx context.Context, date string) (*StressSummary, error)
}

// SleepSummary holds one day of normalized sleep data. All durations are
// minutes.
type SleepSummary struct {
	Date               string
	TotalMinutesAsleep float64
	TotalTimeInBed     float64
	Efficiency         float64
	DeepSleepMinutes   float64
	LightSleepMinutes  float64
	RemSleepMinutes    float64
	AwakeMinutes       float64
}

func (s *SleepSummary) Record() *Record {
	return &Record{
		Date: s.Date,
		Fields: []Field{
			{Name: "total_minutes_asleep", Value: s.TotalMinutesAsleep, Valid: true},
			{Name: "total_time_in_bed", Value: s.TotalTimeInBed, Valid: true},
			{Name: "efficiency", Value: s.Efficiency, Valid: true},
			{Name: "deep_sleep_minutes", Value: s.DeepSleepMinutes, Valid: true},
			{Name: "light_sleep_minutes", Value: s.LightSleepMinutes, Valid: true},
			{Name: "rem_sleep_minutes", Value: s.RemSleepMinutes, Valid: true},
			{Name: "awake_minutes", Value: s.AwakeMinutes, Valid: true},
		},
	}
}

// HeartRateSummary holds one day of normalized heart rate data in bpm.
type HeartRateSummary struct {
	Date             string
	RestingHeartRate float64
	MinHeartRate     float64
	MaxHeartRate     float64
	AvgHeartRate     float64
}

func (h *HeartRateSummary) Record() *Record {
	return &Record{
		Date: h.Date,
		Fields: []Field{
			{Name: "resting_heart_rate", Value: h.RestingHeartRate, Valid: true},
			{Name: "min_heart_rate", Value: h.MinHeartRate, Valid: true},
			{Name: "max_heart_rate", Value: h.MaxHeartRate, Valid: true},
			{Name: "avg_heart_rate", Value: h.AvgHeartRate, Valid: true},
		},
	}
}

// StressSummary holds one day of stress and recovery data. HasStressScore is
// false when the vendor has no stress concept for the day (e.g. Fitbit
// without a readiness subscription), in which case the comparator shows the
// field as not applicable instead of a zero.
type StressSummary struct {
	Date           string
	HRVScore       float64
	StressScore    float64
	HasStressScore bool
}

func (s *StressSummary) Record() *Record {
	return &Record{
		Date: s.Date,
		Fields: []Field{
			{Name: "hrv_score", Value: s.HRVScore, Valid: true},
			{Name: "stress_score", Value: s.StressScore, Valid: s.HasStressScore},
		},
	}
}

// Record is the flat, ordered view of a summary that the comparator works
// on: one calendar date plus a fixed sequence of named numeric fields.
type Record struct {
	Date   string
	Fields []Field
}

// Field is a single named metric value. Valid is false when the vendor
// lacks the concept; such fields appear in comparison tables as a sentinel
// and are excluded from charts.
type Field struct {
	Name  string
	Value float64
	Valid bool
}

// Lookup returns the named field and whether the record contains it.
func (r *Record) Lookup(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// DayRecord is one day inside a trend window. Fetch failures leave the
// corresponding summary nil; a day is never dropped from the window.
type DayRecord struct {
	Date      string
	HeartRate *HeartRateSummary
	Stress    *StressSummary
}

// VendorTrend is one vendor's records over a trend window, one DayRecord
// per calendar day.
type VendorTrend struct {
	Vendor string
	Days   []DayRecord
}
