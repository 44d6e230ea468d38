package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSleepSummaryRecordFieldOrder(t *testing.T) {
	s := &SleepSummary{Date: "2024-01-01", TotalMinutesAsleep: 420, Efficiency: 93}
	rec := s.Record()

	require.Equal(t, "2024-01-01", rec.Date)

	want := []string{
		"total_minutes_asleep",
		"total_time_in_bed",
		"efficiency",
		"deep_sleep_minutes",
		"light_sleep_minutes",
		"rem_sleep_minutes",
		"awake_minutes",
	}
	require.Len(t, rec.Fields, len(want))
	for i, name := range want {
		require.Equal(t, name, rec.Fields[i].Name)
		require.True(t, rec.Fields[i].Valid)
	}
}

func TestStressRecordMarksAbsentScore(t *testing.T) {
	s := &StressSummary{Date: "2024-01-01", HRVScore: 38.5}
	rec := s.Record()

	f, ok := rec.Lookup("stress_score")
	require.True(t, ok)
	require.False(t, f.Valid)

	s.StressScore = 72
	s.HasStressScore = true
	f, ok = s.Record().Lookup("stress_score")
	require.True(t, ok)
	require.True(t, f.Valid)
	require.Equal(t, 72.0, f.Value)
}

func TestRecordLookupMissing(t *testing.T) {
	rec := (&HeartRateSummary{Date: "2024-01-01"}).Record()

	_, ok := rec.Lookup("no_such_field")
	require.False(t, ok)
}
