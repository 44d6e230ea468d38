package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sample(vendor, date string) *DailyMetrics {
	return &DailyMetrics{
		Vendor:           vendor,
		Date:             date,
		RestingHeartRate: sql.NullFloat64{Float64: 52, Valid: true},
		MinHeartRate:     sql.NullFloat64{Float64: 45, Valid: true},
		MaxHeartRate:     sql.NullFloat64{Float64: 130, Valid: true},
		AvgHeartRate:     sql.NullFloat64{Float64: 68, Valid: true},
		HRVScore:         sql.NullFloat64{Float64: 36.5, Valid: true},
		FetchedAt:        time.Now().UTC(),
	}
}

func TestGetMissingDayReturnsNil(t *testing.T) {
	db := newTestDB(t)

	m, err := db.Get("fitbit", "2024-01-01")
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestPutGetRoundTrip(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Put(sample("fitbit", "2024-01-01")))

	m, err := db.Get("fitbit", "2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, 52.0, m.RestingHeartRate.Float64)
	require.Equal(t, 36.5, m.HRVScore.Float64)

	// stress_score was never set; it stays null
	require.False(t, m.StressScore.Valid)
}

func TestPutUpserts(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Put(sample("fitbit", "2024-01-01")))

	updated := sample("fitbit", "2024-01-01")
	updated.RestingHeartRate = sql.NullFloat64{Float64: 49, Valid: true}
	require.NoError(t, db.Put(updated))

	m, err := db.Get("fitbit", "2024-01-01")
	require.NoError(t, err)
	require.Equal(t, 49.0, m.RestingHeartRate.Float64)

	all, err := db.List("fitbit")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestListIsVendorScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Put(sample("fitbit", "2024-01-02")))
	require.NoError(t, db.Put(sample("fitbit", "2024-01-01")))
	require.NoError(t, db.Put(sample("oura", "2024-01-01")))

	all, err := db.List("fitbit")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "2024-01-01", all[0].Date)
	require.Equal(t, "2024-01-02", all[1].Date)
}

func TestPurgeRangeIsInclusive(t *testing.T) {
	db := newTestDB(t)

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"} {
		require.NoError(t, db.Put(sample("oura", date)))
	}

	n, err := db.PurgeRange("oura", "2024-01-02", "2024-01-03")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	all, err := db.List("oura")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "2024-01-01", all[0].Date)
	require.Equal(t, "2024-01-04", all[1].Date)
}
