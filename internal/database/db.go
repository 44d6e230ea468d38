package database

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type DB struct {
	conn *sql.DB
}

func New(dataDir string) (*DB, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "healthpulse.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	db := &DB{conn: conn}

	// Run migrations
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	// Set up goose with embedded migrations
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %v", err)
	}

	// Run migrations from embedded files
	if err := goose.Up(db.conn, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// DailyMetrics is one cached day of trend data for one vendor. Null
// columns mean the fetch for that slice failed or the vendor lacks the
// metric.
type DailyMetrics struct {
	Vendor           string
	Date             string
	RestingHeartRate sql.NullFloat64
	MinHeartRate     sql.NullFloat64
	MaxHeartRate     sql.NullFloat64
	AvgHeartRate     sql.NullFloat64
	HRVScore         sql.NullFloat64
	StressScore      sql.NullFloat64
	FetchedAt        time.Time
}

// Get returns the cached day or nil when the day has never been stored.
func (db *DB) Get(vendor, date string) (*DailyMetrics, error) {
	var m DailyMetrics
	err := db.conn.QueryRow(`
		SELECT vendor, date, resting_heart_rate, min_heart_rate, max_heart_rate,
		       avg_heart_rate, hrv_score, stress_score, fetched_at
		FROM daily_metrics WHERE vendor = ? AND date = ?
	`, vendor, date).Scan(&m.Vendor, &m.Date, &m.RestingHeartRate, &m.MinHeartRate,
		&m.MaxHeartRate, &m.AvgHeartRate, &m.HRVScore, &m.StressScore, &m.FetchedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (db *DB) Put(m *DailyMetrics) error {
	_, err := db.conn.Exec(`
		INSERT INTO daily_metrics (vendor, date, resting_heart_rate, min_heart_rate,
			max_heart_rate, avg_heart_rate, hrv_score, stress_score, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(vendor, date) DO UPDATE SET
			resting_heart_rate = excluded.resting_heart_rate,
			min_heart_rate = excluded.min_heart_rate,
			max_heart_rate = excluded.max_heart_rate,
			avg_heart_rate = excluded.avg_heart_rate,
			hrv_score = excluded.hrv_score,
			stress_score = excluded.stress_score,
			fetched_at = excluded.fetched_at
	`, m.Vendor, m.Date, m.RestingHeartRate, m.MinHeartRate, m.MaxHeartRate,
		m.AvgHeartRate, m.HRVScore, m.StressScore, m.FetchedAt)

	return err
}

func (db *DB) List(vendor string) ([]DailyMetrics, error) {
	rows, err := db.conn.Query(`
		SELECT vendor, date, resting_heart_rate, min_heart_rate, max_heart_rate,
		       avg_heart_rate, hrv_score, stress_score, fetched_at
		FROM daily_metrics WHERE vendor = ? ORDER BY date
	`, vendor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []DailyMetrics
	for rows.Next() {
		var m DailyMetrics
		if err := rows.Scan(&m.Vendor, &m.Date, &m.RestingHeartRate, &m.MinHeartRate,
			&m.MaxHeartRate, &m.AvgHeartRate, &m.HRVScore, &m.StressScore, &m.FetchedAt); err != nil {
			return nil, err
		}
		all = append(all, m)
	}

	return all, rows.Err()
}

// PurgeRange deletes a vendor's cached days in the inclusive date range and
// reports how many rows went away.
func (db *DB) PurgeRange(vendor, from, to string) (int64, error) {
	result, err := db.conn.Exec(`
		DELETE FROM daily_metrics WHERE vendor = ? AND date >= ? AND date <= ?
	`, vendor, from, to)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
