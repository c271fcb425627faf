package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"DollarSentinel/internal/model"
)

// SQLiteStore caches fetched series in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite series cache opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series (
			symbol     TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS series_points (
			symbol    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			close     REAL NOT NULL,
			PRIMARY KEY (symbol, timestamp)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveSeries replaces the cached copy of the series' symbol.
func (s *SQLiteStore) SaveSeries(series *model.PriceSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM series_points WHERE symbol = ?`, series.Symbol); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO series_points (symbol, timestamp, close) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range series.Points {
		if _, err := stmt.Exec(series.Symbol, p.Time.Unix(), p.Close); err != nil {
			return fmt.Errorf("insert point: %w", err)
		}
	}

	fetchedAt := series.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	if _, err := tx.Exec(`INSERT INTO series (symbol, fetched_at) VALUES (?,?)
		ON CONFLICT(symbol) DO UPDATE SET fetched_at = excluded.fetched_at`,
		series.Symbol, fetchedAt.Unix()); err != nil {
		return fmt.Errorf("upsert series: %w", err)
	}
	return tx.Commit()
}

// LoadSeries returns the cached copy of symbol, or ErrNotFound.
func (s *SQLiteStore) LoadSeries(symbol string) (*model.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedAt int64
	err := s.db.QueryRow(`SELECT fetched_at FROM series WHERE symbol = ?`, symbol).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}

	rows, err := s.db.Query(`SELECT timestamp, close FROM series_points WHERE symbol = ? ORDER BY timestamp`, symbol)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	defer rows.Close()

	series := &model.PriceSeries{Symbol: symbol, FetchedAt: time.Unix(fetchedAt, 0)}
	for rows.Next() {
		var ts int64
		var p model.PricePoint
		if err := rows.Scan(&ts, &p.Close); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		p.Time = time.Unix(ts, 0).UTC()
		series.Points = append(series.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(series.Points) == 0 {
		return nil, ErrNotFound
	}
	return series, nil
}

func (s *SQLiteStore) Close() error {
	log.Info("closing sqlite series cache")
	return s.db.Close()
}
