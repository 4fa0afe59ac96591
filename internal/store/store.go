// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists business records found by searches in a local
// SQLite database keyed by place ID.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

const defaultDBPath = "businesses.db"

// Store manages the business record database.
type Store struct {
	db *sql.DB
}

// New opens or creates the SQLite database and its schema.
func New(cfg types.StoreConfig) (*Store, error) {
	path := cfg.DatabasePath
	if path == "" {
		path = defaultDBPath
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS businesses (
			place_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			city TEXT,
			district TEXT,
			phone TEXT,
			website TEXT,
			category TEXT,
			latitude REAL,
			longitude REAL,
			notes TEXT,
			tags TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_businesses_city ON businesses(city)`,
		`CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Summary reports how a batch save went.
type Summary struct {
	New        int `json:"new" yaml:"new"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
}

// SaveAll upserts businesses by place ID. A record that already exists
// is counted as a duplicate and left untouched, so the first-seen
// snapshot (and any operator notes on it) survives repeat searches.
func (s *Store) SaveAll(ctx context.Context, businesses []types.Business) (Summary, error) {
	var summary Summary
	now := time.Now().UTC().Format(time.RFC3339)

	for _, b := range businesses {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO businesses
				(place_id, name, address, city, district, phone, website,
				 category, latitude, longitude, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(place_id) DO NOTHING`,
			b.PlaceID, b.Name, b.Address, b.City, b.District, b.Phone,
			b.Website, b.Category, b.Latitude, b.Longitude, now, now)
		if err != nil {
			return summary, fmt.Errorf("saving %s: %w", b.PlaceID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return summary, fmt.Errorf("checking save of %s: %w", b.PlaceID, err)
		}
		if n > 0 {
			summary.New++
		} else {
			summary.Duplicates++
		}
	}
	return summary, nil
}

// ListOptions filters and pages stored businesses.
type ListOptions struct {
	City      string
	Category  string
	NameQuery string
	Limit     int
	Offset    int
}

const defaultListLimit = 100

// List returns stored businesses matching the options, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Business, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT place_id, name, address, city, district, phone, website,
			category, latitude, longitude, notes, tags, created_at, updated_at
		 FROM businesses WHERE 1=1`)

	if opts.City != "" {
		qb.WriteString(` AND city = ?`)
		args = append(args, opts.City)
	}
	if opts.Category != "" {
		qb.WriteString(` AND category = ?`)
		args = append(args, opts.Category)
	}
	if opts.NameQuery != "" {
		qb.WriteString(` AND name LIKE ?`)
		args = append(args, "%"+opts.NameQuery+"%")
	}

	qb.WriteString(` ORDER BY created_at DESC, place_id LIMIT ? OFFSET ?`)
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying businesses: %w", err)
	}
	defer rows.Close()

	var businesses []types.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

// Get returns one business by place ID.
func (s *Store) Get(ctx context.Context, placeID string) (types.Business, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT place_id, name, address, city, district, phone, website,
			category, latitude, longitude, notes, tags, created_at, updated_at
		 FROM businesses WHERE place_id = ?`, placeID)
	b, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return types.Business{}, fmt.Errorf("business %s not found", placeID)
	}
	return b, err
}

// Delete removes the given place IDs and reports how many rows went away.
func (s *Store) Delete(ctx context.Context, placeIDs []string) (int, error) {
	if len(placeIDs) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(placeIDs)), ",")
	args := make([]any, len(placeIDs))
	for i, id := range placeIDs {
		args[i] = id
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM businesses WHERE place_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting businesses: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// UpdateAnnotations sets operator notes and tags on a stored business.
func (s *Store) UpdateAnnotations(ctx context.Context, placeID, notes, tags string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE businesses SET notes = ?, tags = ?, updated_at = ? WHERE place_id = ?`,
		notes, tags, now, placeID)
	if err != nil {
		return fmt.Errorf("updating %s: %w", placeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("business %s not found", placeID)
	}
	return nil
}

// Stats summarizes the stored records.
type Stats struct {
	Total       int            `json:"total" yaml:"total"`
	WithPhone   int            `json:"with_phone" yaml:"with_phone"`
	WithWebsite int            `json:"with_website" yaml:"with_website"`
	ByCity      map[string]int `json:"by_city" yaml:"by_city"`
	ByCategory  map[string]int `json:"by_category" yaml:"by_category"`
}

// Stats computes record counts overall and grouped by city and category.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByCity: map[string]int{}, ByCategory: map[string]int{}}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(CASE WHEN phone != '' THEN 1 END),
			COUNT(CASE WHEN website != '' THEN 1 END)
		 FROM businesses`)
	if err := row.Scan(&stats.Total, &stats.WithPhone, &stats.WithWebsite); err != nil {
		return stats, fmt.Errorf("counting businesses: %w", err)
	}

	for _, group := range []struct {
		column string
		dest   map[string]int
	}{
		{"city", stats.ByCity},
		{"category", stats.ByCategory},
	} {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+group.column+`, COUNT(*) FROM businesses
			 WHERE `+group.column+` != '' GROUP BY `+group.column)
		if err != nil {
			return stats, fmt.Errorf("grouping by %s: %w", group.column, err)
		}
		for rows.Next() {
			var key string
			var n int
			if err := rows.Scan(&key, &n); err != nil {
				rows.Close()
				return stats, err
			}
			group.dest[key] = n
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return stats, err
		}
		rows.Close()
	}
	return stats, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBusiness(sc scanner) (types.Business, error) {
	var (
		b                    types.Business
		address, city        sql.NullString
		district, phone      sql.NullString
		website, category    sql.NullString
		notes, tags          sql.NullString
		latitude, longitude  sql.NullFloat64
		createdAt, updatedAt sql.NullString
	)
	if err := sc.Scan(&b.PlaceID, &b.Name, &address, &city, &district, &phone,
		&website, &category, &latitude, &longitude, &notes, &tags,
		&createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return b, err
		}
		return b, fmt.Errorf("scanning business: %w", err)
	}

	b.Address = address.String
	b.City = city.String
	b.District = district.String
	b.Phone = phone.String
	b.Website = website.String
	b.Category = category.String
	b.Notes = notes.String
	b.Tags = tags.String
	b.Latitude = latitude.Float64
	b.Longitude = longitude.Float64
	if createdAt.Valid {
		if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
			b.CreatedAt = t
		}
	}
	if updatedAt.Valid {
		if t, err := time.Parse(time.RFC3339, updatedAt.String); err == nil {
			b.UpdatedAt = t
		}
	}
	return b, nil
}
