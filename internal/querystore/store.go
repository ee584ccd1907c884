// Package querystore implements the append-only query event log (C8):
// every analyze or feedback-submission event, with history listing and
// substring search.
package querystore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nyaya-engine/core/internal/config"
	"github.com/nyaya-engine/core/internal/store"
)

// Event mirrors the QueryEvent entity (spec.md §3).
type Event struct {
	EventID                string
	SessionID              string
	Timestamp              time.Time
	RawQuery               string
	NormalizedQuery        string
	DomainID               string
	DomainDisplay          string
	SubdomainID            string
	BaseConfidence         float64
	EffectiveConfidence    float64
	RetrievedSectionIDs    []string
	RetrievedArticleNumbers []string
}

// Store is a sqlite-backed append-only event log. Appends are serialized
// globally via the database's own write lock; reads may run concurrently.
type Store struct {
	db     *sql.DB
	driver config.DatabaseDriver
}

// NewStore opens (and if needed creates) the sqlite-backed event log at
// path.
func NewStore(path string) (*Store, error) {
	return NewStoreWithDriver(config.DatabaseDriverSQLite, path)
}

// NewStoreWithDriver opens the event log under the given SQL dialect
// (sqlite or postgres); dsn is the sqlite file path or the postgres
// connection string, respectively.
func NewStoreWithDriver(driver config.DatabaseDriver, dsn string) (*Store, error) {
	db, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open query store: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS query_events (
	event_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	ts DATETIME NOT NULL,
	raw_query TEXT NOT NULL,
	normalized_query TEXT NOT NULL,
	domain_id TEXT NOT NULL,
	domain_display TEXT NOT NULL,
	subdomain_id TEXT NOT NULL,
	base_confidence REAL NOT NULL,
	effective_confidence REAL NOT NULL,
	section_ids TEXT NOT NULL,
	article_numbers TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_query_events_session ON query_events(session_id);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init query store schema: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// ph returns the positional-parameter placeholder for bind index i (1-based)
// under this store's dialect.
func (s *Store) ph(i int) string { return store.Placeholder(s.driver, i) }

// Append durably records an event; the insert is flushed before returning.
func (s *Store) Append(e Event) error {
	query := fmt.Sprintf(`
INSERT INTO query_events (event_id, session_id, ts, raw_query, normalized_query, domain_id, domain_display, subdomain_id, base_confidence, effective_confidence, section_ids, article_numbers)
VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
`, s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5), s.ph(6), s.ph(7), s.ph(8), s.ph(9), s.ph(10), s.ph(11), s.ph(12))
	_, err := s.db.Exec(query,
		e.EventID, e.SessionID, e.Timestamp, e.RawQuery, e.NormalizedQuery,
		e.DomainID, e.DomainDisplay, e.SubdomainID, e.BaseConfidence, e.EffectiveConfidence,
		strings.Join(e.RetrievedSectionIDs, ","), strings.Join(e.RetrievedArticleNumbers, ","),
	)
	if err != nil {
		return fmt.Errorf("append query event: %w", err)
	}
	return nil
}

// List returns events newest-first, optionally filtered to a session and
// paginated.
func (s *Store) List(sessionID string, limit, offset int) ([]Event, error) {
	var rows *sql.Rows
	var err error
	if sessionID != "" {
		query := fmt.Sprintf(`
SELECT event_id, session_id, ts, raw_query, normalized_query, domain_id, domain_display, subdomain_id, base_confidence, effective_confidence, section_ids, article_numbers
FROM query_events WHERE session_id = %s ORDER BY ts DESC LIMIT %s OFFSET %s
`, s.ph(1), s.ph(2), s.ph(3))
		rows, err = s.db.Query(query, sessionID, limitOrDefault(limit), offset)
	} else {
		query := fmt.Sprintf(`
SELECT event_id, session_id, ts, raw_query, normalized_query, domain_id, domain_display, subdomain_id, base_confidence, effective_confidence, section_ids, article_numbers
FROM query_events ORDER BY ts DESC LIMIT %s OFFSET %s
`, s.ph(1), s.ph(2))
		rows, err = s.db.Query(query, limitOrDefault(limit), offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Search returns events whose raw_query or domain_display contains
// substring, case-insensitively.
func (s *Store) Search(substring string) ([]Event, error) {
	query := fmt.Sprintf(`
SELECT event_id, session_id, ts, raw_query, normalized_query, domain_id, domain_display, subdomain_id, base_confidence, effective_confidence, section_ids, article_numbers
FROM query_events
WHERE raw_query LIKE %s OR domain_display LIKE %s
ORDER BY ts DESC
`, s.ph(1), s.ph(2))
	rows, err := s.db.Query(query, "%"+substring+"%", "%"+substring+"%")
	if err != nil {
		return nil, fmt.Errorf("search query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Count returns the total number of recorded events (used by stats()).
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM query_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query events: %w", err)
	}
	return n, nil
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var e Event
		var sectionIDs, articleNumbers string
		if err := rows.Scan(&e.EventID, &e.SessionID, &e.Timestamp, &e.RawQuery, &e.NormalizedQuery,
			&e.DomainID, &e.DomainDisplay, &e.SubdomainID, &e.BaseConfidence, &e.EffectiveConfidence,
			&sectionIDs, &articleNumbers); err != nil {
			return nil, fmt.Errorf("scan query event: %w", err)
		}
		e.RetrievedSectionIDs = splitNonEmpty(sectionIDs)
		e.RetrievedArticleNumbers = splitNonEmpty(articleNumbers)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}
