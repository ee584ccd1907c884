// Package feedback implements the feedback-driven confidence adjustment
// system (C7): a durable store of per-(query, domain, subdomain) cumulative
// deltas, bounded and updated idempotently per event.
package feedback

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nyaya-engine/core/internal/config"
	"github.com/nyaya-engine/core/internal/store"
)

// Signal is the accepted feedback signal set.
type Signal string

const (
	SignalPositive Signal = "positive"
	SignalNegative Signal = "negative"
)

// ErrInvalidFeedback is returned when signal is not in the accepted set.
var ErrInvalidFeedback = fmt.Errorf("invalid feedback signal")

// Record mirrors the FeedbackRecord entity (spec.md §3).
type Record struct {
	NormalizedQuery string
	DomainID        string
	SubdomainID     string
	PositiveCount   int
	NegativeCount   int
	CumulativeDelta float64
	LastUpdated     time.Time
}

const (
	deltaCeiling = 0.30
	deltaFloor   = -0.20
	positiveStep = 0.10
	negativeStep = 0.05
)

// Params is the bounded-adjustment curve's tunable surface (spec.md §6:
// positive_feedback_step, negative_feedback_step, delta_ceiling,
// delta_floor). Zero-value Params is never used directly; callers get
// DefaultParams() unless they override it.
type Params struct {
	PositiveStep float64
	NegativeStep float64
	DeltaCeiling float64
	DeltaFloor   float64
}

// DefaultParams returns the engine's built-in curve, matching spec.md §6's
// defaults.
func DefaultParams() Params {
	return Params{
		PositiveStep: positiveStep,
		NegativeStep: negativeStep,
		DeltaCeiling: deltaCeiling,
		DeltaFloor:   deltaFloor,
	}
}

// execer is satisfied by both *sql.DB and *sql.Tx, letting persist/lookup
// run either standalone or inside Record's idempotence transaction.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Store is a sqlite-backed, atomically updated feedback memory. Writes to
// the same key are serialized by a per-key mutex (the feedback store runs
// as a single process, so in-process striping is sufficient; a
// multi-process deployment would instead rely on sqlite's own write
// locking).
type Store struct {
	db     *sql.DB
	driver config.DatabaseDriver
	params Params

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

// NewStore opens (and if needed creates) the sqlite-backed feedback
// journal at path, using the default adjustment curve.
func NewStore(path string) (*Store, error) {
	return NewStoreWithDriver(config.DatabaseDriverSQLite, path, DefaultParams())
}

// NewStoreWithDriver opens the feedback journal under the given SQL
// dialect (sqlite or postgres); dsn is the sqlite file path or the
// postgres connection string, respectively. params sets the bounded
// adjustment curve (spec.md §6); pass DefaultParams() for the built-in
// curve.
func NewStoreWithDriver(driver config.DatabaseDriver, dsn string, params Params) (*Store, error) {
	db, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open feedback store: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS feedback_records (
	normalized_query TEXT NOT NULL,
	domain_id TEXT NOT NULL,
	subdomain_id TEXT NOT NULL,
	positive_count INTEGER NOT NULL DEFAULT 0,
	negative_count INTEGER NOT NULL DEFAULT 0,
	cumulative_delta REAL NOT NULL DEFAULT 0,
	last_updated DATETIME NOT NULL,
	PRIMARY KEY (normalized_query, domain_id, subdomain_id)
);
CREATE TABLE IF NOT EXISTS applied_events (
	event_id TEXT NOT NULL,
	signal TEXT NOT NULL,
	PRIMARY KEY (event_id, signal)
);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init feedback schema: %w", err)
	}

	return &Store{
		db:       db,
		driver:   driver,
		params:   params,
		keyLocks: make(map[string]*sync.Mutex),
	}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// ph returns the positional-parameter placeholder for bind index i (1-based)
// under this store's dialect.
func (s *Store) ph(i int) string { return store.Placeholder(s.driver, i) }

func recordKey(normalizedQuery, domainID, subdomainID string) string {
	return normalizedQuery + "\x00" + domainID + "\x00" + subdomainID
}

func (s *Store) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.keyLocks[key]
	if !ok {
		m = &sync.Mutex{}
		s.keyLocks[key] = m
	}
	return m
}

// Record applies a feedback signal for an (event_id, normalized_query,
// domain, subdomain) tuple. Re-submitting the same (event_id, signal) is a
// no-op (invariant I5): the check and the update are committed in the same
// transaction as applied_events, so the idempotence record survives a
// process restart and a replayed submission after a crash still can't
// double-apply.
func (s *Store) Record(eventID string, normalizedQuery, domainID, subdomainID string, signal Signal) (Record, error) {
	if signal != SignalPositive && signal != SignalNegative {
		return Record{}, ErrInvalidFeedback
	}

	key := recordKey(normalizedQuery, domainID, subdomainID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return Record{}, fmt.Errorf("begin feedback transaction: %w", err)
	}
	defer tx.Rollback()

	applied, err := s.isApplied(tx, eventID, signal)
	if err != nil {
		return Record{}, err
	}
	if applied {
		rec, err := s.lookup(tx, normalizedQuery, domainID, subdomainID)
		if err != nil {
			return Record{}, err
		}
		return rec, tx.Commit()
	}

	rec, err := s.lookup(tx, normalizedQuery, domainID, subdomainID)
	if err != nil {
		return Record{}, err
	}

	switch signal {
	case SignalPositive:
		rec.PositiveCount++
		rec.CumulativeDelta = math.Min(s.params.DeltaCeiling, s.params.PositiveStep*float64(rec.PositiveCount)-s.params.NegativeStep*float64(rec.NegativeCount))
	case SignalNegative:
		rec.NegativeCount++
		rec.CumulativeDelta = math.Max(s.params.DeltaFloor, s.params.PositiveStep*float64(rec.PositiveCount)-s.params.NegativeStep*float64(rec.NegativeCount)-0.15)
	}
	rec.NormalizedQuery = normalizedQuery
	rec.DomainID = domainID
	rec.SubdomainID = subdomainID
	rec.LastUpdated = stamp()

	if err := s.persist(tx, rec); err != nil {
		return Record{}, err
	}
	if err := s.markApplied(tx, eventID, signal); err != nil {
		return Record{}, err
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit feedback record: %w", err)
	}

	return rec, nil
}

// isApplied reports whether (eventID, signal) has already been committed
// to applied_events.
func (s *Store) isApplied(q execer, eventID string, signal Signal) (bool, error) {
	query := fmt.Sprintf(`SELECT 1 FROM applied_events WHERE event_id = %s AND signal = %s`, s.ph(1), s.ph(2))
	var x int
	err := q.QueryRow(query, eventID, string(signal)).Scan(&x)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check applied event: %w", err)
	}
	return true, nil
}

func (s *Store) markApplied(q execer, eventID string, signal Signal) error {
	query := fmt.Sprintf(`INSERT INTO applied_events (event_id, signal) VALUES (%s, %s)`, s.ph(1), s.ph(2))
	if _, err := q.Exec(query, eventID, string(signal)); err != nil {
		return fmt.Errorf("mark applied event: %w", err)
	}
	return nil
}

func (s *Store) persist(q execer, rec Record) error {
	query := fmt.Sprintf(`
INSERT INTO feedback_records (normalized_query, domain_id, subdomain_id, positive_count, negative_count, cumulative_delta, last_updated)
VALUES (%s, %s, %s, %s, %s, %s, %s)
ON CONFLICT(normalized_query, domain_id, subdomain_id) DO UPDATE SET
	positive_count = excluded.positive_count,
	negative_count = excluded.negative_count,
	cumulative_delta = excluded.cumulative_delta,
	last_updated = excluded.last_updated
`, s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5), s.ph(6), s.ph(7))
	_, err := q.Exec(query, rec.NormalizedQuery, rec.DomainID, rec.SubdomainID, rec.PositiveCount, rec.NegativeCount, rec.CumulativeDelta, rec.LastUpdated)
	if err != nil {
		return fmt.Errorf("persist feedback record: %w", err)
	}
	return nil
}

// Lookup returns the cumulative delta for a (query, domain, subdomain) key,
// or 0 if no feedback has been recorded yet.
func (s *Store) Lookup(normalizedQuery, domainID, subdomainID string) (float64, error) {
	rec, err := s.lookup(s.db, normalizedQuery, domainID, subdomainID)
	if err != nil {
		return 0, err
	}
	return rec.CumulativeDelta, nil
}

func (s *Store) lookup(q execer, normalizedQuery, domainID, subdomainID string) (Record, error) {
	query := fmt.Sprintf(`
SELECT positive_count, negative_count, cumulative_delta, last_updated
FROM feedback_records
WHERE normalized_query = %s AND domain_id = %s AND subdomain_id = %s
`, s.ph(1), s.ph(2), s.ph(3))
	row := q.QueryRow(query, normalizedQuery, domainID, subdomainID)

	var rec Record
	rec.NormalizedQuery = normalizedQuery
	rec.DomainID = domainID
	rec.SubdomainID = subdomainID

	err := row.Scan(&rec.PositiveCount, &rec.NegativeCount, &rec.CumulativeDelta, &rec.LastUpdated)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("lookup feedback record: %w", err)
	}
	return rec, nil
}

// stamp is overridden in tests; production code stamps wall-clock time.
var stamp = func() time.Time { return time.Now() }
