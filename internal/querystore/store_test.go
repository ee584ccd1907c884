package querystore

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndList(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := Event{
			EventID:         eventID(i),
			SessionID:       "sess-1",
			Timestamp:       base.Add(time.Duration(i) * time.Minute),
			RawQuery:        "query",
			NormalizedQuery: "query",
			DomainID:        "criminal_law",
			DomainDisplay:   "Criminal Law",
			SubdomainID:     "criminal_law.general",
		}
		if err := s.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := s.List("sess-1", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].EventID != eventID(2) {
		t.Fatalf("expected newest-first order, got %s first", events[0].EventID)
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	s := newTestStore(t)
	_ = s.Append(Event{EventID: "e1", SessionID: "s", Timestamp: time.Now(), RawQuery: "My Child Was Kidnapped", DomainDisplay: "Criminal Law"})
	_ = s.Append(Event{EventID: "e2", SessionID: "s", Timestamp: time.Now(), RawQuery: "unrelated", DomainDisplay: "Cyber Law"})

	found, err := s.Search("kidnap")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].EventID != "e1" {
		t.Fatalf("expected to find e1, got %+v", found)
	}
}

func TestCount(t *testing.T) {
	s := newTestStore(t)
	_ = s.Append(Event{EventID: "e1", SessionID: "s", Timestamp: time.Now(), RawQuery: "q"})
	_ = s.Append(Event{EventID: "e2", SessionID: "s", Timestamp: time.Now(), RawQuery: "q"})

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}

func eventID(i int) string {
	return "evt-" + string(rune('a'+i))
}
