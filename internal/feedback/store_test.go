package feedback

import (
	"path/filepath"
	"testing"

	"github.com/nyaya-engine/core/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feedback.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecord_PositiveIncreasesDelta(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Record("evt-1", "my phone was hacked", "cyber_law", "cyber_law.unauthorized_access", SignalPositive)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if rec.CumulativeDelta <= 0 {
		t.Fatalf("expected positive delta, got %f", rec.CumulativeDelta)
	}
}

func TestRecord_NegativeDecreasesDelta(t *testing.T) {
	s := newTestStore(t)

	pos, _ := s.Record("evt-1", "q", "d", "s", SignalPositive)
	neg, err := s.Record("evt-2", "q", "d", "s", SignalNegative)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if neg.CumulativeDelta >= pos.CumulativeDelta {
		t.Fatalf("expected delta to decrease after negative feedback: pos=%f neg=%f", pos.CumulativeDelta, neg.CumulativeDelta)
	}
}

func TestRecord_SaturatesAtCeiling(t *testing.T) {
	s := newTestStore(t)

	var last Record
	for i := 0; i < 20; i++ {
		rec, err := s.Record(eventID(i), "q", "d", "s", SignalPositive)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		last = rec
	}
	if last.CumulativeDelta != deltaCeiling {
		t.Fatalf("expected saturation at %f, got %f", deltaCeiling, last.CumulativeDelta)
	}
}

func TestRecord_SaturatesAtFloor(t *testing.T) {
	s := newTestStore(t)

	var last Record
	for i := 0; i < 20; i++ {
		rec, err := s.Record(eventID(i), "q", "d", "s", SignalNegative)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		last = rec
	}
	if last.CumulativeDelta != deltaFloor {
		t.Fatalf("expected saturation at %f, got %f", deltaFloor, last.CumulativeDelta)
	}
}

func TestRecord_IdempotentPerEventAndSignal(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Record("evt-dup", "q", "d", "s", SignalPositive)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	second, err := s.Record("evt-dup", "q", "d", "s", SignalPositive)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.CumulativeDelta != second.CumulativeDelta || first.PositiveCount != second.PositiveCount {
		t.Fatalf("expected idempotent re-submission, got %+v then %+v", first, second)
	}
}

func TestRecord_InvalidSignalRejected(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Record("evt-1", "q", "d", "s", Signal("sideways")); err != ErrInvalidFeedback {
		t.Fatalf("expected ErrInvalidFeedback, got %v", err)
	}
}

func TestLookup_UnknownKeyReturnsZero(t *testing.T) {
	s := newTestStore(t)
	delta, err := s.Lookup("never seen", "d", "s")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if delta != 0 {
		t.Fatalf("expected zero delta for unknown key, got %f", delta)
	}
}

func eventID(i int) string {
	return "evt-" + string(rune('a'+i))
}

func TestRecord_CustomParamsOverrideDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	s, err := NewStoreWithDriver(config.DatabaseDriverSQLite, path, Params{
		PositiveStep: 0.50,
		NegativeStep: negativeStep,
		DeltaCeiling: deltaCeiling,
		DeltaFloor:   deltaFloor,
	})
	if err != nil {
		t.Fatalf("NewStoreWithDriver: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	rec, err := s.Record("evt-1", "q", "d", "s", SignalPositive)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if rec.CumulativeDelta != deltaCeiling {
		t.Fatalf("expected the overridden positive step (0.50) to apply, clamped at the %f ceiling, got %f", deltaCeiling, rec.CumulativeDelta)
	}
}
