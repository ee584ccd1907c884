package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nyaya-engine/core/internal/config"
	"github.com/nyaya-engine/core/internal/feedback"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Classifier.EnableClassifier = false
	cfg.Feedback.DBPath = filepath.Join(t.TempDir(), "feedback.db")
	cfg.QueryStore.DBPath = filepath.Join(t.TempDir(), "events.db")
	cfg.Cache.Driver = "memory"
	return cfg
}

func TestNew_BuildsEngineAndAnalyzes(t *testing.T) {
	eng, err := New(newTestConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eng.Close()

	res, err := eng.Analyze(context.Background(), "sess-1", "My child was kidnapped for ransom")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.DomainID != "criminal_law" {
		t.Fatalf("expected criminal_law, got %s", res.DomainID)
	}
}

func TestNew_FeedbackRoundTrip(t *testing.T) {
	eng, err := New(newTestConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eng.Close()

	res, err := eng.Analyze(context.Background(), "sess-1", "my phone was hacked")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	outcome, err := eng.SubmitFeedback("sess-1", res.EventID, feedback.SignalPositive)
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if outcome.NewEffectiveConfidence < res.EffectiveConfidence {
		t.Fatalf("expected confidence to not decrease after positive feedback")
	}
}

func TestNew_StatsAndHistory(t *testing.T) {
	eng, err := New(newTestConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eng.Close()

	if _, err := eng.Analyze(context.Background(), "sess-1", "my phone was hacked"); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	stats, err := eng.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalEvents != 1 {
		t.Fatalf("expected 1 event, got %d", stats.TotalEvents)
	}

	history, err := eng.ListHistory("sess-1", 10, 0)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
}
