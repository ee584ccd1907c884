package orchestrator

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nyaya-engine/core/internal/classifier"
	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/feedback"
	"github.com/nyaya-engine/core/internal/querystore"
	"github.com/nyaya-engine/core/internal/taxonomy"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	store, err := corpus.NewStore(corpus.SampleSections(), corpus.SampleArticles())
	if err != nil {
		t.Fatalf("corpus.NewStore: %v", err)
	}
	tree := taxonomy.SampleTree()

	weights := classifier.Weights{ML: 0.55, Similarity: 0.25, Taxonomy: 0.20, UnknownThreshold: 0.05, EnableClassifier: false}
	domainClf := classifier.NewDomainClassifier(tree, nil, weights)
	subdomainClf := classifier.NewSubdomainClassifier(tree)

	fbStore, err := feedback.NewStore(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("feedback.NewStore: %v", err)
	}
	t.Cleanup(func() { fbStore.Close() })

	evStore, err := querystore.NewStore(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("querystore.NewStore: %v", err)
	}
	t.Cleanup(func() { evStore.Close() })

	return New(store, tree, domainClf, subdomainClf, fbStore, evStore, nil, nil)
}

func TestAnalyze_KidnappingScenario(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Analyze(context.Background(), "sess-1", "My child was kidnapped for ransom")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.DomainID != "criminal_law" {
		t.Fatalf("expected criminal_law, got %s", res.DomainID)
	}
	if res.SubdomainID != "criminal_law.kidnapping_abduction" {
		t.Fatalf("expected kidnapping_abduction, got %s", res.SubdomainID)
	}
	if len(res.Sections.BNS) == 0 {
		t.Fatal("expected non-empty BNS sections")
	}
	foundIPC := false
	for _, s := range res.Sections.IPC {
		if s.Number == "364A" {
			foundIPC = true
		}
	}
	if !foundIPC {
		t.Fatal("expected IPC 364A in results")
	}

	foundArticle21 := false
	for _, c := range res.Constitutional {
		if c.Article.Number == "21" {
			foundArticle21 = true
			if c.Percent < 30 {
				t.Fatalf("expected article 21 percent >= 30, got %d", c.Percent)
			}
		}
	}
	if !foundArticle21 {
		t.Fatal("expected article 21 among constitutional results")
	}
}

func TestAnalyze_AirportDrugsPriorityRule(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Analyze(context.Background(), "sess-1", "Caught with drugs at airport")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.DomainID != "criminal_law" || res.SubdomainID != "criminal_law.drug_crime" {
		t.Fatalf("unexpected classification: domain=%s subdomain=%s", res.DomainID, res.SubdomainID)
	}
	if res.DomainConfidence < 0.85 {
		t.Fatalf("expected domain confidence >= 0.85, got %f", res.DomainConfidence)
	}
}

func TestAnalyze_UnknownQueryFallsBack(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Analyze(context.Background(), "sess-1", "zzz qqq")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.DomainID != "other" || res.SubdomainID != "other.general" {
		t.Fatalf("expected other/other.general, got %s/%s", res.DomainID, res.SubdomainID)
	}
	if res.EffectiveConfidence != 0.15 {
		t.Fatalf("expected effective_confidence 0.15, got %f", res.EffectiveConfidence)
	}
	if len(res.Sections.BNS) != 0 || len(res.Sections.IPC) != 0 || len(res.Sections.CrPC) != 0 {
		t.Fatal("expected empty section lists")
	}
	if len(res.Constitutional) != 0 {
		t.Fatal("expected empty constitutional list")
	}
}

func TestFeedback_MonotonicityAcrossPositiveSubmissions(t *testing.T) {
	e := newTestEngine(t)

	c0, err := e.Analyze(context.Background(), "sess-1", "my phone was hacked")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if _, err := e.SubmitFeedback("sess-1", c0.EventID, feedback.SignalPositive); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	c1, err := e.Analyze(context.Background(), "sess-1", "my phone was hacked")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if _, err := e.SubmitFeedback("sess-1", c1.EventID, feedback.SignalPositive); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	c2, err := e.Analyze(context.Background(), "sess-1", "my phone was hacked")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !(c0.EffectiveConfidence <= c1.EffectiveConfidence && c1.EffectiveConfidence <= c2.EffectiveConfidence) {
		t.Fatalf("expected monotone non-decrease: c0=%f c1=%f c2=%f", c0.EffectiveConfidence, c1.EffectiveConfidence, c2.EffectiveConfidence)
	}
	if c2.EffectiveConfidence > c0.EffectiveConfidence+0.30+1e-9 {
		t.Fatalf("expected bounded by +0.30 delta ceiling: c0=%f c2=%f", c0.EffectiveConfidence, c2.EffectiveConfidence)
	}
}

func TestSubmitFeedback_UnknownEventRejected(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.SubmitFeedback("sess-1", "does-not-exist", feedback.SignalPositive); err != ErrUnknownEvent {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestSubmitFeedback_InvalidSignalRejected(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Analyze(context.Background(), "sess-1", "my phone was hacked")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := e.SubmitFeedback("sess-1", res.EventID, feedback.Signal("sideways")); err != feedback.ErrInvalidFeedback {
		t.Fatalf("expected ErrInvalidFeedback, got %v", err)
	}
}

func TestAnalyze_IdempotentUnderReNormalization(t *testing.T) {
	e := newTestEngine(t)

	a, err := e.Analyze(context.Background(), "sess-1", "My Child Was Kidnapped, For Ransom!!")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	b, err := e.Analyze(context.Background(), "sess-1", "my   child was kidnapped for ransom")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if a.DomainID != b.DomainID || a.SubdomainID != b.SubdomainID {
		t.Fatalf("expected identical classification: %+v vs %+v", a, b)
	}
	if len(a.Sections.BNS) != len(b.Sections.BNS) || len(a.Sections.IPC) != len(b.Sections.IPC) {
		t.Fatal("expected identical section sets across re-normalized queries")
	}
}

func TestStats_ReflectsLoadedCorpusAndEvents(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Analyze(context.Background(), "sess-1", "my phone was hacked"); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	stats, err := e.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalEvents != 1 {
		t.Fatalf("expected 1 event, got %d", stats.TotalEvents)
	}
	if stats.ArticleCount == 0 {
		t.Fatal("expected non-zero article count")
	}
}

func TestAnalyze_ClassifierUnavailableMarksDegraded(t *testing.T) {
	store, err := corpus.NewStore(corpus.SampleSections(), corpus.SampleArticles())
	if err != nil {
		t.Fatalf("corpus.NewStore: %v", err)
	}
	tree := taxonomy.SampleTree()

	// EnableClassifier true with a nil model is the degraded path: the
	// operator asked for ML scoring but none is loaded.
	weights := classifier.Weights{ML: 0.55, Similarity: 0.25, Taxonomy: 0.20, UnknownThreshold: 0.05, EnableClassifier: true}
	domainClf := classifier.NewDomainClassifier(tree, nil, weights)
	subdomainClf := classifier.NewSubdomainClassifier(tree)

	fbStore, err := feedback.NewStore(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("feedback.NewStore: %v", err)
	}
	t.Cleanup(func() { fbStore.Close() })

	evStore, err := querystore.NewStore(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("querystore.NewStore: %v", err)
	}
	t.Cleanup(func() { evStore.Close() })

	e := New(store, tree, domainClf, subdomainClf, fbStore, evStore, nil, nil)

	res, err := e.Analyze(context.Background(), "sess-1", "My child was kidnapped for ransom")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.Degraded["classifier"] {
		t.Fatalf("expected classifier stage marked degraded, got %+v", res.Degraded)
	}
	if res.Partial {
		t.Fatal("degradation alone should not mark the result partial")
	}
}

func TestAnalyze_ExpiredDeadlineReturnsPartialResult(t *testing.T) {
	e := newTestEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	res, err := e.Analyze(ctx, "sess-1", "My child was kidnapped for ransom")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.Partial {
		t.Fatal("expected Partial=true once the deadline has already expired")
	}
	if res.SubdomainID != "" {
		t.Fatalf("expected subdomain stage to be skipped, got %q", res.SubdomainID)
	}
	if !res.Persisted {
		t.Fatal("expected the event to still be appended despite the partial result")
	}
}
