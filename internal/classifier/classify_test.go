package classifier

import (
	"testing"

	"github.com/nyaya-engine/core/internal/normalize"
	"github.com/nyaya-engine/core/internal/taxonomy"
)

func defaultWeights() Weights {
	return Weights{ML: 0.55, Similarity: 0.25, Taxonomy: 0.20, UnknownThreshold: 0.05, EnableClassifier: true}
}

func TestDomainClassifier_PriorityRuleShortCircuits(t *testing.T) {
	tree := taxonomy.SampleTree()
	dc := NewDomainClassifier(tree, nil, defaultWeights())

	q := normalize.Query("Caught with drugs at airport")
	res, rule := dc.Classify(q)

	if rule == nil {
		t.Fatal("expected priority rule to fire")
	}
	if res.DomainID != "criminal_law" {
		t.Fatalf("expected criminal_law, got %s", res.DomainID)
	}
	if res.BaseConfidence < 0.85 {
		t.Fatalf("expected confidence >= 0.85, got %f", res.BaseConfidence)
	}
}

func TestDomainClassifier_TaxonomyOnlyDegradation(t *testing.T) {
	tree := taxonomy.SampleTree()
	weights := defaultWeights()
	weights.EnableClassifier = false
	dc := NewDomainClassifier(tree, nil, weights)

	q := normalize.Query("My child was kidnapped for ransom")
	res, rule := dc.Classify(q)

	if rule != nil {
		t.Fatal("did not expect a priority rule for this query")
	}
	if res.DomainID != "criminal_law" {
		t.Fatalf("expected criminal_law under taxonomy-only degradation, got %s", res.DomainID)
	}
}

func TestDomainClassifier_UnknownQueryFallsBackToOther(t *testing.T) {
	tree := taxonomy.SampleTree()
	weights := defaultWeights()
	weights.EnableClassifier = false
	dc := NewDomainClassifier(tree, nil, weights)

	q := normalize.Query("zzz qqq")
	res, rule := dc.Classify(q)

	if rule != nil {
		t.Fatal("unexpected priority rule")
	}
	if res.DomainID != "other" {
		t.Fatalf("expected other, got %s", res.DomainID)
	}
	if res.BaseConfidence != fallbackConfidence {
		t.Fatalf("expected fallback confidence %f, got %f", fallbackConfidence, res.BaseConfidence)
	}
}

func TestDomainClassifier_BaseConfidenceInUnitRange(t *testing.T) {
	tree := taxonomy.SampleTree()
	weights := defaultWeights()
	weights.EnableClassifier = false
	dc := NewDomainClassifier(tree, nil, weights)

	for _, raw := range []string{"My child was kidnapped for ransom", "zzz qqq", "my phone was hacked"} {
		res, _ := dc.Classify(normalize.Query(raw))
		if res.BaseConfidence < 0 || res.BaseConfidence > 1 {
			t.Fatalf("confidence out of range for %q: %f", raw, res.BaseConfidence)
		}
	}
}

func TestSubdomainClassifier_MandatoryNonNullFallback(t *testing.T) {
	tree := taxonomy.SampleTree()
	sc := NewSubdomainClassifier(tree)

	res := sc.Classify("other", normalize.Query("zzz qqq"), nil)
	if res.SubdomainID != "other.general" {
		t.Fatalf("expected other.general fallback, got %s", res.SubdomainID)
	}
}

func TestSubdomainClassifier_PriorityRulePropagation(t *testing.T) {
	tree := taxonomy.SampleTree()
	dc := NewDomainClassifier(tree, nil, defaultWeights())
	sc := NewSubdomainClassifier(tree)

	q := normalize.Query("What can I do about workplace sexual harassment?")
	_, rule := dc.Classify(q)
	if rule == nil {
		t.Fatal("expected priority rule")
	}
	res := sc.Classify(rule.DomainID, q, rule)
	if res.SubdomainID != "criminal_law.sexual_harassment" {
		t.Fatalf("expected criminal_law.sexual_harassment, got %s", res.SubdomainID)
	}
}

func TestSubdomainClassifier_KidnappingResolvesCorrectSubdomain(t *testing.T) {
	tree := taxonomy.SampleTree()
	sc := NewSubdomainClassifier(tree)

	q := normalize.Query("My child was kidnapped for ransom")
	res := sc.Classify("criminal_law", q, nil)
	if res.SubdomainID != "criminal_law.kidnapping_abduction" {
		t.Fatalf("expected kidnapping_abduction, got %s", res.SubdomainID)
	}
}

func TestModel_DeterministicOutput(t *testing.T) {
	docs := []TrainingDoc{
		{DomainID: "criminal_law", Text: "kidnapping ransom abduction child murder"},
		{DomainID: "cyber_law", Text: "hacked hacking password breach online"},
	}
	m, err := NewModel(docs)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	q := normalize.Query("my phone was hacked")
	a := m.PredictProba(q)
	b := m.PredictProba(q)
	for k := range a {
		if a[k] != b[k] {
			t.Fatalf("expected deterministic output, got %v vs %v", a, b)
		}
	}
	if a["cyber_law"] <= a["criminal_law"] {
		t.Fatalf("expected cyber_law to score higher for hacking query: %+v", a)
	}
}

func TestModel_RejectsEmptyTrainingSet(t *testing.T) {
	if _, err := NewModel(nil); err == nil {
		t.Fatal("expected LoadError for empty training set")
	}
}
