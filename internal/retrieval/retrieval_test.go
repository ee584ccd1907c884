package retrieval

import (
	"sort"
	"testing"

	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/normalize"
	"github.com/nyaya-engine/core/internal/taxonomy"
)

func TestCompareSectionNumbers_OrderingMatchesSpec(t *testing.T) {
	numbers := []string{"100", "41", "41A", "41B", "100A", "7"}
	sort.Slice(numbers, func(i, j int) bool {
		return CompareSectionNumbers(numbers[i], numbers[j]) < 0
	})

	want := []string{"7", "41", "41A", "41B", "100", "100A"}
	for i := range want {
		if numbers[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", numbers, want)
		}
	}
}

func newTestRetriever(t *testing.T) *SectionRetriever {
	t.Helper()
	store, err := corpus.NewStore(corpus.SampleSections(), corpus.SampleArticles())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	tree := taxonomy.SampleTree()
	return NewSectionRetriever(store, tree)
}

func TestRetrieve_KidnappingQuery(t *testing.T) {
	r := newTestRetriever(t)
	q := normalize.Query("My child was kidnapped for ransom")
	sections := r.Retrieve("criminal_law", "criminal_law.kidnapping_abduction", q)

	if len(sections.BNS) == 0 {
		t.Fatal("expected non-empty BNS section list")
	}
	foundIPC364A := false
	for _, s := range sections.IPC {
		if s.Number == "364A" {
			foundIPC364A = true
		}
	}
	if !foundIPC364A {
		t.Fatalf("expected IPC 364A among results: %+v", sections.IPC)
	}

	foundCrPC154 := false
	for _, s := range sections.CrPC {
		if s.Number == "154" {
			foundCrPC154 = true
		}
	}
	if !foundCrPC154 {
		t.Fatalf("expected CrPC 154 among results: %+v", sections.CrPC)
	}
}

func TestRetrieve_NoDuplicatesWithinCode(t *testing.T) {
	r := newTestRetriever(t)
	q := normalize.Query("My child was kidnapped for ransom")
	sections := r.Retrieve("criminal_law", "criminal_law.kidnapping_abduction", q)

	seen := make(map[string]bool)
	for _, s := range sections.BNS {
		if seen[s.Number] {
			t.Fatalf("duplicate BNS section %s", s.Number)
		}
		seen[s.Number] = true
	}
}

func TestRetrieve_UnknownSubdomainYieldsEmptyLists(t *testing.T) {
	r := newTestRetriever(t)
	q := normalize.Query("zzz qqq")
	sections := r.Retrieve("other", "other.general", q)

	if len(sections.BNS) != 0 || len(sections.IPC) != 0 || len(sections.CrPC) != 0 {
		t.Fatalf("expected empty lists for unmatched query, got %+v", sections)
	}
}
