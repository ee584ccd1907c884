package constitution

import (
	"testing"

	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/normalize"
)

func newTestRanker(t *testing.T) *Ranker {
	t.Helper()
	store, err := corpus.NewStore(corpus.SampleSections(), corpus.SampleArticles())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewRanker(store)
}

func TestRank_DirectArticleReference(t *testing.T) {
	r := newTestRanker(t)
	q := normalize.Query("violation of Article 21")
	ranked := r.Rank("criminal_law", q)

	if len(ranked) == 0 {
		t.Fatal("expected at least one ranked article")
	}
	top := ranked[0]
	if top.Article.Number != "21" {
		t.Fatalf("expected article 21 on top, got %s", top.Article.Number)
	}
	if top.Percent < 50 {
		t.Fatalf("expected percent >= 50, got %d", top.Percent)
	}
}

func TestRank_KidnappingQueryIncludesArticle21(t *testing.T) {
	r := newTestRanker(t)
	q := normalize.Query("My child was kidnapped for ransom")
	ranked := r.Rank("criminal_law", q)

	found := false
	for _, rk := range ranked {
		if rk.Article.Number == "21" {
			found = true
			if rk.Percent < 30 {
				t.Fatalf("expected article 21 percent >= 30, got %d", rk.Percent)
			}
		}
	}
	if !found {
		t.Fatal("expected article 21 among ranked results")
	}
}

func TestRank_SortedDescendingWithTieBreak(t *testing.T) {
	r := newTestRanker(t)
	q := normalize.Query("My child was kidnapped for ransom and I want to know my rights on arrest and liberty")
	ranked := r.Rank("criminal_law", q)

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Percent > ranked[i-1].Percent {
			t.Fatalf("expected non-increasing percent order at index %d: %+v", i, ranked)
		}
		if ranked[i].Percent == ranked[i-1].Percent && ranked[i].Article.Number < ranked[i-1].Article.Number {
			t.Fatalf("expected ascending article number among ties at index %d", i)
		}
	}
}

func TestRank_UnmatchedQueryYieldsEmpty(t *testing.T) {
	r := newTestRanker(t)
	q := normalize.Query("zzz qqq")
	ranked := r.Rank("other", q)
	if len(ranked) != 0 {
		t.Fatalf("expected no ranked articles, got %+v", ranked)
	}
}

func TestRank_PercentAlwaysInRange(t *testing.T) {
	r := newTestRanker(t)
	for _, raw := range []string{"Article 21", "my phone was hacked", "drugs at airport"} {
		ranked := r.Rank("criminal_law", normalize.Query(raw))
		for _, rk := range ranked {
			if rk.Percent < 0 || rk.Percent > 100 {
				t.Fatalf("percent out of range for %q: %d", raw, rk.Percent)
			}
		}
	}
}
