// Package constitution implements the constitutional article ranker (C6): a
// bounded multi-factor scoring function over direct references, title and
// content overlap, keyword bonuses, and domain affinity.
package constitution

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/normalize"
	"github.com/nyaya-engine/core/internal/retrieval"
)

// Ranked is one scored article in a ranking result.
type Ranked struct {
	Article         corpus.Article
	Percent         int
	MatchedKeywords []string
}

// Ranker implements C6 over a loaded corpus.
type Ranker struct {
	store *corpus.Store
}

// NewRanker constructs a C6 ranker.
func NewRanker(store *corpus.Store) *Ranker {
	return &Ranker{store: store}
}

var directReferencePattern = regexp.MustCompile(`article\s*(\d+[a-z]*)`)

// Rank scores every article in the corpus against the normalized query and
// returns only those with a positive score, sorted by percent descending
// then by article number ascending (invariant I4).
func (r *Ranker) Rank(domainID, normalizedQuery string) []Ranked {
	referencedNumbers := make(map[string]bool)
	for _, m := range directReferencePattern.FindAllStringSubmatch(normalizedQuery, -1) {
		referencedNumbers[m[1]] = true
	}

	queryTokens := normalize.Tokens(normalizedQuery)
	queryTokenSet := make(map[string]struct{}, len(queryTokens))
	for _, tok := range queryTokens {
		queryTokenSet[tok] = struct{}{}
	}

	var out []Ranked
	for _, a := range r.store.AllArticles() {
		percentRaw, matched := scoreArticle(a, domainID, normalizedQuery, queryTokenSet, referencedNumbers)
		if percentRaw <= 0 {
			continue
		}
		percent := int(math.Round(percentRaw * 100))
		out = append(out, Ranked{Article: a, Percent: percent, MatchedKeywords: matched})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return retrieval.CompareSectionNumbers(out[i].Article.Number, out[j].Article.Number) < 0
	})

	return out
}

func scoreArticle(a corpus.Article, domainID, normalizedQuery string, queryTokens map[string]struct{}, referencedNumbers map[string]bool) (float64, []string) {
	var directReference float64
	if referencedNumbers[strings.ToLower(a.Number)] {
		directReference = 0.50
	}

	titleTokens := normalize.Tokens(normalize.Query(a.Title))
	titleOverlapCount := countOverlap(queryTokens, titleTokens)
	titleOverlap := 0.30 * float64(titleOverlapCount) / math.Max(1, float64(len(titleTokens)))

	contentTokens := normalize.Tokens(normalize.Query(a.Content))
	contentOverlapCount := countOverlap(queryTokens, contentTokens)
	contentOverlap := 0.20 * float64(contentOverlapCount) / math.Max(1, float64(len(queryTokens)))

	var matched []string
	for _, kw := range a.Keywords {
		if _, ok := queryTokens[strings.ToLower(kw)]; ok {
			matched = append(matched, kw)
		}
	}
	keywordBonus := math.Min(0.20, 0.05*float64(len(matched)))

	var domainBonus float64
	for _, hint := range a.DomainHints {
		if hint == domainID {
			domainBonus = 0.10
			break
		}
	}

	// base_relevance reuses the keyword-match count as its raw relevance
	// signal (the same matched-keyword set that drives keyword_bonus),
	// plus one extra point when the article's domain hints affirmatively
	// cover the classified domain; this keeps base_relevance strictly
	// additive to, not a duplicate of, keyword_bonus's cap.
	r := len(matched)
	if domainBonus > 0 {
		r++
	}
	baseRelevance := math.Min(0.40, 0.05*float64(r))

	percentRaw := directReference + titleOverlap + contentOverlap + keywordBonus + domainBonus + baseRelevance
	if percentRaw > 1.0 {
		percentRaw = 1.0
	}
	return percentRaw, matched
}

func countOverlap(a map[string]struct{}, tokens []string) int {
	seen := make(map[string]bool, len(tokens))
	count := 0
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		if _, ok := a[tok]; ok {
			count++
		}
	}
	return count
}
