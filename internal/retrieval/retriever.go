package retrieval

import (
	"sort"
	"strings"

	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/normalize"
	"github.com/nyaya-engine/core/internal/taxonomy"
)

// SectionRetriever implements C5: for a (domain, subdomain, query) triple,
// returns ranked, deduplicated section lists across all three codebooks.
type SectionRetriever struct {
	store *corpus.Store
	tree  *taxonomy.Tree
}

// NewSectionRetriever constructs a C5 retriever over a loaded corpus and
// taxonomy.
func NewSectionRetriever(store *corpus.Store, tree *taxonomy.Tree) *SectionRetriever {
	return &SectionRetriever{store: store, tree: tree}
}

// Retrieve runs the per-code retrieval algorithm independently for BNS,
// IPC, and CrPC.
func (r *SectionRetriever) Retrieve(domainID, subdomainID, normalizedQuery string) Sections {
	matchTerms := r.matchingTaxonomyTerms(domainID, subdomainID, normalizedQuery)

	return Sections{
		BNS:  r.retrieveCode(corpus.CodeBNS, domainID, subdomainID, normalizedQuery, matchTerms),
		IPC:  r.retrieveCode(corpus.CodeIPC, domainID, subdomainID, normalizedQuery, matchTerms),
		CrPC: r.retrieveCode(corpus.CodeCrPC, domainID, subdomainID, normalizedQuery, matchTerms),
	}
}

// matchingTaxonomyTerms returns the domain/subdomain keywords and patterns
// that actually appear in the normalized query — the seed expansion terms
// for step 2 of the algorithm.
func (r *SectionRetriever) matchingTaxonomyTerms(domainID, subdomainID, normalizedQuery string) []string {
	var terms []string
	d, ok := r.tree.Domain(domainID)
	if !ok {
		return terms
	}

	tokens := normalize.Tokens(normalizedQuery)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	for _, kw := range d.Keywords {
		if _, ok := tokenSet[kw]; ok {
			terms = append(terms, kw)
		}
	}
	for _, p := range d.Patterns {
		if strings.Contains(normalizedQuery, p) {
			terms = append(terms, p)
		}
	}
	for _, sd := range d.Subdomains {
		if sd.ID != subdomainID {
			continue
		}
		for _, kw := range sd.Keywords {
			if _, ok := tokenSet[kw]; ok {
				terms = append(terms, kw)
			}
		}
		for _, p := range sd.Patterns {
			if strings.Contains(normalizedQuery, p) {
				terms = append(terms, p)
			}
		}
	}
	return terms
}

type rankedSection struct {
	section corpus.Section
	score   float64
}

func (r *SectionRetriever) retrieveCode(code corpus.Code, domainID, subdomainID, normalizedQuery string, matchTerms []string) []corpus.Section {
	seen := make(map[string]corpus.Section)

	for _, s := range r.store.SectionsBySubdomain(code, subdomainID) {
		seen[s.Number] = s
	}
	for _, term := range matchTerms {
		for _, s := range r.store.SectionsByKeyword(code, term) {
			seen[s.Number] = s
		}
	}

	if len(seen) == 0 {
		return nil
	}

	queryTokens := normalize.Tokens(normalizedQuery)
	queryTokenSet := make(map[string]struct{}, len(queryTokens))
	for _, tok := range queryTokens {
		queryTokenSet[tok] = struct{}{}
	}

	ranked := make([]rankedSection, 0, len(seen))
	for _, s := range seen {
		ranked = append(ranked, rankedSection{section: s, score: rankScore(s, domainID, subdomainID, queryTokenSet)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return CompareSectionNumbers(ranked[i].section.Number, ranked[j].section.Number) < 0
	})

	out := make([]corpus.Section, len(ranked))
	for i, rs := range ranked {
		out[i] = rs.section
	}
	return out
}

func rankScore(s corpus.Section, domainID, subdomainID string, queryTokens map[string]struct{}) float64 {
	var keywordOverlap int
	for _, kw := range s.Keywords {
		if _, ok := queryTokens[strings.ToLower(kw)]; ok {
			keywordOverlap++
		}
	}

	var subdomainBonus float64
	for _, sub := range s.LinkedSubdomains {
		if sub == subdomainID {
			subdomainBonus = 2
			break
		}
	}

	var domainBonus float64
	for _, d := range s.LinkedDomains {
		if d == domainID {
			domainBonus = 1
			break
		}
	}

	titleTokens := normalize.Tokens(normalize.Query(s.Title))
	var titleOverlap int
	for _, tok := range titleTokens {
		if _, ok := queryTokens[tok]; ok {
			titleOverlap++
		}
	}

	return 3*float64(keywordOverlap) + subdomainBonus + domainBonus + 0.5*float64(titleOverlap)
}
