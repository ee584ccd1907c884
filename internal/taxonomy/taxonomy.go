// Package taxonomy implements the domain/subdomain keyword-and-pattern tree
// (C2): positive keywords, negative keywords, multi-word patterns, and
// priority rules that short-circuit classification for context-sensitive
// phrases.
package taxonomy

import (
	"strings"

	"github.com/nyaya-engine/core/internal/normalize"
)

// GeneralSubdomainSuffix is appended to a domain id to form its mandatory
// fallback subdomain, guaranteeing non-empty subdomain output (invariant I1).
const GeneralSubdomainSuffix = "general"

// PriorityRule implements a context override: a multi-word phrase that, if
// present in the normalized query, wins over general scoring outright.
type PriorityRule struct {
	Phrase          string
	DomainID        string
	SubdomainID     string
	ConfidenceFloor float64
}

// Subdomain is a leaf of a Domain's classification tree.
type Subdomain struct {
	ID       string
	Parent   string
	Display  string
	Keywords []string
	Patterns []string
}

// Domain is a top-level legal domain.
type Domain struct {
	ID               string
	Display          string
	Keywords         []string
	NegativeKeywords []string
	Patterns         []string
	PriorityRules    []PriorityRule
	Subdomains       []Subdomain
}

// Tree is the full taxonomy: an ordered sequence of domains. Order is
// significant for scoring tie-breaks (stable taxonomy order).
type Tree struct {
	Domains []Domain

	// priorityRules is the flattened, first-match-wins list across all
	// domains, in declaration order.
	priorityRules []PriorityRule
}

// NewTree builds a Tree and precomputes its flattened priority-rule list.
func NewTree(domains []Domain) *Tree {
	t := &Tree{Domains: domains}
	for _, d := range domains {
		t.priorityRules = append(t.priorityRules, d.PriorityRules...)
	}
	return t
}

// PriorityMatch returns the first priority rule whose phrase appears in the
// normalized query, or ok=false if none matches.
func (t *Tree) PriorityMatch(normalizedQuery string) (PriorityRule, bool) {
	for _, rule := range t.priorityRules {
		if strings.Contains(normalizedQuery, rule.Phrase) {
			return rule, true
		}
	}
	return PriorityRule{}, false
}

// Score is a scored taxonomy node (domain or subdomain) together with the
// tie-break metadata spec.md §4.2 requires when two nodes land on the same
// score: higher pattern-count wins first, then higher keyword-count, then
// declaration order (the order the node appears in the taxonomy).
type Score struct {
	Value        float64
	PatternCount int
	KeywordCount int
	Order        int
}

// ScoreDomain scores every domain in the tree against the normalized query:
// +3 per matched pattern, +1 per matched keyword, -2 per matched negative
// keyword, clamped at 0. The returned Score also carries the raw pattern and
// keyword counts and the domain's declaration order, for tie-breaking.
func (t *Tree) ScoreDomain(normalizedQuery string) map[string]Score {
	tokens := normalize.Tokens(normalizedQuery)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	out := make(map[string]Score, len(t.Domains))
	for i, d := range t.Domains {
		s := Score{Order: i}
		for _, p := range d.Patterns {
			if strings.Contains(normalizedQuery, p) {
				s.Value += 3
				s.PatternCount++
			}
		}
		for _, kw := range d.Keywords {
			if _, ok := tokenSet[kw]; ok {
				s.Value += 1
				s.KeywordCount++
			}
		}
		for _, neg := range d.NegativeKeywords {
			if _, ok := tokenSet[neg]; ok {
				s.Value -= 2
			}
		}
		if s.Value < 0 {
			s.Value = 0
		}
		out[d.ID] = s
	}
	return out
}

// ScoreSubdomain scores the subdomains of domainID against the normalized
// query, using the same +3/+1/-2 rule restricted to each subdomain's own
// keywords and patterns (subdomains carry no negative keywords of their
// own in this taxonomy; domain-level negatives already filtered the
// candidate set by the time C4 is consulted). Order reflects each
// subdomain's position within the domain's Subdomains slice.
func (t *Tree) ScoreSubdomain(domainID, normalizedQuery string) map[string]Score {
	tokens := normalize.Tokens(normalizedQuery)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	out := make(map[string]Score)
	for _, d := range t.Domains {
		if d.ID != domainID {
			continue
		}
		for i, sd := range d.Subdomains {
			s := Score{Order: i}
			for _, p := range sd.Patterns {
				if strings.Contains(normalizedQuery, p) {
					s.Value += 3
					s.PatternCount++
				}
			}
			for _, kw := range sd.Keywords {
				if _, ok := tokenSet[kw]; ok {
					s.Value += 1
					s.KeywordCount++
				}
			}
			if s.Value < 0 {
				s.Value = 0
			}
			out[sd.ID] = s
		}
	}
	return out
}

// GeneralSubdomainID builds the mandatory fallback subdomain id for a domain.
func GeneralSubdomainID(domainID string) string {
	return domainID + "." + GeneralSubdomainSuffix
}

// Domain looks up a domain by id.
func (t *Tree) Domain(id string) (Domain, bool) {
	for _, d := range t.Domains {
		if d.ID == id {
			return d, true
		}
	}
	return Domain{}, false
}

// Display returns the human-readable label for a domain id, or the id
// itself if unknown.
func (t *Tree) Display(domainID string) string {
	if d, ok := t.Domain(domainID); ok {
		return d.Display
	}
	return domainID
}

// SubdomainDisplay returns the human-readable label for a (domain,
// subdomain) pair. A "<domain>.general" id not declared in the tree
// displays as "General"; any other unknown id is returned as is.
func (t *Tree) SubdomainDisplay(domainID, subdomainID string) string {
	if d, ok := t.Domain(domainID); ok {
		for _, sd := range d.Subdomains {
			if sd.ID == subdomainID {
				return sd.Display
			}
		}
	}
	if subdomainID == GeneralSubdomainID(domainID) {
		return "General"
	}
	return subdomainID
}
