package corpus

import (
	"fmt"
	"strings"
)

// LoadError is returned only during NewStore, never afterward (spec.md §4.1:
// "Fails only with CorpusLoadError during init... After init, never fails.").
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("corpus load error: %s", e.Reason)
}

type sectionKey struct {
	code   Code
	number string
}

// Store is the read-only, in-memory corpus (C1). All lookups are O(1)
// average via indices built once at construction.
type Store struct {
	sections map[sectionKey]Section

	// byKeyword[code][keyword] -> section identities, for
	// sections_by_keyword.
	byKeyword map[Code]map[string]map[sectionKey]struct{}

	// bySubdomain[code][subdomainID] -> section identities, for
	// sections_by_subdomain.
	bySubdomain map[Code]map[string]map[sectionKey]struct{}

	articles    []Article
	articleByNo map[string]Article
}

// NewStore builds a Store from the given section tables and article table.
// It returns a *LoadError if any table is malformed: a section with an
// empty code, an empty number, or a duplicate (code, number) identity.
func NewStore(sections map[Code][]Section, articles []Article) (*Store, error) {
	s := &Store{
		sections:    make(map[sectionKey]Section),
		byKeyword:   make(map[Code]map[string]map[sectionKey]struct{}),
		bySubdomain: make(map[Code]map[string]map[sectionKey]struct{}),
		articleByNo: make(map[string]Article, len(articles)),
	}

	for code, list := range sections {
		if code == "" {
			return nil, &LoadError{Reason: "section table has empty code"}
		}
		s.byKeyword[code] = make(map[string]map[sectionKey]struct{})
		s.bySubdomain[code] = make(map[string]map[sectionKey]struct{})

		for _, sec := range list {
			if sec.Number == "" {
				return nil, &LoadError{Reason: fmt.Sprintf("section in %s has empty number", code)}
			}
			key := sectionKey{code: code, number: sec.Number}
			if _, exists := s.sections[key]; exists {
				return nil, &LoadError{Reason: fmt.Sprintf("duplicate section identity (%s, %s)", code, sec.Number)}
			}
			sec.Code = code
			s.sections[key] = sec

			for _, kw := range sec.Keywords {
				kw = strings.ToLower(strings.TrimSpace(kw))
				if kw == "" {
					continue
				}
				if s.byKeyword[code][kw] == nil {
					s.byKeyword[code][kw] = make(map[sectionKey]struct{})
				}
				s.byKeyword[code][kw][key] = struct{}{}
			}
			for _, sub := range sec.LinkedSubdomains {
				if s.bySubdomain[code][sub] == nil {
					s.bySubdomain[code][sub] = make(map[sectionKey]struct{})
				}
				s.bySubdomain[code][sub][key] = struct{}{}
			}
		}
	}

	for _, a := range articles {
		if a.Number == "" {
			return nil, &LoadError{Reason: "constitutional article has empty number"}
		}
		if _, exists := s.articleByNo[a.Number]; exists {
			return nil, &LoadError{Reason: fmt.Sprintf("duplicate article identity (%s)", a.Number)}
		}
		s.articleByNo[a.Number] = a
		s.articles = append(s.articles, a)
	}

	return s, nil
}

// GetSection returns a section by identity, or ok=false if not found.
func (s *Store) GetSection(code Code, number string) (Section, bool) {
	sec, ok := s.sections[sectionKey{code: code, number: number}]
	return sec, ok
}

// SectionsByKeyword returns all sections in code whose keyword set contains
// the given (lowercased) keyword.
func (s *Store) SectionsByKeyword(code Code, keyword string) []Section {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	idx, ok := s.byKeyword[code]
	if !ok {
		return nil
	}
	keys, ok := idx[keyword]
	if !ok {
		return nil
	}
	out := make([]Section, 0, len(keys))
	for k := range keys {
		out = append(out, s.sections[k])
	}
	return out
}

// SectionsBySubdomain returns all sections in code linked to subdomainID.
func (s *Store) SectionsBySubdomain(code Code, subdomainID string) []Section {
	idx, ok := s.bySubdomain[code]
	if !ok {
		return nil
	}
	keys, ok := idx[subdomainID]
	if !ok {
		return nil
	}
	out := make([]Section, 0, len(keys))
	for k := range keys {
		out = append(out, s.sections[k])
	}
	return out
}

// AllArticles returns every constitutional article, in table load order.
func (s *Store) AllArticles() []Article {
	return s.articles
}

// GetArticle returns an article by number, or ok=false if not found.
func (s *Store) GetArticle(number string) (Article, bool) {
	a, ok := s.articleByNo[number]
	return a, ok
}

// Stats reports the sizes of the loaded tables; never hardcoded (open
// question in spec.md §9 — the engine accepts whatever the corpus
// provides).
func (s *Store) Stats() Stats {
	var st Stats
	for key := range s.sections {
		switch key.code {
		case CodeBNS:
			st.BNSSectionCount++
		case CodeIPC:
			st.IPCSectionCount++
		case CodeCrPC:
			st.CrPCSectionCount++
		}
	}
	st.ArticleCount = len(s.articles)
	return st
}
