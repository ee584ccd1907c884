package classifier

import (
	"math"
	"sort"

	"github.com/nyaya-engine/core/internal/taxonomy"
)

// Weights mirrors the engine's configurable classification surface
// (ml_weight, similarity_weight, taxonomy_weight, unknown_threshold,
// enable_classifier).
type Weights struct {
	ML               float64
	Similarity       float64
	Taxonomy         float64
	UnknownThreshold float64
	EnableClassifier bool
}

// DomainResult is the output contract of the domain classifier (C3).
type DomainResult struct {
	DomainID      string
	BaseConfidence float64
	Alternatives  []Alternative

	// Degraded is true when the ML model was configured on but unavailable,
	// so scoring fell back to taxonomy-only combination (spec.md §7's
	// per-stage degraded flag). It is never true when EnableClassifier is
	// simply off, nor on the priority-rule short-circuit path, since
	// neither represents an unavailable dependency.
	Degraded bool
}

// Alternative is a runner-up domain and its combined score.
type Alternative struct {
	DomainID   string
	Confidence float64
}

const (
	fallbackDomainID  = "other"
	fallbackConfidence = 0.15
)

// DomainClassifier implements C3: hybrid ML + taxonomy scoring with
// priority-rule short-circuiting and graceful degradation when the model is
// unavailable.
type DomainClassifier struct {
	tree    *taxonomy.Tree
	model   *Model // nil means taxonomy-only degradation
	weights Weights
}

// NewDomainClassifier constructs a C3 classifier. model may be nil — this is
// the documented non-error degradation path, not a misuse.
func NewDomainClassifier(tree *taxonomy.Tree, model *Model, weights Weights) *DomainClassifier {
	return &DomainClassifier{tree: tree, model: model, weights: weights}
}

// Classify runs the full C3 algorithm: priority match, then combined
// ml/similarity/taxonomy scoring, then unknown-domain fallback.
func (c *DomainClassifier) Classify(normalizedQuery string) (DomainResult, *taxonomy.PriorityRule) {
	if rule, ok := c.tree.PriorityMatch(normalizedQuery); ok {
		conf := math.Max(rule.ConfidenceFloor, 0.85)
		return DomainResult{
			DomainID:       rule.DomainID,
			BaseConfidence: conf,
			Alternatives:   nil,
		}, &rule
	}

	rawTax := c.tree.ScoreDomain(normalizedQuery)
	taxScores := unitValues(rawTax)

	var mlScores, simScores map[string]float64
	useClassifier := c.weights.EnableClassifier && c.model != nil
	degraded := c.weights.EnableClassifier && c.model == nil
	if useClassifier {
		mlScores = c.model.PredictProba(normalizedQuery)
		simScores = c.model.SimilarityScores(normalizedQuery)
	}

	combined := make(map[string]float64)
	for _, d := range c.tree.Domains {
		var ml, sim float64
		if useClassifier {
			ml = mlScores[d.ID]
			sim = simScores[d.ID]
		}
		tax := taxScores[d.ID]
		if useClassifier {
			combined[d.ID] = c.weights.ML*ml + c.weights.Similarity*sim + c.weights.Taxonomy*tax
		} else {
			// Degraded mode: combined score IS the taxonomy score.
			combined[d.ID] = tax
		}
	}

	// Ties on combined score break by taxonomy pattern-count, then
	// keyword-count, then declaration order (spec.md §4.2) — not by
	// domain id, regardless of whether the ML model contributed.
	ordered := rank(combined, rawTax)
	maxScore := 0.0
	if len(ordered) > 0 {
		maxScore = ordered[0].Score
	}

	allTaxonomyZero := true
	for _, v := range rawTax {
		if v.Value != 0 {
			allTaxonomyZero = false
			break
		}
	}

	if maxScore < c.weights.UnknownThreshold && allTaxonomyZero {
		return DomainResult{
			DomainID:       fallbackDomainID,
			BaseConfidence: fallbackConfidence,
			Alternatives:   nil,
			Degraded:       degraded,
		}, nil
	}

	top := ordered[0]
	rest := ordered[1:]
	if len(rest) > 2 {
		rest = rest[:2]
	}
	alts := make([]Alternative, len(rest))
	for i, s := range rest {
		alts[i] = Alternative{DomainID: s.ID, Confidence: s.Score}
	}

	return DomainResult{
		DomainID:       top.ID,
		BaseConfidence: math.Min(1.0, top.Score),
		Alternatives:   alts,
		Degraded:       degraded,
	}, nil
}

// scoredID pairs an identifier (domain or subdomain) with its score, used
// internally for descending-score ranking.
type scoredID struct {
	ID    string
	Score float64
}

// rank orders scores descending, breaking ties using tie's pattern-count
// (higher first), then keyword-count (higher first), then declaration
// order (lower first) — spec.md §4.2. A ranked id absent from tie (e.g. the
// priority-rule short-circuit path never reaches here) falls back to a
// zero-valued tie-break, which only matters if it ties with another id.
func rank(scores map[string]float64, tie map[string]taxonomy.Score) []scoredID {
	out := make([]scoredID, 0, len(scores))
	for id, score := range scores {
		out = append(out, scoredID{ID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ti, tj := tie[out[i].ID], tie[out[j].ID]
		if ti.PatternCount != tj.PatternCount {
			return ti.PatternCount > tj.PatternCount
		}
		if ti.KeywordCount != tj.KeywordCount {
			return ti.KeywordCount > tj.KeywordCount
		}
		return ti.Order < tj.Order
	})
	return out
}

func unitValues(scores map[string]taxonomy.Score) map[string]float64 {
	var max float64
	for _, v := range scores {
		if v.Value > max {
			max = v.Value
		}
	}
	out := make(map[string]float64, len(scores))
	if max == 0 {
		for k := range scores {
			out[k] = 0
		}
		return out
	}
	for k, v := range scores {
		out[k] = v.Value / max
	}
	return out
}

// SubdomainResult is the output contract of the subdomain classifier (C4).
type SubdomainResult struct {
	SubdomainID string
	Confidence  float64
	Alternatives []Alternative
}

const degradedSubdomainConfidence = 0.20

// SubdomainClassifier implements C4: per-domain subdomain scoring with a
// mandatory non-empty fallback to "<domain>.general".
type SubdomainClassifier struct {
	tree *taxonomy.Tree
}

// NewSubdomainClassifier constructs a C4 classifier.
func NewSubdomainClassifier(tree *taxonomy.Tree) *SubdomainClassifier {
	return &SubdomainClassifier{tree: tree}
}

// Classify scores domainID's subdomains against the normalized query. If a
// priority rule already pinned a subdomain (propagated from C3), that value
// is used directly with its floor instead of recomputing scores.
func (c *SubdomainClassifier) Classify(domainID, normalizedQuery string, priorityRule *taxonomy.PriorityRule) SubdomainResult {
	if priorityRule != nil && priorityRule.SubdomainID != "" {
		return SubdomainResult{
			SubdomainID: priorityRule.SubdomainID,
			Confidence:  math.Max(priorityRule.ConfidenceFloor, 0.85),
		}
	}

	rawScores := c.tree.ScoreSubdomain(domainID, normalizedQuery)
	if len(rawScores) == 0 {
		return SubdomainResult{
			SubdomainID: taxonomy.GeneralSubdomainID(domainID),
			Confidence:  degradedSubdomainConfidence,
		}
	}

	var maxScore float64
	for _, v := range rawScores {
		if v.Value > maxScore {
			maxScore = v.Value
		}
	}
	if maxScore == 0 {
		return SubdomainResult{
			SubdomainID: taxonomy.GeneralSubdomainID(domainID),
			Confidence:  degradedSubdomainConfidence,
		}
	}

	scores := make(map[string]float64, len(rawScores))
	for id, v := range rawScores {
		scores[id] = v.Value
	}
	ordered := rank(scores, rawScores)
	for i := range ordered {
		ordered[i].Score = ordered[i].Score / (maxScore + 1)
	}

	top := ordered[0]
	rest := ordered[1:]
	if len(rest) > 2 {
		rest = rest[:2]
	}
	alts := make([]Alternative, len(rest))
	for i, s := range rest {
		alts[i] = Alternative{DomainID: s.ID, Confidence: s.Score}
	}

	return SubdomainResult{
		SubdomainID:  top.ID,
		Confidence:   top.Score,
		Alternatives: alts,
	}
}
