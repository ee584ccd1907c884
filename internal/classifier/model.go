// Package classifier implements the two-stage domain/subdomain classifier
// (C3, C4): a small deterministic text model combined with the taxonomy's
// keyword/pattern scores, and a mandatory non-null subdomain fallback.
package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"sort"
	"strings"

	"github.com/nyaya-engine/core/internal/normalize"
)

// LoadError is returned only from NewModel; the caller is expected to
// degrade to taxonomy-only scoring rather than fail outright (spec §4.3:
// "classifier not loadable → degrade to taxonomy-only scoring").
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return "classifier load error: " + e.Reason }

// Model is a deterministic bag-of-words text classifier: a TF-IDF centroid
// per domain, built once at engine construction (from the taxonomy's own
// keyword and pattern vocabulary, since no external labeled corpus ships
// with the engine) and read-only afterwards. It satisfies the model contract: fixed
// input always produces the same output, predict_proba returns a full
// distribution over domains, and the underlying vectors double as the
// cosine-similarity nearest-neighbor signal.
type Model struct {
	idf       map[string]float64
	centroids map[string]map[string]float64
	digest    string
}

// TrainingDoc is one labeled example used to build a domain's centroid.
type TrainingDoc struct {
	DomainID string
	Text     string
}

// NewModel builds a Model from a set of labeled training documents. It
// returns a *LoadError if no documents are supplied, since a model with an
// empty vocabulary cannot produce a meaningful distribution.
func NewModel(docs []TrainingDoc) (*Model, error) {
	if len(docs) == 0 {
		return nil, &LoadError{Reason: "no training documents supplied"}
	}

	df := make(map[string]int)
	tokensByDoc := make([][]string, len(docs))
	for i, d := range docs {
		toks := normalize.Tokens(normalize.Query(d.Text))
		tokensByDoc[i] = toks
		seen := make(map[string]struct{})
		for _, tok := range toks {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(1+n/float64(count)) + 1
	}

	sums := make(map[string]map[string]float64)
	counts := make(map[string]int)
	for i, d := range docs {
		vec := tfidfVector(tokensByDoc[i], idf)
		if sums[d.DomainID] == nil {
			sums[d.DomainID] = make(map[string]float64)
		}
		for term, w := range vec {
			sums[d.DomainID][term] += w
		}
		counts[d.DomainID]++
	}

	centroids := make(map[string]map[string]float64, len(sums))
	for domain, vec := range sums {
		c := make(map[string]float64, len(vec))
		n := float64(counts[domain])
		for term, w := range vec {
			c[term] = w / n
		}
		centroids[domain] = c
	}

	h := sha256.New()
	for _, d := range docs {
		h.Write([]byte(d.DomainID))
		h.Write([]byte(d.Text))
	}

	return &Model{
		idf:       idf,
		centroids: centroids,
		digest:    hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Digest identifies the training corpus this model was built from.
func (m *Model) Digest() string { return m.digest }

func tfidfVector(tokens []string, idf map[string]float64) map[string]float64 {
	tf := make(map[string]float64)
	for _, tok := range tokens {
		tf[tok]++
	}
	n := float64(len(tokens))
	if n == 0 {
		return tf
	}
	vec := make(map[string]float64, len(tf))
	for term, count := range tf {
		vec[term] = (count / n) * idf[term]
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for term, av := range a {
		na += av * av
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// PredictProba returns a probability distribution over domains, computed as
// a softmax of the query's cosine similarity to each domain centroid. The
// distribution sums to 1 over known domains.
func (m *Model) PredictProba(normalizedQuery string) map[string]float64 {
	tokens := normalize.Tokens(normalizedQuery)
	queryVec := tfidfVector(tokens, m.idf)

	raw := make(map[string]float64, len(m.centroids))
	var maxRaw float64
	first := true
	for domain, centroid := range m.centroids {
		sim := cosine(queryVec, centroid)
		raw[domain] = sim
		if first || sim > maxRaw {
			maxRaw = sim
			first = false
		}
	}

	var sumExp float64
	exps := make(map[string]float64, len(raw))
	for domain, sim := range raw {
		e := math.Exp(sim - maxRaw)
		exps[domain] = e
		sumExp += e
	}

	out := make(map[string]float64, len(exps))
	if sumExp == 0 {
		return out
	}
	for domain, e := range exps {
		out[domain] = e / sumExp
	}
	return out
}

// SimilarityScores returns the raw (non-softmaxed) cosine similarity of the
// query to each domain's training centroid, clamped to [0,1].
func (m *Model) SimilarityScores(normalizedQuery string) map[string]float64 {
	tokens := normalize.Tokens(normalizedQuery)
	queryVec := tfidfVector(tokens, m.idf)

	out := make(map[string]float64, len(m.centroids))
	for domain, centroid := range m.centroids {
		sim := cosine(queryVec, centroid)
		out[domain] = math.Max(0, math.Min(1, sim))
	}
	return out
}

// Domains returns the sorted list of domain ids this model was trained on.
func (m *Model) Domains() []string {
	out := make([]string, 0, len(m.centroids))
	for d := range m.centroids {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// TrainingDocsFromTaxonomy wraps one domain's joined keyword and pattern
// vocabulary as a single TrainingDoc, trimming surrounding whitespace. The
// per-domain text itself is assembled by the caller (pkg/engine joins each
// domain's keywords and patterns, plus its subdomains').
func TrainingDocsFromTaxonomy(domainID string, text string) TrainingDoc {
	return TrainingDoc{DomainID: domainID, Text: strings.TrimSpace(text)}
}
