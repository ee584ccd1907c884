// Package orchestrator implements the analysis orchestrator (C9): it
// composes the classifier, retriever, ranker, and feedback memory into the
// engine's two public operations, analyze and submit_feedback.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nyaya-engine/core/internal/classifier"
	"github.com/nyaya-engine/core/internal/constitution"
	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/feedback"
	"github.com/nyaya-engine/core/internal/normalize"
	"github.com/nyaya-engine/core/internal/observability"
	"github.com/nyaya-engine/core/internal/querystore"
	"github.com/nyaya-engine/core/internal/retrieval"
	"github.com/nyaya-engine/core/internal/session"
	"github.com/nyaya-engine/core/internal/taxonomy"
)

// ErrUnknownEvent is returned when submit_feedback references an event id
// that does not exist in the query store.
var ErrUnknownEvent = errors.New("unknown event")

// ErrInvalidFeedback is returned when the signal is not in the accepted
// set; it re-exports the feedback package's sentinel so callers only need
// to import orchestrator.
var ErrInvalidFeedback = feedback.ErrInvalidFeedback

// AlternativeDomain is a runner-up domain classification.
type AlternativeDomain struct {
	DomainID   string
	Confidence float64
}

// AnalysisResult is the orchestrator's response contract (spec.md §4.9).
type AnalysisResult struct {
	EventID             string
	Timestamp           time.Time
	RawQuery            string
	NormalizedQuery     string
	DomainID            string
	DomainDisplay       string
	DomainConfidence    float64
	SubdomainID         string
	SubdomainDisplay    string
	SubdomainConfidence float64
	Sections            retrieval.Sections
	Constitutional      []constitution.Ranked
	Alternatives        []AlternativeDomain
	BaseConfidence      float64
	EffectiveConfidence float64

	// Persisted is false if the query event could not be durably
	// appended; the result itself is still fully computed and returned
	// (spec §7: PersistenceError never fails analyze).
	Persisted bool

	// Degraded reports, per stage ("classifier", "feedback",
	// "persistence"), whether that stage fell back to a trapped failure
	// path instead of completing normally (spec.md §7). A stage absent
	// from the map completed normally.
	Degraded map[string]bool

	// Partial is true if the caller-supplied deadline expired before every
	// stage completed; whichever stages had already run are still
	// returned, and the event is still appended (spec.md §5).
	Partial bool
}

// Engine owns every loaded component (C1-C8) and is the single construction
// point for the analysis pipeline; C9 and C10 operate on it.
type Engine struct {
	corpusStore *corpus.Store
	tree        *taxonomy.Tree
	domainClf   *classifier.DomainClassifier
	subdomainClf *classifier.SubdomainClassifier
	retriever   *retrieval.SectionRetriever
	ranker      *constitution.Ranker
	feedback    *feedback.Store
	events      *querystore.Store
	sessions    *session.Manager
	cache       *retrieval.ResponseCache
	logger      *observability.Logger
}

// New constructs an Engine from its already-loaded components. Callers
// (pkg/engine) are responsible for loading the corpus, taxonomy, and model
// before calling New.
func New(
	corpusStore *corpus.Store,
	tree *taxonomy.Tree,
	domainClf *classifier.DomainClassifier,
	subdomainClf *classifier.SubdomainClassifier,
	feedbackStore *feedback.Store,
	eventStore *querystore.Store,
	responseCache *retrieval.ResponseCache,
	logger *observability.Logger,
) *Engine {
	return &Engine{
		corpusStore:  corpusStore,
		tree:         tree,
		domainClf:    domainClf,
		subdomainClf: subdomainClf,
		retriever:    retrieval.NewSectionRetriever(corpusStore, tree),
		ranker:       constitution.NewRanker(corpusStore),
		feedback:     feedbackStore,
		events:       eventStore,
		sessions:     session.NewManager(),
		cache:        responseCache,
		logger:       logger,
	}
}

// Analyze runs the full C9 pipeline for a single query. ctx is optional
// (context.Background() is fine); if it carries a deadline that expires
// mid-pipeline, Analyze stops running further stages, marks the result
// Partial, and still appends the query event (spec.md §5).
func (e *Engine) Analyze(ctx context.Context, sessionID, rawQuery string) (AnalysisResult, error) {
	if rawQuery == "" {
		return AnalysisResult{}, fmt.Errorf("raw_query must not be empty")
	}

	normalizedQuery := normalize.Query(rawQuery)
	if normalizedQuery == "" {
		return AnalysisResult{}, fmt.Errorf("query has no matchable content after normalization")
	}

	degraded := make(map[string]bool)
	var partial bool
	eventID := uuid.NewString()

	domainResult, rule := e.domainClf.Classify(normalizedQuery)
	if domainResult.Degraded {
		degraded["classifier"] = true
	}

	var eventLogger *observability.Logger
	if e.logger != nil {
		eventLogger = e.logger.WithEventID(eventID).WithDomain(domainResult.DomainID, "")
	}

	var subdomainResult classifier.SubdomainResult
	var sections retrieval.Sections
	var ranked []constitution.Ranked
	var delta float64

	if ctxExpired(ctx) {
		partial = true
	} else {
		subdomainResult = e.subdomainClf.Classify(domainResult.DomainID, normalizedQuery, rule)
	}

	if ctxExpired(ctx) {
		partial = true
	} else {
		sections = e.retrieveSections(ctx, domainResult.DomainID, subdomainResult.SubdomainID, normalizedQuery)
	}

	if ctxExpired(ctx) {
		partial = true
	} else {
		ranked = e.ranker.Rank(domainResult.DomainID, normalizedQuery)
	}

	if ctxExpired(ctx) {
		partial = true
	} else {
		var err error
		delta, err = e.feedback.Lookup(normalizedQuery, domainResult.DomainID, subdomainResult.SubdomainID)
		if err != nil {
			degraded["feedback"] = true
			if eventLogger != nil {
				eventLogger.Warn().Err(err).Msg("feedback lookup failed, treating as zero delta")
			}
		}
	}

	effective := clamp(domainResult.BaseConfidence+delta, 0, 1)

	alts := make([]AlternativeDomain, len(domainResult.Alternatives))
	for i, a := range domainResult.Alternatives {
		alts[i] = AlternativeDomain{DomainID: a.DomainID, Confidence: a.Confidence}
	}

	result := AnalysisResult{
		EventID:             eventID,
		Timestamp:           now(),
		RawQuery:            rawQuery,
		NormalizedQuery:     normalizedQuery,
		DomainID:            domainResult.DomainID,
		DomainDisplay:       e.tree.Display(domainResult.DomainID),
		DomainConfidence:    domainResult.BaseConfidence,
		SubdomainID:         subdomainResult.SubdomainID,
		SubdomainDisplay:    e.tree.SubdomainDisplay(domainResult.DomainID, subdomainResult.SubdomainID),
		SubdomainConfidence: subdomainResult.Confidence,
		Sections:            sections,
		Constitutional:      ranked,
		Alternatives:        alts,
		BaseConfidence:      domainResult.BaseConfidence,
		EffectiveConfidence: effective,
		Persisted:           true,
		Degraded:            degraded,
		Partial:             partial,
	}

	if err := e.events.Append(toEvent(sessionID, result)); err != nil {
		result.Persisted = false
		degraded["persistence"] = true
		if eventLogger != nil {
			eventLogger.Error().Err(err).Msg("failed to persist query event")
		}
	}

	e.sessions.Get(sessionID).RecordEvent(result.EventID)

	return result, nil
}

// ctxExpired reports whether ctx has already been cancelled or its
// deadline has already passed, without blocking.
func ctxExpired(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (e *Engine) retrieveSections(ctx context.Context, domainID, subdomainID, normalizedQuery string) retrieval.Sections {
	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, domainID, subdomainID, normalizedQuery); ok {
			return cached
		}
	}

	sections := e.retriever.Retrieve(domainID, subdomainID, normalizedQuery)

	if e.cache != nil {
		_ = e.cache.Set(ctx, domainID, subdomainID, normalizedQuery, sections)
	}

	return sections
}

// FeedbackOutcome is the result of submit_feedback.
type FeedbackOutcome struct {
	NewEffectiveConfidence float64
}

// SubmitFeedback resolves eventID from the query store, records the signal
// in feedback memory, and appends a new QueryEvent representing the
// feedback application (the original event is never mutated).
func (e *Engine) SubmitFeedback(sessionID, eventID string, signal feedback.Signal) (FeedbackOutcome, error) {
	events, err := e.events.List(sessionID, 0, 0)
	if err != nil {
		return FeedbackOutcome{}, fmt.Errorf("resolve event: %w", err)
	}

	var resolved *querystore.Event
	for i := range events {
		if events[i].EventID == eventID {
			resolved = &events[i]
			break
		}
	}
	if resolved == nil {
		// session-scoped lookup missed; fall back to a global search so
		// feedback can target any event the caller learned about, not
		// only ones from this session's own history.
		total, err := e.events.Count()
		if err != nil {
			return FeedbackOutcome{}, fmt.Errorf("resolve event: %w", err)
		}
		all, err := e.events.List("", total, 0)
		if err != nil {
			return FeedbackOutcome{}, fmt.Errorf("resolve event: %w", err)
		}
		for i := range all {
			if all[i].EventID == eventID {
				resolved = &all[i]
				break
			}
		}
	}
	if resolved == nil {
		return FeedbackOutcome{}, ErrUnknownEvent
	}

	if signal != feedback.SignalPositive && signal != feedback.SignalNegative {
		return FeedbackOutcome{}, feedback.ErrInvalidFeedback
	}

	rec, err := e.feedback.Record(eventID, resolved.NormalizedQuery, resolved.DomainID, resolved.SubdomainID, signal)
	if err != nil {
		return FeedbackOutcome{}, fmt.Errorf("record feedback: %w", err)
	}

	newEffective := clamp(resolved.BaseConfidence+rec.CumulativeDelta, 0, 1)

	feedbackEvent := *resolved
	feedbackEvent.EventID = uuid.NewString()
	feedbackEvent.Timestamp = now()
	feedbackEvent.EffectiveConfidence = newEffective
	if err := e.events.Append(feedbackEvent); err != nil && e.logger != nil {
		e.logger.Error().Err(err).Msg("failed to append feedback event")
	}

	e.sessions.Get(sessionID).RecordEvent(feedbackEvent.EventID)

	return FeedbackOutcome{NewEffectiveConfidence: newEffective}, nil
}

// Stats reports corpus sizes and total recorded events (the stats()
// boundary operation, spec.md §6).
type Stats struct {
	corpus.Stats
	TotalEvents int
}

// Stats returns the current corpus and event-log statistics.
func (e *Engine) Stats() (Stats, error) {
	n, err := e.events.Count()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Stats: e.corpusStore.Stats(), TotalEvents: n}, nil
}

// ListHistory exposes the query store's history listing.
func (e *Engine) ListHistory(sessionID string, limit, offset int) ([]querystore.Event, error) {
	return e.events.List(sessionID, limit, offset)
}

// SearchHistory exposes the query store's substring search.
func (e *Engine) SearchHistory(substring string) ([]querystore.Event, error) {
	return e.events.Search(substring)
}

func toEvent(sessionID string, r AnalysisResult) querystore.Event {
	sectionIDs := make([]string, 0, len(r.Sections.BNS)+len(r.Sections.IPC)+len(r.Sections.CrPC))
	for _, s := range r.Sections.BNS {
		sectionIDs = append(sectionIDs, "BNS:"+s.Number)
	}
	for _, s := range r.Sections.IPC {
		sectionIDs = append(sectionIDs, "IPC:"+s.Number)
	}
	for _, s := range r.Sections.CrPC {
		sectionIDs = append(sectionIDs, "CrPC:"+s.Number)
	}

	articleNumbers := make([]string, 0, len(r.Constitutional))
	for _, c := range r.Constitutional {
		articleNumbers = append(articleNumbers, c.Article.Number)
	}

	return querystore.Event{
		EventID:                 r.EventID,
		SessionID:               sessionID,
		Timestamp:               r.Timestamp,
		RawQuery:                r.RawQuery,
		NormalizedQuery:         r.NormalizedQuery,
		DomainID:                r.DomainID,
		DomainDisplay:           r.DomainDisplay,
		SubdomainID:             r.SubdomainID,
		BaseConfidence:          r.BaseConfidence,
		EffectiveConfidence:     r.EffectiveConfidence,
		RetrievedSectionIDs:     sectionIDs,
		RetrievedArticleNumbers: articleNumbers,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// now is indirected so event timestamps stay deterministic and testable
// without reaching into package internals.
var now = time.Now
