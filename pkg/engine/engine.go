// Package engine is the public construction boundary for the legal query
// analysis engine: it loads configuration, wires the corpus, taxonomy,
// classifier, retriever, ranker, feedback memory, and event log into an
// orchestrator.Engine, and exposes the spec's five public operations
// (analyze, submit_feedback, list_history, search_history, stats) plus
// lifecycle management.
package engine

import (
	"fmt"
	"strings"

	"github.com/nyaya-engine/core/internal/cache"
	"github.com/nyaya-engine/core/internal/classifier"
	"github.com/nyaya-engine/core/internal/config"
	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/feedback"
	"github.com/nyaya-engine/core/internal/observability"
	"github.com/nyaya-engine/core/internal/orchestrator"
	"github.com/nyaya-engine/core/internal/querystore"
	"github.com/nyaya-engine/core/internal/retrieval"
	"github.com/nyaya-engine/core/internal/taxonomy"
)

// Engine is the top-level handle returned by New; it owns the orchestrator
// plus every resource (database handles, cache client) that must be closed
// on shutdown.
type Engine struct {
	*orchestrator.Engine

	cacheClient cache.Client
	feedback    *feedback.Store
	events      *querystore.Store
	logger      *observability.Logger
}

// New loads every component named in cfg and wires them into a ready
// Engine. Callers own the returned Engine and must call Close when done.
func New(cfg *config.Config) (*Engine, error) {
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "nyaya-engine",
	})

	corpusStore, err := loadCorpus(cfg.Corpus)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	tree := taxonomy.SampleTree()

	var model *classifier.Model
	if cfg.Classifier.EnableClassifier {
		model, err = classifier.NewModel(trainingDocsFromTaxonomy(tree))
		if err != nil {
			// Degrade to taxonomy-only scoring rather than fail
			// construction (spec §4.3).
			logger.Warn().Err(err).Msg("classifier model failed to load, degrading to taxonomy-only scoring")
			model = nil
		}
	}

	weights := classifier.Weights{
		ML:               cfg.Classifier.MLWeight,
		Similarity:       cfg.Classifier.SimilarityWeight,
		Taxonomy:         cfg.Classifier.TaxonomyWeight,
		UnknownThreshold: cfg.Classifier.UnknownThreshold,
		EnableClassifier: cfg.Classifier.EnableClassifier,
	}
	domainClf := classifier.NewDomainClassifier(tree, model, weights)
	subdomainClf := classifier.NewSubdomainClassifier(tree)

	fbStore, err := feedback.NewStoreWithDriver(config.DatabaseDriverSQLite, cfg.Feedback.DBPath, feedback.Params{
		PositiveStep: cfg.Feedback.PositiveStep,
		NegativeStep: cfg.Feedback.NegativeStep,
		DeltaCeiling: cfg.Feedback.DeltaCeiling,
		DeltaFloor:   cfg.Feedback.DeltaFloor,
	})
	if err != nil {
		return nil, fmt.Errorf("open feedback store: %w", err)
	}

	evStore, err := querystore.NewStore(cfg.QueryStore.DBPath)
	if err != nil {
		fbStore.Close()
		return nil, fmt.Errorf("open query store: %w", err)
	}

	cacheClient, err := loadCache(cfg.Cache)
	if err != nil {
		fbStore.Close()
		evStore.Close()
		return nil, fmt.Errorf("init cache client: %w", err)
	}

	responseCache := retrieval.NewResponseCache(cacheClient, logger, retrieval.ResponseCacheConfig{
		TTL:       cfg.Cache.TTL,
		KeyPrefix: "retrieval:sections:",
		Enabled:   true,
	})

	eng := orchestrator.New(corpusStore, tree, domainClf, subdomainClf, fbStore, evStore, responseCache, logger)

	return &Engine{
		Engine:      eng,
		cacheClient: cacheClient,
		feedback:    fbStore,
		events:      evStore,
		logger:      logger,
	}, nil
}

// Close releases every resource opened by New: the feedback and event
// stores' database handles and the cache client's connection.
func (e *Engine) Close() error {
	var errs []string
	if err := e.feedback.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := e.events.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if e.cacheClient != nil {
		if err := e.cacheClient.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("engine close: %s", strings.Join(errs, "; "))
	}
	return nil
}

func loadCorpus(cfg config.CorpusConfig) (*corpus.Store, error) {
	switch cfg.Driver {
	case "file":
		return nil, fmt.Errorf("file-driven corpus loading at %q is not yet implemented; use driver=embedded", cfg.Path)
	default:
		return corpus.NewStore(corpus.SampleSections(), corpus.SampleArticles())
	}
}

func loadCache(cfg config.CacheConfig) (cache.Client, error) {
	switch cfg.Driver {
	case "redis":
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Prefix:   "nyaya:",
		})
	default:
		return cache.NewMemoryClient(10000), nil
	}
}

// trainingDocsFromTaxonomy builds the classifier's training set from the
// taxonomy's own keyword and pattern vocabulary, since no external labeled
// corpus ships with the engine: each domain's keywords/patterns (and its
// subdomains') become one synthetic training document for that domain.
func trainingDocsFromTaxonomy(tree *taxonomy.Tree) []classifier.TrainingDoc {
	var docs []classifier.TrainingDoc
	for _, d := range tree.Domains {
		terms := append([]string{}, d.Keywords...)
		terms = append(terms, d.Patterns...)
		for _, sd := range d.Subdomains {
			terms = append(terms, sd.Keywords...)
			terms = append(terms, sd.Patterns...)
		}
		if len(terms) == 0 {
			continue
		}
		docs = append(docs, classifier.TrainingDocsFromTaxonomy(d.ID, strings.Join(terms, " ")))
	}
	return docs
}
