package collect

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/model"
	"github.com/cirf-research/cirf-cli/internal/scorer"
	"github.com/cirf-research/cirf-cli/internal/store"
)

// abstractLimit caps page-extracted text stored as a document abstract.
const abstractLimit = 2000

// CollectStats summarizes one collection run.
type CollectStats struct {
	RunID     string `json:"run_id"`
	Queries   int    `json:"queries"`
	Collected int    `json:"collected"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	TotalInDB int    `json:"total_in_db"`
}

// Collector drives a collection run: generate queries, fan them out over the
// sources with bounded concurrency, score every new document, and upsert it.
// Source and document failures are logged and counted but never abort the
// run; only store migration or context cancellation can.
type Collector struct {
	store     store.Store
	processor *scorer.Processor
	client    *Client
	sources   []Source
	cfg       config.CollectConfig

	mu        sync.Mutex
	seenTitle map[string]struct{}
}

// NewCollector wires a collection run over the given sources.
func NewCollector(st store.Store, p *scorer.Processor, client *Client, sources []Source, cfg config.CollectConfig) *Collector {
	return &Collector{
		store:     st,
		processor: p,
		client:    client,
		sources:   sources,
		cfg:       cfg,
		seenTitle: make(map[string]struct{}),
	}
}

// Run executes a full collection pass. maxQueries overrides the configured
// query cap when positive. Every query is logged to the search log under one
// run ID, whether it succeeded or not.
func (c *Collector) Run(ctx context.Context, maxQueries int) (*CollectStats, error) {
	if len(c.sources) == 0 {
		return nil, eris.New("collect: no sources configured")
	}

	runID := uuid.NewString()
	queries := GenerateQueries(c.cfg)
	limit := c.cfg.MaxQueries
	if maxQueries > 0 {
		limit = maxQueries
	}
	if limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}

	stats := &CollectStats{RunID: runID, Queries: len(queries)}
	zap.L().Info("collect: starting run",
		zap.String("run_id", runID),
		zap.Int("queries", len(queries)),
		zap.Int("sources", len(c.sources)),
	)

	concurrency := c.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, query := range queries {
		g.Go(func() error {
			for _, src := range c.sources {
				c.runQuery(gctx, runID, src, query, stats)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return stats, eris.Wrap(err, "collect: run aborted")
	}

	if dbStats, err := c.store.Stats(ctx); err == nil {
		stats.TotalInDB = dbStats.TotalCases
	}

	zap.L().Info("collect: run finished",
		zap.String("run_id", runID),
		zap.Int("collected", stats.Collected),
		zap.Int("processed", stats.Processed),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// runQuery searches one source for one query, logs the outcome, and ingests
// every unseen document.
func (c *Collector) runQuery(ctx context.Context, runID string, src Source, query string, stats *CollectStats) {
	docs, err := src.Search(ctx, query, c.cfg.MaxResultsPerQuery)

	entry := model.SearchLogEntry{
		RunID:        runID,
		SearchTerm:   query,
		Source:       src.Name(),
		Timestamp:    time.Now().UTC(),
		ResultsFound: len(docs),
		Status:       model.SearchStatusSuccess,
	}
	if err != nil {
		entry.Status = model.SearchStatusFailed
		c.count(stats, func(s *CollectStats) { s.Failed++ })
		zap.L().Warn("collect: search failed",
			zap.String("source", src.Name()),
			zap.String("query", query),
			zap.Error(err),
		)
	}
	if logErr := c.store.LogSearch(ctx, &entry); logErr != nil {
		zap.L().Warn("collect: search log write failed", zap.Error(logErr))
	}

	for _, doc := range docs {
		if !c.markSeen(doc) {
			continue
		}
		c.count(stats, func(s *CollectStats) { s.Collected++ })
		c.ingest(ctx, doc, stats)
	}
}

// markSeen records the (title, url) pair and reports whether it was new.
// Title matching is case-insensitive so the same paper from two sources
// collapses to one case.
func (c *Collector) markSeen(doc model.Document) bool {
	key := strings.ToLower(strings.TrimSpace(doc.Title)) + "|" + doc.URL
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seenTitle[key]; dup {
		return false
	}
	c.seenTitle[key] = struct{}{}
	return true
}

// ingest scores one document and upserts the resulting case. Documents with
// no abstract get one extracted from their page when possible; extraction
// failure just leaves the abstract empty.
func (c *Collector) ingest(ctx context.Context, doc model.Document, stats *CollectStats) {
	if strings.TrimSpace(doc.Title) == "" {
		c.count(stats, func(s *CollectStats) { s.Failed++ })
		return
	}

	if doc.Abstract == "" && doc.URL != "" && c.client != nil {
		text, err := c.client.PageText(ctx, doc.URL)
		if err != nil {
			zap.L().Debug("collect: page text extraction failed",
				zap.String("url", doc.URL),
				zap.Error(err),
			)
		} else {
			doc.Abstract = Truncate(text, abstractLimit)
		}
	}

	fc := c.processor.Process(doc)
	if _, err := c.store.UpsertCase(ctx, &fc); err != nil {
		c.count(stats, func(s *CollectStats) { s.Failed++ })
		zap.L().Warn("collect: upsert failed",
			zap.String("title", doc.Title),
			zap.Error(err),
		)
		return
	}
	c.count(stats, func(s *CollectStats) { s.Processed++ })
}

// count applies a stats mutation under the collector lock.
func (c *Collector) count(stats *CollectStats, f func(*CollectStats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(stats)
}
