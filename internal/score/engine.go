package score

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reposcore/reposcore/internal/ghclient"
	"github.com/reposcore/reposcore/internal/log"
	"github.com/reposcore/reposcore/internal/model"
	"github.com/reposcore/reposcore/internal/repourl"
)

// defaultWorkers bounds concurrent classification calls so a large
// engaged-user set doesn't burn through the API quota all at once.
const defaultWorkers = 10

// CollectFunc is notified when one relation's collection completes.
type CollectFunc func(kind model.RelationKind, count int)

// ClassifyFunc is notified as classification of the engaged set proceeds.
type ClassifyFunc func(completed, total int)

// Engine orchestrates one scoring run: collect the union of engaged
// users across the three relations, classify each, and compute the two
// rates. The engine owns all intermediate sets; nothing is retained
// between runs.
type Engine struct {
	fetcher ghclient.Fetcher
	rule    Rule
	workers int

	onCollect  CollectFunc
	onClassify ClassifyFunc
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithRule sets the significance rule.
func WithRule(rule Rule) Option {
	return func(e *Engine) {
		e.rule = rule
	}
}

// WithWorkers sets the classification worker pool size.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithCollectProgress registers a relation-collection callback.
func WithCollectProgress(fn CollectFunc) Option {
	return func(e *Engine) {
		e.onCollect = fn
	}
}

// WithClassifyProgress registers a classification progress callback.
func WithClassifyProgress(fn ClassifyFunc) Option {
	return func(e *Engine) {
		e.onClassify = fn
	}
}

// NewEngine creates a scoring engine backed by the given fetcher.
func NewEngine(fetcher ghclient.Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher: fetcher,
		rule:    DefaultRule(),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score runs the full pipeline for one repository address.
//
// Address parsing fails fast with repourl.ErrInvalidAddress. Everything
// after that is fail-soft: transport failures degrade to partial or
// empty data and the worst outcome is an undercount in the rates. If
// ctx is cancelled mid-run the result built from whatever was collected
// so far is returned together with the context error.
func (e *Engine) Score(ctx context.Context, address string) (*model.ScoreResult, error) {
	repo, err := repourl.Parse(address)
	if err != nil {
		return nil, err
	}

	counts := e.fetcher.RepoCounts(ctx, repo)

	engaged, err := e.collectEngaged(ctx, repo)
	if err != nil {
		// Cancelled: score what we have and surface the context error.
		result := e.tally(ctx, repo, counts, engaged)
		return result, err
	}

	log.Info("collected engaged users", "repo", repo.FullName(), "total", len(engaged))

	result := e.tally(ctx, repo, counts, engaged)
	return result, ctx.Err()
}

// collectEngaged collects the three relations concurrently and unions
// them. Set union is commutative, so the result is independent of
// collection order. Partial sets from a cancelled run are still unioned.
func (e *Engine) collectEngaged(ctx context.Context, repo model.Repository) (map[string]struct{}, error) {
	var mu sync.Mutex
	sets := make(map[model.RelationKind]map[string]struct{}, len(model.AllRelationKinds))

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range model.AllRelationKinds {
		kind := kind
		g.Go(func() error {
			logins, err := e.fetcher.CollectRelation(gctx, kind, repo)
			mu.Lock()
			sets[kind] = logins
			mu.Unlock()
			log.Debug("relation collected", "relation", kind, "count", len(logins))
			if e.onCollect != nil {
				e.onCollect(kind, len(logins))
			}
			return err
		})
	}
	err := g.Wait()

	engaged := make(map[string]struct{})
	for _, logins := range sets {
		for login := range logins {
			engaged[login] = struct{}{}
		}
	}
	return engaged, err
}

// tally classifies every engaged user with a bounded worker pool and
// reduces the results into a ScoreResult. Classification calls are
// independent; the reduction happens on a single results channel so no
// ordering is assumed.
func (e *Engine) tally(ctx context.Context, repo model.Repository, counts model.RepoCounts, engaged map[string]struct{}) *model.ScoreResult {
	total := len(engaged)

	sem := make(chan struct{}, e.workers)
	results := make(chan model.Classification, total)
	var wg sync.WaitGroup

	for login := range engaged {
		wg.Add(1)
		go func(login string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}: // Acquire
			}
			defer func() { <-sem }() // Release

			profile := e.fetcher.UserProfile(ctx, login)
			class := e.rule.Classify(profile)
			log.Trace("classified user", "login", login, "classification", class.String())
			results <- class
		}(login)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var significant, org, completed int
	for class := range results {
		completed++
		if class.Significant() {
			significant++
		}
		if class == model.SignificantOrg {
			org++
		}
		if e.onClassify != nil {
			e.onClassify(completed, total)
		}
	}

	result := &model.ScoreResult{
		Repository:       repo,
		Counts:           counts,
		TotalEngaged:     total,
		SignificantCount: significant,
		OrgCount:         org,
	}
	// Rates are defined as exactly 0 for an empty engaged set.
	if total > 0 {
		result.PowerUserRate = float64(significant) / float64(total)
		result.OrgUserRate = float64(org) / float64(total)
	}
	return result
}
