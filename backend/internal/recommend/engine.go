// Package recommend suggests upcoming events whose keyword sets resemble the
// events a user is already registered to.
package recommend

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/metrics"
	"eventgraph/backend/pkg/logger"
)

// DefaultThreshold is the similarity a candidate must strictly exceed
const DefaultThreshold = 0.5

// Recommendation is a candidate event with the best similarity it reached
// against any of the user's registered events.
type Recommendation struct {
	Event graph.Event `json:"event"`
	Score float64     `json:"score"`
}

// PoolReader loads the registered and upcoming events for a user in one snapshot
type PoolReader interface {
	FindRecommendationPool(ctx context.Context, name string, now time.Time) ([]graph.PoolEvent, error)
}

// Engine ranks upcoming events by keyword similarity
type Engine struct {
	pool      PoolReader
	now       func() time.Time
	threshold float64
	logger    *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithThreshold overrides DefaultThreshold
func WithThreshold(threshold float64) Option {
	return func(e *Engine) { e.threshold = threshold }
}

// NewEngine creates a recommendation engine reading from pool
func NewEngine(pool PoolReader, opts ...Option) *Engine {
	e := &Engine{
		pool:      pool,
		now:       time.Now,
		threshold: DefaultThreshold,
		logger:    logger.Named("recommend"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend returns the upcoming events similar to what the user attends.
// The user is assumed to exist; callers check that first.
func (e *Engine) Recommend(ctx context.Context, name string) ([]Recommendation, error) {
	now := e.now()
	pool, err := e.pool.FindRecommendationPool(ctx, name, now)
	if err != nil {
		return nil, err
	}

	recs := Rank(pool, now, e.threshold)
	metrics.RecordRecommendations(len(recs))

	e.logger.Debug("Recommendations computed",
		zap.String("user", name),
		zap.Int("pool", len(pool)),
		zap.Int("returned", len(recs)),
	)
	return recs, nil
}

// Rank scores every upcoming, unregistered event in pool against every
// registered one. A candidate is kept once, with its best score, when that
// score is strictly above threshold. Results are ordered by score
// descending, then by id.
func Rank(pool []graph.PoolEvent, now time.Time, threshold float64) []Recommendation {
	var registered, candidates []graph.Event
	for _, p := range pool {
		switch {
		case p.Registered:
			registered = append(registered, p.Event)
		case p.StartDatetime.After(now):
			candidates = append(candidates, p.Event)
		}
	}

	recs := make([]Recommendation, 0)
	for _, c := range candidates {
		best := 0.0
		for _, r := range registered {
			if score := Jaccard(r.Keywords, c.Keywords); score > best {
				best = score
			}
		}
		if best > threshold {
			recs = append(recs, Recommendation{Event: c, Score: best})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Event.ID < recs[j].Event.ID
	})
	return recs
}

// Jaccard computes |a ∩ b| / |a ∪ b| over the distinct elements of a and b.
// Two empty sets have similarity 0.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
