package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgraph/backend/internal/graph"
)

var now = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

type fakePool struct {
	pool    []graph.PoolEvent
	err     error
	gotName string
	gotNow  time.Time
}

func (f *fakePool) FindRecommendationPool(_ context.Context, name string, at time.Time) ([]graph.PoolEvent, error) {
	f.gotName = name
	f.gotNow = at
	return f.pool, f.err
}

func poolEvent(id int64, start time.Time, registered bool, keywords ...string) graph.PoolEvent {
	return graph.PoolEvent{
		Event:      graph.Event{ID: id, Name: "event", StartDatetime: start, Keywords: keywords},
		Registered: registered,
	}
}

func ids(recs []Recommendation) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Event.ID)
	}
	return out
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"two of three", []string{"a", "b"}, []string{"a", "b", "c"}, 2.0 / 3.0},
		{"half", []string{"a", "b"}, []string{"a"}, 0.5},
		{"duplicates ignored", []string{"a", "a", "b"}, []string{"a", "b", "b"}, 1},
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRank_StrictThreshold(t *testing.T) {
	pool := []graph.PoolEvent{
		poolEvent(1, now.Add(-time.Hour), true, "a", "b"),
		poolEvent(2, now.Add(time.Hour), false, "a", "b", "c"),
		poolEvent(3, now.Add(time.Hour), false, "a"),
	}

	recs := Rank(pool, now, DefaultThreshold)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(2), recs[0].Event.ID)
	assert.InDelta(t, 2.0/3.0, recs[0].Score, 1e-9)
}

func TestRank_ExcludesRegisteredAndPast(t *testing.T) {
	pool := []graph.PoolEvent{
		poolEvent(1, now.Add(time.Hour), true, "a", "b"),
		poolEvent(2, now.Add(-time.Minute), false, "a", "b"),
		poolEvent(3, now, false, "a", "b"),
		poolEvent(4, now.Add(time.Minute), false, "a", "b"),
	}

	assert.Equal(t, []int64{4}, ids(Rank(pool, now, DefaultThreshold)))
}

func TestRank_DeduplicatesAndKeepsBestScore(t *testing.T) {
	pool := []graph.PoolEvent{
		poolEvent(1, now.Add(-time.Hour), true, "a", "b", "c"),
		poolEvent(2, now.Add(-time.Hour), true, "x", "y"),
		poolEvent(3, now.Add(time.Hour), false, "x", "y", "a"),
	}

	recs := Rank(pool, now, 0.3)
	require.Len(t, recs, 1)
	assert.InDelta(t, 2.0/3.0, recs[0].Score, 1e-9)
}

func TestRank_OrdersByScoreThenID(t *testing.T) {
	pool := []graph.PoolEvent{
		poolEvent(1, now.Add(-time.Hour), true, "a", "b", "c", "d"),
		poolEvent(9, now.Add(time.Hour), false, "a", "b", "c"),
		poolEvent(5, now.Add(time.Hour), false, "a", "b", "c", "d"),
		poolEvent(7, now.Add(time.Hour), false, "b", "c", "d"),
	}

	assert.Equal(t, []int64{5, 7, 9}, ids(Rank(pool, now, DefaultThreshold)))
}

func TestRank_EmptyWhenNothingRegistered(t *testing.T) {
	pool := []graph.PoolEvent{poolEvent(2, now.Add(time.Hour), false, "a")}

	recs := Rank(pool, now, DefaultThreshold)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestEngine_Recommend(t *testing.T) {
	pool := &fakePool{pool: []graph.PoolEvent{
		poolEvent(1, now.Add(-time.Hour), true, "a", "b"),
		poolEvent(2, now.Add(time.Hour), false, "a", "b", "c"),
	}}
	engine := NewEngine(pool, WithClock(func() time.Time { return now }))

	recs, err := engine.Recommend(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(recs))
	assert.Equal(t, "ada", pool.gotName)
	assert.Equal(t, now, pool.gotNow)
}

func TestEngine_RecommendPropagatesErrors(t *testing.T) {
	cause := errors.New("boom")
	engine := NewEngine(&fakePool{err: cause})

	_, err := engine.Recommend(context.Background(), "ada")
	assert.ErrorIs(t, err, cause)
}
