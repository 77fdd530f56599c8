package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "eventgraph/backend/pkg/errors"
)

var testStart = time.Date(2030, 3, 14, 9, 30, 0, 0, time.UTC)

func TestEventRepository_FindByID(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.find_by_id"] = []*neo4j.Record{eventRecord(3, "Go Night", testStart, "go")}
	repo := NewEventRepository(runner)

	event, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), event.ID)
	assert.Equal(t, []string{"go"}, event.Keywords)
	assert.Equal(t, int64(3), runner.lastCall().params["id"])
}

func TestEventRepository_FindByID_NotFound(t *testing.T) {
	repo := NewEventRepository(newFakeRunner())

	_, err := repo.FindByID(context.Background(), 99)
	require.Error(t, err)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, apperrors.EntityEvent, notFound.Entity)
	assert.Equal(t, "99", notFound.Key)
}

func TestEventRepository_FindAll_EmptyStore(t *testing.T) {
	repo := NewEventRepository(newFakeRunner())

	events, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventRepository_FindAll_DecodeFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.find_all"] = []*neo4j.Record{
		eventRecord(1, "ok", testStart),
		record(colEventID, int64(2)),
	}
	repo := NewEventRepository(runner)

	_, err := repo.FindAll(context.Background())
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDecode))
}

func TestEventRepository_GetFeatured(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.featured"] = []*neo4j.Record{
		eventRecord(1, "a", testStart),
		eventRecord(2, "b", testStart),
	}
	repo := NewEventRepository(runner)

	events, err := repo.GetFeatured(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, int64(FeaturedLimit), runner.lastCall().params["limit"])
}

func TestEventRepository_Add(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.add"] = []*neo4j.Record{eventRecord(11, "Launch", testStart, "space", "rockets")}
	repo := NewEventRepository(runner)

	event, err := repo.Add(context.Background(), EventInput{
		Name:          "Launch",
		StartDatetime: testStart,
		Keywords:      []string{"space", "rockets", "space"},
	})
	require.NoError(t, err)

	want := &Event{ID: 11, Name: "Launch", StartDatetime: testStart, Keywords: []string{"rockets", "space"}}
	if diff := cmp.Diff(want, event); diff != "" {
		t.Errorf("Add mismatch (-want +got):\n%s", diff)
	}

	call := runner.lastCall()
	assert.Equal(t, []string{"space", "rockets"}, call.params["keywords"])
	assert.Equal(t, eventSequence, call.params["sequence"])
	assert.Equal(t, testStart, call.params["start"])
	assert.NotContains(t, call.params, "id")
}

func TestEventRepository_Add_NoRow(t *testing.T) {
	repo := NewEventRepository(newFakeRunner())

	_, err := repo.Add(context.Background(), EventInput{Name: "x", StartDatetime: testStart, Keywords: []string{"k"}})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict))
}

func TestEventRepository_Edit(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.edit"] = []*neo4j.Record{eventRecord(4, "Renamed", testStart, "new")}
	repo := NewEventRepository(runner)

	event, err := repo.Edit(context.Background(), 4, EventInput{Name: "Renamed", StartDatetime: testStart, Keywords: []string{"new"}})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", event.Name)
	assert.Equal(t, []string{"new"}, event.Keywords)
	assert.Equal(t, int64(4), runner.lastCall().params["id"])
}

func TestEventRepository_Edit_NotFound(t *testing.T) {
	repo := NewEventRepository(newFakeRunner())

	_, err := repo.Edit(context.Background(), 4, EventInput{Name: "x", StartDatetime: testStart, Keywords: []string{"k"}})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEventRepository_Remove(t *testing.T) {
	runner := newFakeRunner()
	repo := NewEventRepository(runner)

	err := repo.Remove(context.Background(), 5)
	assert.True(t, apperrors.IsNotFound(err))

	runner.results["event.remove"] = []*neo4j.Record{record("eventId", int64(5))}
	assert.NoError(t, repo.Remove(context.Background(), 5))
}

func TestEventRepository_StoreFailurePropagates(t *testing.T) {
	runner := newFakeRunner()
	cause := errors.New("connection reset")
	runner.errs["event.find_all"] = apperrors.NewStoreFailed("event.find_all", cause)
	repo := NewEventRepository(runner)

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStore))
}

func TestEventRepository_GetEventsByKeywords(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.by_keywords"] = []*neo4j.Record{eventRecord(2, "Both", testStart, "a", "b")}
	repo := NewEventRepository(runner)

	events, err := repo.GetEventsByKeywords(context.Background(), []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, []string{"a", "b"}, runner.lastCall().params["keywords"])
	assert.Contains(t, runner.lastCall().cypher, "all(keyword IN $keywords")
}

func TestEventRepository_GetEventsKeywords(t *testing.T) {
	runner := newFakeRunner()
	runner.results["event.keywords"] = []*neo4j.Record{
		record("keyword", "cloud"),
		record("keyword", "go"),
	}
	repo := NewEventRepository(runner)

	keywords, err := repo.GetEventsKeywords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud", "go"}, keywords)
}

func TestEventInput_Normalize(t *testing.T) {
	in := EventInput{Name: "  Demo  ", Keywords: []string{" go ", "go", ""}}

	out := in.Normalize()
	assert.Equal(t, "Demo", out.Name)
	assert.Equal(t, []string{"go", "go", ""}, out.Keywords)
	assert.Equal(t, []string{"go", ""}, UniqueKeywords(out.Keywords))
	assert.Nil(t, EventInput{}.Normalize().Keywords)
}
