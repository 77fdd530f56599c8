package graph

import (
	"context"

	"go.uber.org/zap"

	apperrors "eventgraph/backend/pkg/errors"
	"eventgraph/backend/pkg/logger"
)

// FeaturedLimit is how many events the featured listing returns
const FeaturedLimit = 3

const eventSequence = "Event"

// eventProjection closes every query that yields one row per event.
// collect() skips the null produced by an event without keywords.
const eventProjection = `
	RETURN e.id AS eventId,
	       e.name AS eventName,
	       e.startDatetime AS start,
	       collect(DISTINCT k.name) AS keywords`

// EventRepository reads and writes Event nodes and their HAS edges
type EventRepository struct {
	runner Runner
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(runner Runner) *EventRepository {
	return &EventRepository{
		runner: runner,
		logger: logger.Named("event_repository"),
	}
}

// FindByID returns a single event with its keywords
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*Event, error) {
	query := `
		MATCH (e:Event {id: $id})
		OPTIONAL MATCH (e)-[:HAS]->(k:EventKeyword)` + eventProjection

	records, err := r.runner.Execute(ctx, "event.find_by_id", query, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewEventNotFound(id)
	}

	event, err := decodeEvent(records[0])
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindAll returns every event ordered by id
func (r *EventRepository) FindAll(ctx context.Context) ([]Event, error) {
	query := `
		MATCH (e:Event)
		OPTIONAL MATCH (e)-[:HAS]->(k:EventKeyword)` + eventProjection + `
		ORDER BY eventId`

	records, err := r.runner.Execute(ctx, "event.find_all", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

// GetFeatured returns the first few events in store order. No ranking is applied.
func (r *EventRepository) GetFeatured(ctx context.Context) ([]Event, error) {
	query := `
		MATCH (e:Event)
		WITH e LIMIT $limit
		OPTIONAL MATCH (e)-[:HAS]->(k:EventKeyword)` + eventProjection

	records, err := r.runner.Execute(ctx, "event.featured", query, map[string]any{"limit": int64(FeaturedLimit)})
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

// Add creates an event and links it to its keywords, creating missing
// keyword nodes. The id comes from a Sequence node that is write-locked for
// the duration of the statement, so concurrent creates never share an id
// and ids of deleted events are not reused.
func (r *EventRepository) Add(ctx context.Context, input EventInput) (*Event, error) {
	query := `
		MERGE (seq:Sequence {name: $sequence})
		ON CREATE SET seq.current = 0
		SET seq._lock = true
		WITH seq
		OPTIONAL MATCH (existing:Event)
		WITH seq, coalesce(max(existing.id), 0) AS highest
		SET seq.current = CASE WHEN seq.current > highest THEN seq.current ELSE highest END + 1
		REMOVE seq._lock
		CREATE (e:Event {id: seq.current, name: $name, startDatetime: $start})
		WITH e
		UNWIND $keywords AS keyword
		MERGE (k:EventKeyword {name: keyword})
		MERGE (e)-[:HAS]->(k)` + eventProjection

	params := map[string]any{
		"sequence": eventSequence,
		"name":     input.Name,
		"start":    input.StartDatetime,
		"keywords": UniqueKeywords(input.Keywords),
	}

	records, err := r.runner.Execute(ctx, "event.add", query, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewConflict(apperrors.EntityEvent, "cannot create event", nil)
	}

	event, err := decodeEvent(records[0])
	if err != nil {
		return nil, err
	}

	r.logger.Info("Event created",
		zap.Int64("id", event.ID),
		zap.Int("keywords", len(event.Keywords)),
	)
	return &event, nil
}

// Edit overwrites name, start and keyword set in one statement. The old HAS
// edges are removed before the new ones are merged so no reader ever sees a
// mix of old and new keywords.
func (r *EventRepository) Edit(ctx context.Context, id int64, input EventInput) (*Event, error) {
	query := `
		MATCH (e:Event {id: $id})
		SET e.name = $name, e.startDatetime = $start
		WITH e
		OPTIONAL MATCH (e)-[old:HAS]->(:EventKeyword)
		DELETE old
		WITH DISTINCT e
		UNWIND $keywords AS keyword
		MERGE (k:EventKeyword {name: keyword})
		MERGE (e)-[:HAS]->(k)` + eventProjection

	params := map[string]any{
		"id":       id,
		"name":     input.Name,
		"start":    input.StartDatetime,
		"keywords": UniqueKeywords(input.Keywords),
	}

	records, err := r.runner.Execute(ctx, "event.edit", query, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewEventNotFound(id)
	}

	event, err := decodeEvent(records[0])
	if err != nil {
		return nil, err
	}

	r.logger.Info("Event updated", zap.Int64("id", id))
	return &event, nil
}

// Remove deletes an event together with all of its edges. Keyword nodes are kept.
func (r *EventRepository) Remove(ctx context.Context, id int64) error {
	query := `
		MATCH (e:Event {id: $id})
		WITH e, e.id AS eventId
		DETACH DELETE e
		RETURN eventId`

	records, err := r.runner.Execute(ctx, "event.remove", query, map[string]any{"id": id})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return apperrors.NewEventNotFound(id)
	}

	r.logger.Info("Event removed", zap.Int64("id", id))
	return nil
}

// GetEventsByKeywords returns events carrying every one of the given keywords
func (r *EventRepository) GetEventsByKeywords(ctx context.Context, keywords []string) ([]Event, error) {
	query := `
		MATCH (e:Event)
		WHERE all(keyword IN $keywords WHERE (e)-[:HAS]->(:EventKeyword {name: keyword}))
		OPTIONAL MATCH (e)-[:HAS]->(k:EventKeyword)` + eventProjection + `
		ORDER BY eventId`

	records, err := r.runner.Execute(ctx, "event.by_keywords", query, map[string]any{"keywords": UniqueKeywords(keywords)})
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

// GetEventsKeywords returns the distinct names of every keyword node
func (r *EventRepository) GetEventsKeywords(ctx context.Context) ([]string, error) {
	query := `
		MATCH (k:EventKeyword)
		RETURN DISTINCT k.name AS keyword
		ORDER BY keyword`

	records, err := r.runner.Execute(ctx, "event.keywords", query, nil)
	if err != nil {
		return nil, err
	}

	keywords := make([]string, 0, len(records))
	for _, record := range records {
		keyword, err := recordString(record, apperrors.EntityKeyword, "keyword")
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, keyword)
	}
	return keywords, nil
}

