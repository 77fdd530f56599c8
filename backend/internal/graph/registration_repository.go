package graph

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	apperrors "eventgraph/backend/pkg/errors"
	"eventgraph/backend/pkg/logger"
)

// RegistrationRepository manages REGISTERED_TO edges between users and events
type RegistrationRepository struct {
	runner Runner
	logger *zap.Logger
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(runner Runner) *RegistrationRepository {
	return &RegistrationRepository{
		runner: runner,
		logger: logger.Named("registration_repository"),
	}
}

// Assign registers a user to an event. Registering twice leaves a single edge.
// If either endpoint disappeared after the caller checked it, nothing is
// linked and a conflict is reported.
func (r *RegistrationRepository) Assign(ctx context.Context, name string, eventID int64) error {
	query := `
		MATCH (u:User {name: $name})
		MATCH (e:Event {id: $id})
		MERGE (u)-[:REGISTERED_TO]->(e)
		RETURN count(*) AS linked`

	records, err := r.runner.Execute(ctx, "registration.assign", query, map[string]any{"name": name, "id": eventID})
	if err != nil {
		return err
	}

	var linked int64
	if len(records) > 0 {
		linked, err = recordInt64(records[0], apperrors.EntityRegistration, "linked")
		if err != nil {
			return err
		}
	}
	if linked == 0 {
		return apperrors.NewConflict(apperrors.EntityRegistration, "cannot register "+name+" to event "+strconv.FormatInt(eventID, 10), nil)
	}

	r.logger.Info("User registered to event",
		zap.String("user", name),
		zap.Int64("event_id", eventID),
	)
	return nil
}

// Unassign removes the registration edge. Removing a missing edge is a no-op.
func (r *RegistrationRepository) Unassign(ctx context.Context, name string, eventID int64) error {
	query := `
		MATCH (:User {name: $name})-[r:REGISTERED_TO]->(:Event {id: $id})
		DELETE r`

	if err := r.runner.Run(ctx, "registration.unassign", query, map[string]any{"name": name, "id": eventID}); err != nil {
		return err
	}

	r.logger.Info("User unregistered from event",
		zap.String("user", name),
		zap.Int64("event_id", eventID),
	)
	return nil
}

// IsRegistered reports whether the registration edge exists
func (r *RegistrationRepository) IsRegistered(ctx context.Context, name string, eventID int64) (bool, error) {
	query := `
		MATCH (u:User {name: $name})
		MATCH (e:Event {id: $id})
		OPTIONAL MATCH (u)-[r:REGISTERED_TO]->(e)
		RETURN count(r) > 0 AS registered`

	records, err := r.runner.Execute(ctx, "registration.is_registered", query, map[string]any{"name": name, "id": eventID})
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	return recordBool(records[0], apperrors.EntityRegistration, "registered")
}

// FindAllEventsOfUser returns the events a user is registered to, ordered by id
func (r *RegistrationRepository) FindAllEventsOfUser(ctx context.Context, name string) ([]Event, error) {
	query := `
		MATCH (:User {name: $name})-[:REGISTERED_TO]->(e:Event)
		OPTIONAL MATCH (e)-[:HAS]->(k:EventKeyword)` + eventProjection + `
		ORDER BY eventId`

	records, err := r.runner.Execute(ctx, "registration.events_of_user", query, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

// FindRecommendationPool reads, in a single statement, every event the user
// is registered to plus every event starting strictly after now. Reading
// both sides together gives the recommender one consistent snapshot.
// Start values stored as LocalDateTime or ISO strings are converted with
// datetime() so they compare against now instead of yielding null.
func (r *RegistrationRepository) FindRecommendationPool(ctx context.Context, name string, now time.Time) ([]PoolEvent, error) {
	query := `
		MATCH (e:Event)
		OPTIONAL MATCH (u:User {name: $name})-[reg:REGISTERED_TO]->(e)
		WITH e, reg IS NOT NULL AS registered
		WHERE registered OR datetime(e.startDatetime) > $now
		OPTIONAL MATCH (e)-[:HAS]->(k:EventKeyword)
		RETURN e.id AS eventId,
		       e.name AS eventName,
		       e.startDatetime AS start,
		       collect(DISTINCT k.name) AS keywords,
		       registered
		ORDER BY eventId`

	records, err := r.runner.Execute(ctx, "registration.recommendation_pool", query, map[string]any{"name": name, "now": now})
	if err != nil {
		return nil, err
	}

	pool := make([]PoolEvent, 0, len(records))
	for _, record := range records {
		event, err := decodeEvent(record)
		if err != nil {
			return nil, err
		}
		registered, err := recordBool(record, apperrors.EntityRegistration, "registered")
		if err != nil {
			return nil, err
		}
		pool = append(pool, PoolEvent{Event: event, Registered: registered})
	}
	return pool, nil
}
