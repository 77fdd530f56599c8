package services

import (
	"context"

	"go.uber.org/zap"

	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/recommend"
	"eventgraph/backend/pkg/logger"
)

// RegistrationRepository stores REGISTERED_TO edges
type RegistrationRepository interface {
	Assign(ctx context.Context, name string, eventID int64) error
	Unassign(ctx context.Context, name string, eventID int64) error
	IsRegistered(ctx context.Context, name string, eventID int64) (bool, error)
	FindAllEventsOfUser(ctx context.Context, name string) ([]graph.Event, error)
}

// Recommender produces event recommendations for an existing user
type Recommender interface {
	Recommend(ctx context.Context, name string) ([]recommend.Recommendation, error)
}

// UserLookup resolves a user by name
type UserLookup interface {
	FindOne(ctx context.Context, name string) (*graph.User, error)
}

// EventLookup resolves an event by id
type EventLookup interface {
	FindByID(ctx context.Context, id int64) (*graph.Event, error)
}

// RegistrationService guards every user/event operation with existence
// checks. The user is always checked before the event and the first
// failure is returned.
//
// The checks and the mutation are separate store calls. An entity deleted
// in between makes Assign fail with a conflict and Unassign a no-op.
type RegistrationService struct {
	users         UserLookup
	events        EventLookup
	registrations RegistrationRepository
	recommender   Recommender
	logger        *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(users UserLookup, events EventLookup, registrations RegistrationRepository, recommender Recommender) *RegistrationService {
	return &RegistrationService{
		users:         users,
		events:        events,
		registrations: registrations,
		recommender:   recommender,
		logger:        logger.Named("registration_service"),
	}
}

func (s *RegistrationService) requireUser(ctx context.Context, name string) error {
	_, err := s.users.FindOne(ctx, name)
	return err
}

func (s *RegistrationService) requireUserAndEvent(ctx context.Context, name string, eventID int64) error {
	if err := s.requireUser(ctx, name); err != nil {
		return err
	}
	_, err := s.events.FindByID(ctx, eventID)
	return err
}

// Assign registers the user to the event. Repeated calls succeed.
func (s *RegistrationService) Assign(ctx context.Context, name string, eventID int64) error {
	if err := s.requireUserAndEvent(ctx, name, eventID); err != nil {
		return err
	}
	return s.registrations.Assign(ctx, name, eventID)
}

// Unassign removes the registration if present
func (s *RegistrationService) Unassign(ctx context.Context, name string, eventID int64) error {
	if err := s.requireUserAndEvent(ctx, name, eventID); err != nil {
		return err
	}
	return s.registrations.Unassign(ctx, name, eventID)
}

// IsRegistered reports whether the user is registered to the event. Both
// the user and the event must exist.
func (s *RegistrationService) IsRegistered(ctx context.Context, name string, eventID int64) (bool, error) {
	if err := s.requireUserAndEvent(ctx, name, eventID); err != nil {
		return false, err
	}
	return s.registrations.IsRegistered(ctx, name, eventID)
}

// EventsOfUser lists the events the user is registered to
func (s *RegistrationService) EventsOfUser(ctx context.Context, name string) ([]graph.Event, error) {
	if err := s.requireUser(ctx, name); err != nil {
		return nil, err
	}
	return s.registrations.FindAllEventsOfUser(ctx, name)
}

// Recommend suggests upcoming events for the user
func (s *RegistrationService) Recommend(ctx context.Context, name string) ([]recommend.Recommendation, error) {
	if err := s.requireUser(ctx, name); err != nil {
		return nil, err
	}
	recs, err := s.recommender.Recommend(ctx, name)
	if err != nil {
		s.logger.Error("Recommendation failed", zap.String("user", name), zap.Error(err))
		return nil, err
	}
	return recs, nil
}
