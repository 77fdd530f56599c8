package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/validation"
	apperrors "eventgraph/backend/pkg/errors"
	"eventgraph/backend/pkg/logger"
)

// EventRepository is the event storage used by EventService
type EventRepository interface {
	FindByID(ctx context.Context, id int64) (*graph.Event, error)
	FindAll(ctx context.Context) ([]graph.Event, error)
	GetFeatured(ctx context.Context) ([]graph.Event, error)
	Add(ctx context.Context, input graph.EventInput) (*graph.Event, error)
	Edit(ctx context.Context, id int64, input graph.EventInput) (*graph.Event, error)
	Remove(ctx context.Context, id int64) error
	GetEventsByKeywords(ctx context.Context, keywords []string) ([]graph.Event, error)
	GetEventsKeywords(ctx context.Context) ([]string, error)
}

// EventService validates event input before it reaches the store
type EventService struct {
	repo   EventRepository
	logger *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo:   repo,
		logger: logger.Named("event_service"),
	}
}

func (s *EventService) Get(ctx context.Context, id int64) (*graph.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]graph.Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *EventService) Featured(ctx context.Context) ([]graph.Event, error) {
	return s.repo.GetFeatured(ctx)
}

func (s *EventService) Keywords(ctx context.Context) ([]string, error) {
	return s.repo.GetEventsKeywords(ctx)
}

// Create validates the input and stores a new event. Nothing is written
// when validation fails.
func (s *EventService) Create(ctx context.Context, input graph.EventInput) (*graph.Event, error) {
	input = input.Normalize()
	if err := validation.ValidateStruct(input); err != nil {
		s.logger.Debug("Rejected event input", zap.Error(err))
		return nil, err
	}
	return s.repo.Add(ctx, input)
}

// Update replaces every writable field of an existing event
func (s *EventService) Update(ctx context.Context, id int64, input graph.EventInput) (*graph.Event, error) {
	input = input.Normalize()
	if err := validation.ValidateStruct(input); err != nil {
		s.logger.Debug("Rejected event input", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return s.repo.Edit(ctx, id, input)
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.repo.Remove(ctx, id)
}

// SearchByKeywords returns events tagged with all of the given keywords.
// Blank keywords are ignored; at least one must remain.
func (s *EventService) SearchByKeywords(ctx context.Context, keywords []string) ([]graph.Event, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return nil, apperrors.NewValidationFailed("keyword", "at least one keyword is required")
	}
	return s.repo.GetEventsByKeywords(ctx, cleaned)
}
