package services

import (
	"context"

	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/recommend"
	apperrors "eventgraph/backend/pkg/errors"
)

// fakeStore implements every repository interface over in-memory maps and
// records the order of calls.
type fakeStore struct {
	users         map[string]bool
	events        map[int64]graph.Event
	registrations map[string]map[int64]bool
	calls         []string
	added         []graph.EventInput
	searched      [][]string
	recs          []recommend.Recommendation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[string]bool{},
		events:        map[int64]graph.Event{},
		registrations: map[string]map[int64]bool{},
	}
}

func (f *fakeStore) FindOne(_ context.Context, name string) (*graph.User, error) {
	f.calls = append(f.calls, "user.find_one")
	if !f.users[name] {
		return nil, apperrors.NewUserNotFound(name)
	}
	return &graph.User{Name: name}, nil
}

func (f *fakeStore) FindAll(_ context.Context, page, limit int) (*graph.UserPage, error) {
	f.calls = append(f.calls, "user.find_all")
	return &graph.UserPage{Users: []graph.User{}, Total: int64(len(f.users))}, nil
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (*graph.Event, error) {
	f.calls = append(f.calls, "event.find_by_id")
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.NewEventNotFound(id)
	}
	return &event, nil
}

func (f *fakeStore) Assign(_ context.Context, name string, eventID int64) error {
	f.calls = append(f.calls, "registration.assign")
	if f.registrations[name] == nil {
		f.registrations[name] = map[int64]bool{}
	}
	f.registrations[name][eventID] = true
	return nil
}

func (f *fakeStore) Unassign(_ context.Context, name string, eventID int64) error {
	f.calls = append(f.calls, "registration.unassign")
	delete(f.registrations[name], eventID)
	return nil
}

func (f *fakeStore) IsRegistered(_ context.Context, name string, eventID int64) (bool, error) {
	f.calls = append(f.calls, "registration.is_registered")
	return f.registrations[name][eventID], nil
}

func (f *fakeStore) FindAllEventsOfUser(_ context.Context, name string) ([]graph.Event, error) {
	f.calls = append(f.calls, "registration.events_of_user")
	out := []graph.Event{}
	for id := range f.registrations[name] {
		out = append(out, f.events[id])
	}
	return out, nil
}

func (f *fakeStore) Recommend(_ context.Context, name string) ([]recommend.Recommendation, error) {
	f.calls = append(f.calls, "recommend")
	return f.recs, nil
}

// event repository

type fakeEvents struct {
	*fakeStore
}

func (f fakeEvents) FindAll(_ context.Context) ([]graph.Event, error) {
	f.calls = append(f.calls, "event.find_all")
	return []graph.Event{}, nil
}

func (f fakeEvents) GetFeatured(_ context.Context) ([]graph.Event, error) {
	return []graph.Event{}, nil
}

func (f fakeEvents) Add(_ context.Context, input graph.EventInput) (*graph.Event, error) {
	f.added = append(f.added, input)
	event := graph.Event{ID: int64(len(f.events) + 1), Name: input.Name, StartDatetime: input.StartDatetime, Keywords: input.Keywords}
	f.events[event.ID] = event
	return &event, nil
}

func (f fakeEvents) Edit(_ context.Context, id int64, input graph.EventInput) (*graph.Event, error) {
	if _, ok := f.events[id]; !ok {
		return nil, apperrors.NewEventNotFound(id)
	}
	event := graph.Event{ID: id, Name: input.Name, StartDatetime: input.StartDatetime, Keywords: input.Keywords}
	f.events[id] = event
	return &event, nil
}

func (f fakeEvents) Remove(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.NewEventNotFound(id)
	}
	delete(f.events, id)
	return nil
}

func (f fakeEvents) GetEventsByKeywords(_ context.Context, keywords []string) ([]graph.Event, error) {
	f.searched = append(f.searched, keywords)
	return []graph.Event{}, nil
}

func (f fakeEvents) GetEventsKeywords(_ context.Context) ([]string, error) {
	return []string{}, nil
}
