package api

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/recommend"
	apperrors "eventgraph/backend/pkg/errors"
)

// EventAPI is the event use-case surface the handlers call
type EventAPI interface {
	Get(ctx context.Context, id int64) (*graph.Event, error)
	List(ctx context.Context) ([]graph.Event, error)
	Featured(ctx context.Context) ([]graph.Event, error)
	Create(ctx context.Context, input graph.EventInput) (*graph.Event, error)
	Update(ctx context.Context, id int64, input graph.EventInput) (*graph.Event, error)
	Delete(ctx context.Context, id int64) error
	SearchByKeywords(ctx context.Context, keywords []string) ([]graph.Event, error)
	Keywords(ctx context.Context) ([]string, error)
}

// UserAPI is the user use-case surface the handlers call
type UserAPI interface {
	Get(ctx context.Context, name string) (*graph.User, error)
	List(ctx context.Context, page, limit int) (*graph.UserPage, error)
}

// RegistrationAPI is the registration use-case surface the handlers call
type RegistrationAPI interface {
	Assign(ctx context.Context, name string, eventID int64) error
	Unassign(ctx context.Context, name string, eventID int64) error
	IsRegistered(ctx context.Context, name string, eventID int64) (bool, error)
	EventsOfUser(ctx context.Context, name string) ([]graph.Event, error)
	Recommend(ctx context.Context, name string) ([]recommend.Recommendation, error)
}

// Handler holds the HTTP handlers
type Handler struct {
	events        EventAPI
	users         UserAPI
	registrations RegistrationAPI
	logger        *zap.Logger
}

// NewHandler creates the HTTP handlers
func NewHandler(events EventAPI, users UserAPI, registrations RegistrationAPI, log *zap.Logger) *Handler {
	return &Handler{
		events:        events,
		users:         users,
		registrations: registrations,
		logger:        log,
	}
}

func parseEventID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationFailed("id", "must be an integer")
	}
	return id, nil
}

func bindEventInput(c *gin.Context) (graph.EventInput, error) {
	var input graph.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return graph.EventInput{}, apperrors.NewValidationFailed("body", "invalid JSON payload")
	}
	return input, nil
}

// ============================================================================
// Events
// ============================================================================

func (h *Handler) listEvents(c *gin.Context) {
	params, err := parsePagination(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	events, err := h.events.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	respond(c, http.StatusOK, Paginate(events, params), "events found")
}

func (h *Handler) featuredEvents(c *gin.Context) {
	events, err := h.events.Featured(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, events, "featured events found")
}

func (h *Handler) eventKeywords(c *gin.Context) {
	keywords, err := h.events.Keywords(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, keywords, "keywords found")
}

func (h *Handler) searchEvents(c *gin.Context) {
	events, err := h.events.SearchByKeywords(c.Request.Context(), c.QueryArray("keyword"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, events, "events found")
}

func (h *Handler) getEvent(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, event, "event found")
}

func (h *Handler) createEvent(c *gin.Context) {
	input, err := bindEventInput(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	event, err := h.events.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, event, "event created")
}

func (h *Handler) updateEvent(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	input, err := bindEventInput(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, event, "event updated")
}

func (h *Handler) deleteEvent(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "event deleted")
}

// ============================================================================
// Users
// ============================================================================

func (h *Handler) listUsers(c *gin.Context) {
	params, err := parsePagination(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	page, err := h.users.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, NewPage(page.Users, page.Total, params), "users found")
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, user, "user found")
}

// ============================================================================
// Registrations
// ============================================================================

func (h *Handler) userEvents(c *gin.Context) {
	events, err := h.registrations.EventsOfUser(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, events, "events found")
}

func (h *Handler) userRecommendations(c *gin.Context) {
	recs, err := h.registrations.Recommend(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, recs, "recommendations found")
}

func (h *Handler) isRegistered(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	registered, err := h.registrations.IsRegistered(c.Request.Context(), c.Param("name"), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, registered, "registration checked")
}

func (h *Handler) assign(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.registrations.Assign(c.Request.Context(), c.Param("name"), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, nil, "user registered to event")
}

func (h *Handler) unassign(c *gin.Context) {
	id, err := parseEventID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.registrations.Unassign(c.Request.Context(), c.Param("name"), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "user unregistered from event")
}
