package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig controls the ambient middleware of the router
type RouterConfig struct {
	Production     bool
	CORSOrigin     string
	MetricsEnabled bool
}

// NewRouter builds the gin engine with every route registered
func NewRouter(cfg RouterConfig, h *Handler, log *zap.Logger) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestID())
	router.Use(Logger(log))
	router.Use(gin.Recovery())
	if cfg.MetricsEnabled {
		router.Use(Metrics())
	}
	if cfg.CORSOrigin != "" {
		router.Use(CORS(cfg.CORSOrigin))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	events := router.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/featured", h.featuredEvents)
		events.GET("/keywords", h.eventKeywords)
		events.GET("/search", h.searchEvents)
	}

	event := router.Group("/event")
	{
		event.POST("", h.createEvent)
		event.GET("/:id", h.getEvent)
		event.PUT("/:id", h.updateEvent)
		event.DELETE("/:id", h.deleteEvent)
	}

	router.GET("/users", h.listUsers)

	user := router.Group("/user/:name")
	{
		user.GET("", h.getUser)
		user.GET("/events", h.userEvents)
		user.GET("/recommendations", h.userRecommendations)
		user.GET("/event/:id", h.isRegistered)
		user.POST("/event/:id", h.assign)
		user.DELETE("/event/:id", h.unassign)
	}

	return router
}
