// Package api implements the read-only REST API over the capture store.
//
// Endpoints:
//   - GET /api/v1/health   - Health check (store connectivity)
//   - GET /api/v1/stats    - Decode counters and process usage
//   - GET /api/v1/messages - Recent captured messages (?limit=N, max 500)
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/dnswire/internal/helpers"
	"github.com/jroosing/dnswire/internal/stats"
	"github.com/jroosing/dnswire/internal/store"
)

// Handler contains dependencies for the API handlers.
type Handler struct {
	store     *store.Store
	decode    *stats.DecodeStats
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler over the given store and counters.
func New(st *store.Store, decode *stats.DecodeStats, logger *slog.Logger) *Handler {
	return &Handler{
		store:     st,
		decode:    decode,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", h.getHealth)
	v1.GET("/stats", h.getStats)
	v1.GET("/messages", h.getMessages)
	return r
}

// requestLogger logs one line per request through the configured slog logger.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("api request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (h *Handler) getHealth(c *gin.Context) {
	if err := h.store.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).String(),
	})
}

func (h *Handler) getStats(c *gin.Context) {
	captures, err := h.store.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"decode":   h.decode.Snapshot(),
		"process":  stats.ProcessUsage(),
		"captures": captures,
	})
}

func (h *Handler) getMessages(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = helpers.ClampInt(n, 1, 500)
	}

	captures, err := h.store.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if captures == nil {
		captures = []store.Capture{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": captures})
}
