package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthResponse mirrors the teacher's health endpoint shape
// (internal/api/http/health.go), extended with the draft store's own
// up/down check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DraftDB   string    `json:"draftDb,omitempty"`
	RelDB     string    `json:"relationalDb,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	redis       redis.UniversalClient
	pg          *pgxpool.Pool
}

func NewHealthHandler(serviceName, version string, redisClient redis.UniversalClient, pg *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, redis: redisClient, pg: pg}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	draftDB := "disabled"
	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			draftDB = "down"
		} else {
			draftDB = "up"
		}
	}

	relDB := "disabled"
	if h.pg != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := h.pg.Ping(pingCtx); err != nil {
			relDB = "down"
		} else {
			relDB = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DraftDB:   draftDB,
		RelDB:     relDB,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
}
