package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/siteforge/draftsvc/internal/sitebuilder/commit"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftservice"
)

// RouterDeps is everything BuildRouter needs, generalizing the teacher's
// RouterDeps (internal/bootstrap/router.go) to this service's own
// collaborators.
type RouterDeps struct {
	ServiceName    string
	Version        string
	Redis          redis.UniversalClient
	Postgres       *pgxpool.Pool
	Drafts         *draftservice.Service
	Coordinator    *commit.Coordinator
	InternalToken  string
	AllowedOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Internal-Token", "Idempotency-Key", "X-Client-Source", "If-None-Match"},
			ExposeHeaders:    []string{"ETag", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	health := NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.Postgres)
	health.RegisterRoutes(r)

	h := NewHandler(dep.Drafts, dep.Coordinator)

	api := r.Group("/api/v1")
	drafts := api.Group("/drafts")
	drafts.POST("", h.CreateDraft)
	drafts.PATCH("/:draftId", h.PatchDraft)
	drafts.GET("/:draftId", h.GetDraft)
	drafts.GET("/:draftId/preview", h.GetPreview)

	commitGroup := drafts.Group("/:draftId/commit")
	commitGroup.Use(InternalTokenMiddleware(dep.InternalToken))
	commitGroup.POST("", h.CommitDraft)

	api.GET("/p/:draftId", h.GetDirectPreview)

	return r
}
