package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/siteforge/draftsvc/config"
	"github.com/siteforge/draftsvc/internal/sitebuilder/assets"
	"github.com/siteforge/draftsvc/internal/sitebuilder/commit"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftservice"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftstore"
	"github.com/siteforge/draftsvc/internal/sitebuilder/httpapi"
	"github.com/siteforge/draftsvc/internal/sitebuilder/preview"
	"github.com/siteforge/draftsvc/internal/sitebuilder/repository"
	"github.com/siteforge/draftsvc/internal/sitebuilder/template"
)

// BuildApp wires the repos and collaborators the way the teacher's
// bootstrap.BuildRouter does (internal/bootstrap/router.go: construct
// every repo, then hand the assembled group to the handler layer),
// generalized to this service's own store/lookup/coordinator stack.
func BuildApp(cfg *config.Config, redisClient redis.UniversalClient, pg *pgxpool.Pool) *gin.Engine {
	registry := template.NewRegistry()

	drafts := draftstore.NewRedisStore(redisClient)
	relations := repository.NewPgxStore(pg)
	lookup := assets.NewHTTPLookup(cfg.Assets.BaseURL)

	draftSvc := draftservice.NewService(drafts, lookup, registry, preview.NoExternalRenderer{})

	coordinator := commit.NewCoordinator(drafts, relations, registry, redisClient)

	return httpapi.BuildRouter(httpapi.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		Redis:          redisClient,
		Postgres:       pg,
		Drafts:         draftSvc,
		Coordinator:    coordinator,
		InternalToken:  cfg.Commit.InternalToken,
		AllowedOrigins: cfg.Commit.AllowedOrigins,
	})
}
