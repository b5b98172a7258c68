package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/auth"
	"github.com/tournamentpro/backend/internal/middleware"
	"github.com/tournamentpro/backend/internal/registrations"
	"github.com/tournamentpro/backend/internal/site"
	"github.com/tournamentpro/backend/internal/tournaments"
	"github.com/tournamentpro/backend/pkg/response"
)

type routes struct {
	corsOrigins   string
	staticDir     string
	auth          *auth.Handler
	authenticator middleware.Authenticator
	registrations *registrations.Handler
	tournaments   *tournaments.Handler
	site          *site.Handler
	checks        map[string]func(context.Context) error
	jobsPending   func(context.Context) (int64, error)
}

func newRouter(r routes, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(r.corsOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", health(r.checks, r.jobsPending))

	api := router.Group("/api")

	// Site shell
	api.GET("/site/nav", r.site.Nav)
	api.GET("/site/landing", r.site.Landing)
	api.GET("/site/disclaimer", r.site.Disclaimer)
	api.GET("/site/contact", r.site.ContactInfo)
	api.POST("/contact", r.site.Contact)

	// Public: tournament panels and registration
	api.GET("/games/:game", r.tournaments.Game)
	api.GET("/games/:game/tournaments/:type", r.tournaments.Info)
	api.GET("/games/:game/tournaments/:type/slots", r.tournaments.Slots)
	api.POST("/games/:game/tournaments/:type/registrations", r.registrations.Submit)

	// Admin auth (public)
	api.POST("/admin/signup", r.auth.Signup)
	api.POST("/admin/login", r.auth.Login)

	// Admin (session required)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminSession(r.authenticator))
	{
		admin.GET("/session", r.auth.Session)
		admin.POST("/logout", r.auth.Logout)

		admin.GET("/games/:game/tournaments/:type/registrations", r.registrations.List)
		admin.GET("/games/:game/tournaments/:type/stats", r.registrations.Stats)
		admin.GET("/games/:game/registrations/:id", r.registrations.Get)
		admin.POST("/games/:game/registrations/:id/approve", r.registrations.Approve)
		admin.POST("/games/:game/registrations/:id/reject", r.registrations.Reject)
	}

	if r.staticDir != "" {
		router.NoRoute(site.SPA(r.staticDir))
	} else {
		router.NoRoute(func(c *gin.Context) { response.NotFound(c, "route not found") })
	}
	return router
}

// health pings each dependency and answers 503 when any of them fails. The worker backlog is
// reported but never fails the check.
func health(checks map[string]func(context.Context) error, jobsPending func(context.Context) (int64, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				healthy = false
				continue
			}
			deps[name] = "ok"
		}
		body := gin.H{"status": "ok", "deps": deps}
		if jobsPending != nil {
			if n, err := jobsPending(ctx); err == nil {
				body["jobs_pending"] = n
			}
		}
		if !healthy {
			body["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, response.Body{Success: false, Error: "unhealthy", Data: body})
			return
		}
		response.OK(c, body)
	}
}
