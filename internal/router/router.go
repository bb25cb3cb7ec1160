// Package router defines how HTTP routes are registered for the API.
// Public reads (place browse/search, amenity catalog, entity lookups) take
// the response cache; every write goes through JWTAuth so the facade
// receives a resolved caller identity.  Auth endpoints are rate limited.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/stayhub/internal/config"
	"github.com/iliyamo/stayhub/internal/handler"
	"github.com/iliyamo/stayhub/internal/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Places    *handler.PlaceHandler
	Reviews   *handler.ReviewHandler
	Amenities *handler.AmenityHandler
}

// Register wires all routes onto the Echo instance.  rdb may be nil, in
// which case caching and rate limiting are disabled.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	auth := middleware.JWTAuth(jwtSecret)

	// Unauthenticated session endpoints, rate limited per client.
	ag := e.Group("/v1/auth", limit)
	ag.POST("/register", h.Auth.Register)
	ag.POST("/login", h.Auth.Login)

	v1 := e.Group("/v1")

	// Public reads.
	v1.GET("/users/:id", h.Users.Get)
	v1.GET("/places", h.Places.List, cache)
	v1.GET("/places/:id", h.Places.Get, cache)
	v1.GET("/places/:id/reviews", h.Reviews.ListByPlace, cache)
	v1.GET("/reviews/:id", h.Reviews.Get)
	v1.GET("/amenities", h.Amenities.List, cache)
	v1.GET("/amenities/:id", h.Amenities.Get, cache)

	// Authenticated operations.
	p := v1.Group("", auth)
	p.GET("/me", h.Auth.Me)
	p.GET("/users", h.Users.List)
	p.PUT("/users/:id", h.Users.Update)
	p.DELETE("/users/:id", h.Users.Delete)
	p.POST("/places", h.Places.Create)
	p.PUT("/places/:id", h.Places.Update)
	p.DELETE("/places/:id", h.Places.Delete)
	p.POST("/reviews", h.Reviews.Create)
	p.GET("/reviews", h.Reviews.List)
	p.PUT("/reviews/:id", h.Reviews.Update)
	p.DELETE("/reviews/:id", h.Reviews.Delete)

	// Admin-only catalog management and account provisioning.  The facade
	// re-checks the admin flag; the middleware keeps non-admins out of the
	// routes entirely.
	adm := v1.Group("", auth, middleware.RequireAdmin())
	adm.POST("/users", h.Users.Create)
	adm.POST("/amenities", h.Amenities.Create)
	adm.PUT("/amenities/:id", h.Amenities.Update)
	adm.DELETE("/amenities/:id", h.Amenities.Delete)
}
