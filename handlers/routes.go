package handlers

import (
	"context"
	"net/http"

	"concert-pass/models"
	"concert-pass/security"
	"concert-pass/services"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything the storefront routes need.
type Dependencies struct {
	Sessions *services.SessionService
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Bookings *services.BookingService
	Listings *services.ListingService
	Admin    *services.AdminService
	Limiter  *security.RateLimiter

	CookieSecure  bool
	EnableMetrics bool

	// HealthCheck reports whether the stores are reachable. Nil means always
	// healthy.
	HealthCheck func(ctx context.Context) error
}

// NewServer builds the echo instance with every storefront route.
func NewServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(requestLogger())

	Register(e, deps)
	return e
}

func Register(e *echo.Echo, deps Dependencies) {
	authHandler := NewAuthHandler(deps.Auth, deps.Sessions, deps.CookieSecure)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	bookingHandler := NewBookingHandler(deps.Bookings)
	listingHandler := NewListingHandler(deps.Listings)
	adminHandler := NewAdminHandler(deps.Admin)

	e.GET("/healthz", healthz(deps.HealthCheck))
	if deps.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
	e.GET("/", authHandler.Root)

	auth := e.Group("/auth")
	if deps.Limiter != nil {
		limit := deps.Limiter.LoginRateLimit()
		auth.Use(deps.Limiter.AntiBotMiddleware())
		auth.POST("/login", authHandler.Login, limit)
		auth.POST("/register", authHandler.Register, limit)
	} else {
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}
	auth.POST("/logout", authHandler.Logout)

	guard := security.RequireSession(deps.Sessions)
	e.GET("/me", authHandler.Me, guard)
	e.GET("/dashboard", catalogHandler.Dashboard, guard)
	e.GET("/search", catalogHandler.Search, guard)
	e.GET("/concerts/:id", catalogHandler.Concert, guard)
	e.GET("/my-bookings", catalogHandler.MyBookings, guard)

	e.POST("/booking/:concertId", bookingHandler.Start, guard)
	e.GET("/booking/:concertId", bookingHandler.Get, guard)
	e.POST("/booking/:concertId/actions", bookingHandler.Action, guard)
	e.POST("/booking/:concertId/submit", bookingHandler.Submit, guard)

	e.POST("/sell", listingHandler.Start, guard)
	e.GET("/sell", listingHandler.Get, guard)
	e.POST("/sell/actions", listingHandler.Action, guard)
	e.POST("/sell/submit", listingHandler.Submit, guard)

	admin := e.Group("/admin", guard, security.RequireRole(models.RoleAdmin))
	admin.GET("/users", adminHandler.Users)
	admin.GET("/concerts", adminHandler.Concerts)
	admin.PUT("/concerts/:id/status", adminHandler.SetStatus)
	admin.DELETE("/concerts/:id", adminHandler.Delete)
}

func healthz(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
