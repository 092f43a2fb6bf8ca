package routes

import (
	"net/http"

	"github.com/tiltlabs/engineer-on-demand/internal/api/handlers"
	"github.com/tiltlabs/engineer-on-demand/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler     *handlers.BookingHandler
	engineerHandler    *handlers.EngineerHandler
	earlyAccessHandler *handlers.EarlyAccessHandler
	geolocationHandler *handlers.GeolocationHandler

	cacheMiddleware *middleware.CacheMiddleware
	rateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	engineerHandler *handlers.EngineerHandler,
	earlyAccessHandler *handlers.EarlyAccessHandler,
	geolocationHandler *handlers.GeolocationHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		bookingHandler:     bookingHandler,
		engineerHandler:    engineerHandler,
		earlyAccessHandler: earlyAccessHandler,
		geolocationHandler: geolocationHandler,
		cacheMiddleware:    cacheMiddleware,
		rateLimiter:        rateLimiter,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Engineer endpoints
	r.mux.HandleFunc("GET /api/engineers", r.engineerHandler.Nearby)
	r.mux.HandleFunc("POST /api/engineers", r.throttled(r.engineerHandler.Create))

	// Appointment endpoints
	r.mux.HandleFunc("POST /api/appointments", r.throttled(r.bookingHandler.Book))
	r.mux.HandleFunc("GET /api/appointments", r.bookingHandler.List)

	// Early access endpoints
	r.mux.HandleFunc("POST /api/early-access", r.throttled(r.earlyAccessHandler.Register))
	r.mux.HandleFunc("GET /api/early-access", r.earlyAccessHandler.List)

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.ReverseGeocode)

	// Apply middleware in reverse order (last middleware wraps first).
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	return handler
}

// throttled wraps a write endpoint with the per-IP rate limiter, when one is
// configured.
func (r *Router) throttled(h http.HandlerFunc) http.HandlerFunc {
	if r.rateLimiter == nil {
		return h
	}
	limited := r.rateLimiter.Middleware(h)
	return func(w http.ResponseWriter, req *http.Request) {
		limited.ServeHTTP(w, req)
	}
}
