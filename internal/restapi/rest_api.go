// Package restapi exposes the directions handler and the line lookup
// endpoints over HTTP.
package restapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"busplanner.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
	validate    *validator.Validate
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}
