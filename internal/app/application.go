package app

import (
	"log/slog"

	"busplanner.dev/internal/appconf"
	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/gtfs"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	Logger      *slog.Logger
	Directions  directions.RouteSource
	Lines       busline.Lookup
	GtfsManager *gtfs.Manager
}

// LineCount reports how many routes the loaded feed carries.
func (app *Application) LineCount() int {
	if app.GtfsManager == nil {
		return 0
	}
	return len(app.GtfsManager.GetRoutes())
}
