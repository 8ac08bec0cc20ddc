package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"busplanner.dev/internal/appconf"
	"busplanner.dev/internal/webui"
)

const (
	RoutePath = "/route"
	// NetlifyRoutePath is the path the browser client posts to.
	NetlifyRoutePath = "/.netlify/functions/route"
)

// SetRoutes registers every endpoint on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, RoutePath, api.routeHandler)
	router.HandlerFunc(http.MethodPost, NetlifyRoutePath, api.routeHandler)
	router.HandlerFunc(http.MethodGet, "/api/lines", api.searchLinesHandler)
	router.HandlerFunc(http.MethodGet, "/api/lines/:number/stops", api.lineStopsHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	if api.Config.Env != appconf.Production && api.GtfsManager != nil {
		ui := &webui.WebUI{GtfsManager: api.GtfsManager, Logger: api.Logger}
		ui.SetWebUIRoutes(router)
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}

// Handler builds the full middleware chain. CORS and preflight handling sit
// outside the rate limiter so every response carries the CORS headers.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	router.HandleOPTIONS = false
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
