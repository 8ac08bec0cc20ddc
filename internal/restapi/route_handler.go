package restapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
	"busplanner.dev/internal/utils"
)

const maxRouteBodySize = 16 << 10

// routeHandler resolves a stop pair to a route. It answers 200 in every case
// so the browser can parse each segment's result independently; failures
// are carried in the body's error field.
func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req models.RouteRequest
	body := http.MaxBytesReader(w, r.Body, maxRouteBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		api.sendRouteFailure(w, r, &directions.Failure{
			Kind:    directions.Validation,
			Message: directions.MessageInvalidRequest,
			Detail:  "request body is not valid JSON",
			Err:     err,
		})
		return
	}

	req.Origin = utils.SanitizeInput(req.Origin)
	req.Destination = utils.SanitizeInput(req.Destination)
	if err := api.validate.Struct(req); err != nil {
		api.sendRouteFailure(w, r, &directions.Failure{
			Kind:    directions.Validation,
			Message: directions.MessageInvalidRequest,
			Detail:  describeValidation(err),
			Err:     err,
		})
		return
	}

	result, err := api.Directions.Route(r.Context(), req.Origin, req.Destination)
	if err != nil {
		api.sendRouteFailure(w, r, directions.AsFailure(err))
		return
	}

	logging.LogOperation(logger, "route_served",
		slog.String("origin", req.Origin),
		slog.String("destination", req.Destination),
		slog.Int("vertex_count", len(result.Geometry)))
	api.writeRouteResponse(w, r, models.NewRouteResponse(result))
}

func (api *RestAPI) sendRouteFailure(w http.ResponseWriter, r *http.Request, f *directions.Failure) {
	logging.LogOperation(logging.FromContext(r.Context()), "route_failed",
		slog.String("kind", f.Kind.String()),
		slog.String("message", f.Message),
		slog.String("detail", f.Detail))
	api.writeRouteResponse(w, r, f.Response())
}

func (api *RestAPI) writeRouteResponse(w http.ResponseWriter, r *http.Request, payload models.RouteResponse) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode route response", err)
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fe.Field() + " failed " + fe.Tag()
}
