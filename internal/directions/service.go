// Package directions resolves a pair of stop names to a routed path.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"busplanner.dev/internal/geocode"
	"busplanner.dev/internal/kakao"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

// Geocoder resolves a stop name using the service's region hint.
type Geocoder interface {
	Resolve(ctx context.Context, placeName string) (models.Coordinate, error)
}

// Router requests a path between two coordinates.
type Router interface {
	Directions(ctx context.Context, origin, destination models.Coordinate, priority string) (*kakao.DirectionsResponse, []byte, error)
}

// RouteSource is anything able to resolve a segment to a path, in process or
// over HTTP.
type RouteSource interface {
	Route(ctx context.Context, origin, destination string) (*models.RouteResult, error)
}

type Service struct {
	geocoder Geocoder
	router   Router
	priority string
	logger   *slog.Logger
}

func NewService(geocoder Geocoder, router Router, priority string, logger *slog.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		router:   router,
		priority: priority,
		logger:   logging.ForComponent(logger, "directions"),
	}
}

type geocodeResult struct {
	coord models.Coordinate
	err   error
}

// Route geocodes both names concurrently and, when both resolve, asks the
// router for a path and decodes the first route. Every failure is a *Failure.
func (s *Service) Route(ctx context.Context, origin, destination string) (*models.RouteResult, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, &Failure{Kind: Validation, Message: MessageInvalidRequest}
	}

	start := time.Now()

	var wg sync.WaitGroup
	var from, to geocodeResult
	wg.Add(2)
	go func() {
		defer wg.Done()
		from.coord, from.err = s.geocoder.Resolve(ctx, origin)
	}()
	go func() {
		defer wg.Done()
		to.coord, to.err = s.geocoder.Resolve(ctx, destination)
	}()
	wg.Wait()

	if from.err != nil || to.err != nil {
		return nil, s.geocodeFailure(origin, destination, from, to)
	}

	originCoord, destinationCoord := from.coord, to.coord
	resp, raw, err := s.router.Directions(ctx, originCoord, destinationCoord, s.priority)
	if err != nil {
		logging.LogError(s.logger, "directions request failed", err,
			slog.String("origin", origin),
			slog.String("destination", destination))
		return nil, &Failure{
			Kind:                  Transport,
			Message:               MessageProviderUnavailable,
			Detail:                err.Error(),
			OriginCoordinate:      &originCoord,
			DestinationCoordinate: &destinationCoord,
			Err:                   err,
		}
	}

	notFound := func(detail string) *Failure {
		return &Failure{
			Kind:                  NotFound,
			Message:               MessageRouteNotFound,
			Detail:                detail,
			OriginCoordinate:      &originCoord,
			DestinationCoordinate: &destinationCoord,
		}
	}

	if len(resp.Routes) == 0 {
		return nil, notFound("provider returned no routes")
	}
	route := resp.Routes[0]
	if route.ResultCode != 0 {
		return nil, notFound(route.ResultMsg)
	}
	geometry := FlattenRoute(route)
	if len(geometry) == 0 {
		return nil, notFound("route has no vertexes")
	}

	logging.LogOperation(s.logger, "route_resolved",
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.Int("vertex_count", len(geometry)),
		slog.Duration("duration", time.Since(start)))

	return &models.RouteResult{
		Geometry:              geometry,
		OriginCoordinate:      originCoord,
		DestinationCoordinate: destinationCoord,
		Summary:               summarize(route),
		RouteData:             json.RawMessage(raw),
	}, nil
}

func (s *Service) geocodeFailure(origin, destination string, from, to geocodeResult) *Failure {
	f := &Failure{Kind: NotFound, Message: MessageCoordinatesNotFound}
	if from.err == nil {
		c := from.coord
		f.OriginCoordinate = &c
	}
	if to.err == nil {
		c := to.coord
		f.DestinationCoordinate = &c
	}

	for _, err := range []error{from.err, to.err} {
		if err != nil && !errors.Is(err, geocode.ErrNotFound) {
			f.Kind = Transport
			f.Message = MessageProviderUnavailable
			f.Detail = err.Error()
			f.Err = err
			break
		}
	}

	logging.LogOperation(s.logger, "geocode_failed",
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.String("kind", f.Kind.String()),
		slog.Bool("origin_resolved", from.err == nil),
		slog.Bool("destination_resolved", to.err == nil))
	return f
}
