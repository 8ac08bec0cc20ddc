package models

import "encoding/json"

// RouteRequest is the body accepted by the directions handler.
type RouteRequest struct {
	Origin      string `json:"origin" validate:"required,max=100"`
	Destination string `json:"destination" validate:"required,max=100"`
}

// RouteSummary carries the provider's totals for the selected route.
type RouteSummary struct {
	DistanceMeters  int `json:"distance"`
	DurationSeconds int `json:"duration"`
}

// RouteResult is a resolved segment path.
type RouteResult struct {
	Geometry              RouteGeometry
	OriginCoordinate      Coordinate
	DestinationCoordinate Coordinate
	Summary               RouteSummary
	RouteData             json.RawMessage
}

// RouteResponse is the directions handler payload. On failure only Error is
// guaranteed, possibly alongside whichever coordinates were resolved.
type RouteResponse struct {
	RouteData             json.RawMessage `json:"routeData,omitempty"`
	OriginCoordinate      *Coordinate     `json:"originCoordinate,omitempty"`
	DestinationCoordinate *Coordinate     `json:"destinationCoordinate,omitempty"`
	Geometry              RouteGeometry   `json:"geometry,omitempty"`
	Polyline              string          `json:"polyline,omitempty"`
	Summary               *RouteSummary   `json:"summary,omitempty"`
	Error                 string          `json:"error,omitempty"`
	ErrorKind             string          `json:"errorKind,omitempty"`
	Detail                string          `json:"detail,omitempty"`
}

// NewRouteResponse builds the success payload for a resolved route.
func NewRouteResponse(result *RouteResult) RouteResponse {
	origin := result.OriginCoordinate
	destination := result.DestinationCoordinate
	summary := result.Summary
	return RouteResponse{
		RouteData:             result.RouteData,
		OriginCoordinate:      &origin,
		DestinationCoordinate: &destination,
		Geometry:              result.Geometry,
		Polyline:              result.Geometry.Encode(),
		Summary:               &summary,
	}
}

// Result converts a success payload back into a RouteResult.
func (r RouteResponse) Result() (*RouteResult, bool) {
	if r.Error != "" || r.OriginCoordinate == nil || r.DestinationCoordinate == nil {
		return nil, false
	}
	result := &RouteResult{
		Geometry:              r.Geometry,
		OriginCoordinate:      *r.OriginCoordinate,
		DestinationCoordinate: *r.DestinationCoordinate,
		RouteData:             r.RouteData,
	}
	if r.Summary != nil {
		result.Summary = *r.Summary
	}
	return result, true
}
