package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"busplanner.dev/internal/models"
)

type DirectionsResponse struct {
	TransID string  `json:"trans_id"`
	Routes  []Route `json:"routes"`
}

type Route struct {
	ResultCode int           `json:"result_code"`
	ResultMsg  string        `json:"result_msg"`
	Summary    *RouteSummary `json:"summary"`
	Sections   []Section     `json:"sections"`
}

type RouteSummary struct {
	Distance int `json:"distance"`
	Duration int `json:"duration"`
}

type Section struct {
	Distance int    `json:"distance"`
	Duration int    `json:"duration"`
	Roads    []Road `json:"roads"`
}

// Road is one stretch of a section. Vertexes alternate longitude, latitude.
type Road struct {
	Name         string    `json:"name"`
	Distance     int       `json:"distance"`
	Duration     int       `json:"duration"`
	TrafficSpeed float64   `json:"traffic_speed"`
	TrafficState int       `json:"traffic_state"`
	Vertexes     []float64 `json:"vertexes"`
}

func formatCoordinate(c models.Coordinate) string {
	return strconv.FormatFloat(c.X, 'f', -1, 64) + "," + strconv.FormatFloat(c.Y, 'f', -1, 64)
}

// Directions requests a car route between two coordinates. The raw body is
// returned alongside the decoded response; when decoding fails the raw body
// is still returned together with an error wrapping ErrMalformedResponse.
// An empty priority uses the configured default.
func (c *Client) Directions(ctx context.Context, origin, destination models.Coordinate, priority string) (*DirectionsResponse, []byte, error) {
	if priority == "" {
		priority = c.priority
	}
	params := url.Values{}
	params.Set("origin", formatCoordinate(origin))
	params.Set("destination", formatCoordinate(destination))
	if priority != "" {
		params.Set("priority", priority)
	}

	body, err := c.get(ctx, "directions", c.naviBaseURL, "/v1/directions", params)
	if err != nil {
		return nil, nil, err
	}

	var decoded DirectionsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, body, fmt.Errorf("%w: directions: %v", ErrMalformedResponse, err)
	}
	return &decoded, body, nil
}
