package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentComplete(t *testing.T) {
	line := &LineRef{Number: "좌석02", Name: "광주역-화순"}

	tests := []struct {
		name     string
		segment  Segment
		complete bool
	}{
		{"empty", Segment{}, false},
		{"line only", Segment{Bus: line}, false},
		{"missing destination", Segment{Bus: line, From: "금남로4가"}, false},
		{"missing line", Segment{From: "금남로4가", To: "광주역"}, false},
		{"complete", Segment{Bus: line, From: "금남로4가", To: "광주역"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, tt.segment.Complete())
		})
	}
}

func TestSegmentCloneDoesNotShareLine(t *testing.T) {
	original := Segment{Bus: &LineRef{Number: "518", Name: "상무지구"}, From: "a", To: "b"}

	clone := original.Clone()
	clone.Bus.Number = "999"

	assert.Equal(t, "518", original.Bus.Number)
	assert.Equal(t, "a", clone.From)
}

func TestRouteResponseRoundTrip(t *testing.T) {
	result := &RouteResult{
		Geometry:              RouteGeometry{{X: 126.91, Y: 35.14}, {X: 126.90, Y: 35.16}},
		OriginCoordinate:      Coordinate{X: 126.91, Y: 35.14},
		DestinationCoordinate: Coordinate{X: 126.90, Y: 35.16},
		Summary:               RouteSummary{DistanceMeters: 2300, DurationSeconds: 480},
		RouteData:             json.RawMessage(`{"routes":[]}`),
	}

	body, err := json.Marshal(NewRouteResponse(result))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"originCoordinate":{"x":126.91,"y":35.14}`)
	assert.Contains(t, string(body), `"routeData":{"routes":[]}`)
	assert.NotContains(t, string(body), `"error"`)

	var decoded RouteResponse
	require.NoError(t, json.Unmarshal(body, &decoded))
	back, ok := decoded.Result()
	require.True(t, ok)
	assert.Equal(t, result.Geometry, back.Geometry)
	assert.Equal(t, 480, back.Summary.DurationSeconds)
}

func TestRouteResponseErrorHasNoResult(t *testing.T) {
	_, ok := RouteResponse{Error: "좌표를 찾을 수 없어요"}.Result()
	assert.False(t, ok)
}
