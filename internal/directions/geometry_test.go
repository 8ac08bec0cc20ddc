package directions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"busplanner.dev/internal/kakao"
	"busplanner.dev/internal/models"
)

func TestFlattenRoute(t *testing.T) {
	route := kakao.Route{
		Sections: []kakao.Section{
			{Roads: []kakao.Road{
				{Vertexes: []float64{126.1, 35.1, 126.2, 35.2}},
				{Vertexes: []float64{126.3, 35.3, 126.4}},
			}},
			{Roads: []kakao.Road{{Vertexes: []float64{127, 36}}}},
		},
	}

	assert.Equal(t, models.RouteGeometry{
		{X: 126.1, Y: 35.1},
		{X: 126.2, Y: 35.2},
		{X: 126.3, Y: 35.3},
	}, FlattenRoute(route))
}

func TestFlattenRouteWithoutSections(t *testing.T) {
	assert.Empty(t, FlattenRoute(kakao.Route{}))
}

func TestSummarizeFallsBackToSections(t *testing.T) {
	route := kakao.Route{Sections: []kakao.Section{{Distance: 100, Duration: 30}, {Distance: 50, Duration: 10}}}
	assert.Equal(t, models.RouteSummary{DistanceMeters: 150, DurationSeconds: 40}, summarize(route))

	route.Summary = &kakao.RouteSummary{Distance: 7, Duration: 3}
	assert.Equal(t, models.RouteSummary{DistanceMeters: 7, DurationSeconds: 3}, summarize(route))
}
