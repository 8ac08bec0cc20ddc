package directions

import (
	"busplanner.dev/internal/kakao"
	"busplanner.dev/internal/models"
)

// FlattenRoute decodes the first section of route into a path. Each road's
// vertexes alternate longitude and latitude; roads are consumed in order and
// a dangling odd value at the end of a road is ignored.
func FlattenRoute(route kakao.Route) models.RouteGeometry {
	geometry := models.RouteGeometry{}
	if len(route.Sections) == 0 {
		return geometry
	}
	for _, road := range route.Sections[0].Roads {
		for j := 0; j+1 < len(road.Vertexes); j += 2 {
			geometry = append(geometry, models.Coordinate{X: road.Vertexes[j], Y: road.Vertexes[j+1]})
		}
	}
	return geometry
}

// summarize prefers the provider summary and falls back to section totals.
func summarize(route kakao.Route) models.RouteSummary {
	if route.Summary != nil {
		return models.RouteSummary{DistanceMeters: route.Summary.Distance, DurationSeconds: route.Summary.Duration}
	}
	var s models.RouteSummary
	for _, section := range route.Sections {
		s.DistanceMeters += section.Distance
		s.DurationSeconds += section.Duration
	}
	return s
}
