package models

import (
	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// Coordinate is a position in decimal degrees as returned by the providers.
// X is the longitude and Y the latitude.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Coordinate) Lon() float64 { return c.X }
func (c Coordinate) Lat() float64 { return c.Y }

// Point converts the coordinate to an orb point (lon, lat).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.X, c.Y}
}

func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{X: p.Lon(), Y: p.Lat()}
}

// RouteGeometry is the ordered path drawn for one segment.
type RouteGeometry []Coordinate

// LineString converts the geometry to an orb line string.
func (g RouteGeometry) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(g))
	for _, c := range g {
		ls = append(ls, c.Point())
	}
	return ls
}

// Encode returns the geometry as a Google encoded polyline (lat, lon order).
func (g RouteGeometry) Encode() string {
	if len(g) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(g))
	for _, c := range g {
		coords = append(coords, []float64{c.Y, c.X})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodeRouteGeometry parses a Google encoded polyline produced by Encode.
func DecodeRouteGeometry(encoded string) (RouteGeometry, error) {
	if encoded == "" {
		return RouteGeometry{}, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	g := make(RouteGeometry, 0, len(coords))
	for _, c := range coords {
		g = append(g, Coordinate{X: c[1], Y: c[0]})
	}
	return g, nil
}

func (g RouteGeometry) First() (Coordinate, bool) {
	if len(g) == 0 {
		return Coordinate{}, false
	}
	return g[0], true
}

func (g RouteGeometry) Last() (Coordinate, bool) {
	if len(g) == 0 {
		return Coordinate{}, false
	}
	return g[len(g)-1], true
}
