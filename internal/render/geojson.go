package render

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/paulmach/orb/geojson"

	"busplanner.dev/internal/models"
)

// GeoJSONSurface keeps drawn segments in memory and exports them as a
// GeoJSON FeatureCollection. Paths use simplestyle stroke properties.
type GeoJSONSurface struct {
	mu     sync.Mutex
	center models.Coordinate
	level  int
	layers map[int]SegmentLayer
}

// NewGeoJSONSurface creates a surface centered at center with zoom level.
func NewGeoJSONSurface(center models.Coordinate, level int) *GeoJSONSurface {
	return &GeoJSONSurface{center: center, level: level, layers: make(map[int]SegmentLayer)}
}

func (s *GeoJSONSurface) DrawSegment(layer SegmentLayer) error {
	if len(layer.Path) < 2 {
		return fmt.Errorf("segment %d: path needs at least two points, got %d", layer.Index, len(layer.Path))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers[layer.Index] = layer
	return nil
}

func (s *GeoJSONSurface) Retain(indexes []int) error {
	keep := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		keep[i] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layers {
		if !keep[i] {
			delete(s.layers, i)
		}
	}
	return nil
}

func (s *GeoJSONSurface) SetCenter(center models.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
	return nil
}

func (s *GeoJSONSurface) Center() models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center
}

// Layer returns the layer drawn for a segment index.
func (s *GeoJSONSurface) Layer(index int) (SegmentLayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.layers[index]
	return l, ok
}

// FeatureCollection renders one path and two markers per segment, ordered by
// segment index. The center and level are carried as foreign members.
func (s *GeoJSONSurface) FeatureCollection() *geojson.FeatureCollection {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexes := make([]int, 0, len(s.layers))
	for i := range s.layers {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	fc := geojson.NewFeatureCollection()
	for _, i := range indexes {
		layer := s.layers[i]

		path := geojson.NewFeature(layer.Path.LineString())
		path.Properties["segment"] = layer.Index
		path.Properties["line"] = layer.Line.Number
		path.Properties["from"] = layer.From
		path.Properties["to"] = layer.To
		path.Properties["stroke"] = layer.Style.Color
		path.Properties["stroke-width"] = layer.Style.Weight
		path.Properties["stroke-opacity"] = layer.Style.Opacity
		path.Properties["stroke-style"] = layer.Style.Dash
		fc.Append(path)

		fc.Append(marker(layer, "origin", layer.From, layer.Origin))
		fc.Append(marker(layer, "destination", layer.To, layer.Destination))
	}

	fc.ExtraMembers = geojson.Properties{
		"center": s.center.Point(),
		"level":  s.level,
	}
	return fc
}

func marker(layer SegmentLayer, role string, name models.StopName, at models.Coordinate) *geojson.Feature {
	f := geojson.NewFeature(at.Point())
	f.Properties["segment"] = layer.Index
	f.Properties["role"] = role
	f.Properties["name"] = name
	f.Properties["marker-color"] = layer.Style.Color
	return f
}

func (s *GeoJSONSurface) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.FeatureCollection())
}

// WriteFile writes the collection to path.
func (s *GeoJSONSurface) WriteFile(path string) error {
	b, err := json.MarshalIndent(s.FeatureCollection(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
