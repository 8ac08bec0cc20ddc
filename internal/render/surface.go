package render

import "busplanner.dev/internal/models"

// SegmentLayer is everything drawn for one segment: the path, a marker at
// each end and the stroke style.
type SegmentLayer struct {
	Index       int
	Line        models.LineRef
	From        models.StopName
	To          models.StopName
	Path        models.RouteGeometry
	Origin      models.Coordinate
	Destination models.Coordinate
	Style       PathStyle
}

// Surface is the map a renderer draws onto. Drawing a segment index again
// replaces the earlier layer for that index.
type Surface interface {
	DrawSegment(layer SegmentLayer) error
	SetCenter(center models.Coordinate) error
	// Retain drops every layer whose index is not listed.
	Retain(indexes []int) error
}

// SurfaceFactory creates the surface on first use.
type SurfaceFactory func() (Surface, error)
