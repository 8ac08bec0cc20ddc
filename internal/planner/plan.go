// Package planner holds the ordered list of route segments and the editor
// state machine that fills them in.
package planner

import (
	"errors"
	"fmt"

	"busplanner.dev/internal/models"
)

var (
	// ErrLastSegment is returned when removing the only remaining segment.
	ErrLastSegment = errors.New("planner: cannot remove the last segment")
	// ErrNoSuchSegment is returned for an index outside the plan.
	ErrNoSuchSegment = errors.New("planner: no such segment")
	// ErrIncompleteSegment is returned when saving without line, origin and destination.
	ErrIncompleteSegment = errors.New("planner: segment is incomplete")
)

// Leg is a complete segment together with its position in the plan.
type Leg struct {
	Index   int
	Segment models.Segment
}

// Plan is an ordered, never empty list of segments. Segment order is travel
// order. A Plan is not safe for concurrent use; observers receive snapshots.
type Plan struct {
	segments  []models.Segment
	observers []func([]models.Segment)
}

// NewPlan starts a plan with a single empty segment.
func NewPlan() *Plan {
	return &Plan{segments: []models.Segment{{}}}
}

// NewPlanFrom starts a plan from existing segments. An empty input yields a
// plan with one empty segment.
func NewPlanFrom(segments []models.Segment) *Plan {
	p := &Plan{}
	for _, s := range segments {
		p.segments = append(p.segments, s.Clone())
	}
	if len(p.segments) == 0 {
		p.segments = []models.Segment{{}}
	}
	return p
}

func (p *Plan) Len() int {
	return len(p.segments)
}

// Segments returns a copy of the list.
func (p *Plan) Segments() []models.Segment {
	out := make([]models.Segment, len(p.segments))
	for i, s := range p.segments {
		out[i] = s.Clone()
	}
	return out
}

func (p *Plan) Segment(index int) (models.Segment, error) {
	if index < 0 || index >= len(p.segments) {
		return models.Segment{}, fmt.Errorf("%w: %d", ErrNoSuchSegment, index)
	}
	return p.segments[index].Clone(), nil
}

// Add appends an empty segment and returns its index.
func (p *Plan) Add() int {
	p.segments = append(p.segments, models.Segment{})
	p.notify()
	return len(p.segments) - 1
}

// Remove deletes the segment at index, preserving the order of the rest.
func (p *Plan) Remove(index int) error {
	if index < 0 || index >= len(p.segments) {
		return fmt.Errorf("%w: %d", ErrNoSuchSegment, index)
	}
	if len(p.segments) == 1 {
		return ErrLastSegment
	}
	p.segments = append(p.segments[:index], p.segments[index+1:]...)
	p.notify()
	return nil
}

// Replace swaps in a complete segment at index.
func (p *Plan) Replace(index int, segment models.Segment) error {
	if index < 0 || index >= len(p.segments) {
		return fmt.Errorf("%w: %d", ErrNoSuchSegment, index)
	}
	if !segment.Complete() {
		return ErrIncompleteSegment
	}
	p.segments[index] = segment.Clone()
	p.notify()
	return nil
}

// Completed returns the complete segments in plan order.
func (p *Plan) Completed() []Leg {
	return CompletedLegs(p.segments)
}

func (p *Plan) CompletedCount() int {
	n := 0
	for _, s := range p.segments {
		if s.Complete() {
			n++
		}
	}
	return n
}

// Subscribe registers fn to be called with a snapshot after every change.
func (p *Plan) Subscribe(fn func([]models.Segment)) {
	p.observers = append(p.observers, fn)
}

func (p *Plan) notify() {
	if len(p.observers) == 0 {
		return
	}
	snapshot := p.Segments()
	for _, fn := range p.observers {
		fn(snapshot)
	}
}

// CompletedLegs picks the complete segments out of a snapshot.
func CompletedLegs(segments []models.Segment) []Leg {
	legs := []Leg{}
	for i, s := range segments {
		if s.Complete() {
			legs = append(legs, Leg{Index: i, Segment: s.Clone()})
		}
	}
	return legs
}
