package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/models"
)

var (
	// ErrWrongState is returned by a transition not allowed in the current state.
	ErrWrongState = errors.New("planner: transition not allowed in current state")
	// ErrInvalidChoice is returned when choosing something that was not offered.
	ErrInvalidChoice = errors.New("planner: choice not offered")
)

type State int

const (
	SelectingLine State = iota
	SelectingStops
	Saved
)

func (s State) String() string {
	switch s {
	case SelectingLine:
		return "selecting_line"
	case SelectingStops:
		return "selecting_stops"
	case Saved:
		return "saved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SearchStatus distinguishes an idle search box from one that found nothing.
type SearchStatus int

const (
	SearchIdle SearchStatus = iota
	SearchNoResults
	SearchHasResults
)

// Editor walks one segment from line choice to a saved origin/destination
// pair. Choices it does not offer are rejected with ErrInvalidChoice.
type Editor struct {
	lookup busline.Lookup
	state  State

	draft        models.Segment
	lineSelected bool

	keyword    string
	candidates []models.LineRef

	stops     []models.StopName
	originIdx int
}

// NewEditor opens segment for editing. A segment that already has a line
// starts in SelectingStops with that line's stops loaded and any existing
// valid origin/destination kept.
func NewEditor(ctx context.Context, lookup busline.Lookup, segment models.Segment) (*Editor, error) {
	e := &Editor{lookup: lookup, state: SelectingLine, originIdx: -1}
	if segment.Bus == nil {
		return e, nil
	}

	stops, err := lookup.ListStops(ctx, segment.Bus.Number)
	if err != nil {
		return nil, fmt.Errorf("loading stops for %s: %w", segment.Bus, err)
	}
	e.draft = models.Segment{Bus: segment.Clone().Bus}
	e.lineSelected = true
	e.stops = stops
	e.state = SelectingStops

	if i := e.indexOf(segment.From); i >= 0 {
		e.originIdx = i
		e.draft.From = segment.From
		if j := e.indexOf(segment.To); j > i {
			e.draft.To = segment.To
		}
	}
	return e, nil
}

func (e *Editor) State() State {
	return e.state
}

// Draft returns the segment as chosen so far.
func (e *Editor) Draft() models.Segment {
	return e.draft.Clone()
}

// Search runs a line search for keyword. A blank keyword clears the
// candidates without calling the lookup.
func (e *Editor) Search(ctx context.Context, keyword string) error {
	if e.state != SelectingLine {
		return ErrWrongState
	}
	e.keyword = strings.TrimSpace(keyword)
	if e.keyword == "" {
		e.candidates = nil
		return nil
	}
	lines, err := e.lookup.SearchLines(ctx, e.keyword)
	if err != nil {
		return fmt.Errorf("searching lines for %q: %w", e.keyword, err)
	}
	e.candidates = lines
	return nil
}

func (e *Editor) Candidates() []models.LineRef {
	return append([]models.LineRef(nil), e.candidates...)
}

func (e *Editor) SearchStatus() SearchStatus {
	switch {
	case e.keyword == "":
		return SearchIdle
	case len(e.candidates) == 0:
		return SearchNoResults
	default:
		return SearchHasResults
	}
}

// SelectLine picks one of the current candidates, loads its stops and moves
// to SelectingStops. Origin and destination are always reset.
func (e *Editor) SelectLine(ctx context.Context, line models.LineRef) error {
	if e.state != SelectingLine {
		return ErrWrongState
	}
	offered := false
	for _, c := range e.candidates {
		if c.Number == line.Number {
			line = c
			offered = true
			break
		}
	}
	if !offered {
		return fmt.Errorf("%w: line %s", ErrInvalidChoice, line.Number)
	}

	stops, err := e.lookup.ListStops(ctx, line.Number)
	if err != nil {
		return fmt.Errorf("loading stops for %s: %w", line, err)
	}

	e.draft = models.Segment{Bus: &line}
	e.lineSelected = true
	e.stops = stops
	e.originIdx = -1
	e.state = SelectingStops
	return nil
}

// BackToLine returns to line selection. The chosen line and stops survive
// until another line is selected.
func (e *Editor) BackToLine() error {
	if e.state != SelectingStops || !e.lineSelected {
		return ErrWrongState
	}
	e.state = SelectingLine
	return nil
}

// ResumeStops goes forward again to the already chosen line without
// selecting a new one.
func (e *Editor) ResumeStops() error {
	if e.state != SelectingLine || !e.lineSelected {
		return ErrWrongState
	}
	e.state = SelectingStops
	return nil
}

// Stops returns the stop list of the chosen line in travel order.
func (e *Editor) Stops() []models.StopName {
	return append([]models.StopName(nil), e.stops...)
}

// DestinationChoices returns the stops after the chosen origin. It is empty
// until an origin is chosen.
func (e *Editor) DestinationChoices() []models.StopName {
	if e.originIdx < 0 {
		return []models.StopName{}
	}
	return append([]models.StopName{}, e.stops[e.originIdx+1:]...)
}

// SelectOrigin sets the origin and clears any destination.
func (e *Editor) SelectOrigin(stop models.StopName) error {
	if e.state != SelectingStops {
		return ErrWrongState
	}
	i := e.indexOf(stop)
	if i < 0 {
		return fmt.Errorf("%w: stop %q", ErrInvalidChoice, stop)
	}
	e.originIdx = i
	e.draft.From = stop
	e.draft.To = ""
	return nil
}

// SelectDestination accepts only a stop strictly after the origin.
func (e *Editor) SelectDestination(stop models.StopName) error {
	if e.state != SelectingStops {
		return ErrWrongState
	}
	if e.originIdx < 0 {
		return fmt.Errorf("%w: choose an origin first", ErrInvalidChoice)
	}
	if i := e.indexOf(stop); i <= e.originIdx {
		return fmt.Errorf("%w: stop %q", ErrInvalidChoice, stop)
	}
	e.draft.To = stop
	return nil
}

func (e *Editor) CanSave() bool {
	return e.state == SelectingStops && e.draft.Complete()
}

// Save finishes editing and returns the completed segment.
func (e *Editor) Save() (models.Segment, error) {
	if e.state != SelectingStops {
		return models.Segment{}, ErrWrongState
	}
	if !e.draft.Complete() {
		return models.Segment{}, ErrIncompleteSegment
	}
	e.state = Saved
	return e.draft.Clone(), nil
}

// SaveTo saves and writes the segment into plan at index.
func (e *Editor) SaveTo(plan *Plan, index int) error {
	if _, err := plan.Segment(index); err != nil {
		return err
	}
	segment, err := e.Save()
	if err != nil {
		return err
	}
	return plan.Replace(index, segment)
}

func (e *Editor) indexOf(stop models.StopName) int {
	if stop == "" {
		return -1
	}
	for i, s := range e.stops {
		if s == stop {
			return i
		}
	}
	return -1
}
