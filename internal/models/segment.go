package models

import "fmt"

// LineRef identifies a bus line. It is never mutated once selected.
type LineRef struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

func (l LineRef) String() string {
	return fmt.Sprintf("%s번", l.Number)
}

// StopName names a stop within the ordered stop sequence of one line.
type StopName = string

// Segment is one leg of a planned trip.
type Segment struct {
	Bus  *LineRef `json:"bus"`
	From StopName `json:"from"`
	To   StopName `json:"to"`
}

// Complete reports whether line, origin and destination are all set.
func (s Segment) Complete() bool {
	return s.Bus != nil && s.From != "" && s.To != ""
}

// Clone returns a copy that does not share the line reference.
func (s Segment) Clone() Segment {
	out := s
	if s.Bus != nil {
		bus := *s.Bus
		out.Bus = &bus
	}
	return out
}
