package render

import (
	"fmt"

	"busplanner.dev/internal/planner"
)

type SummaryLine struct {
	Index int
	Color string
	Text  string
}

// Summary lists legs in plan order as "<number>번 · <from> → <to>",
// independent of the order their routes resolved in.
func Summary(legs []planner.Leg) []SummaryLine {
	lines := make([]SummaryLine, 0, len(legs))
	for _, leg := range legs {
		number := ""
		if leg.Segment.Bus != nil {
			number = leg.Segment.Bus.Number
		}
		lines = append(lines, SummaryLine{
			Index: leg.Index,
			Color: ColorFor(leg.Index),
			Text:  fmt.Sprintf("%s번 · %s → %s", number, leg.Segment.From, leg.Segment.To),
		})
	}
	return lines
}
