package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"busplanner.dev/internal/models"
	"busplanner.dev/internal/planner"
)

func TestSummaryFollowsPlanOrder(t *testing.T) {
	legs := []planner.Leg{
		{Index: 0, Segment: models.Segment{Bus: &models.LineRef{Number: "1187"}, From: "송정공원역", To: "광주역"}},
		{Index: 2, Segment: models.Segment{Bus: &models.LineRef{Number: "518"}, From: "금남로4가", To: "상무지구"}},
	}

	lines := Summary(legs)

	assert.Equal(t, []SummaryLine{
		{Index: 0, Color: "#FF6B35", Text: "1187번 · 송정공원역 → 광주역"},
		{Index: 2, Color: "#45B7D1", Text: "518번 · 금남로4가 → 상무지구"},
	}, lines)
	assert.Empty(t, Summary(nil))
}

func TestStyleFor(t *testing.T) {
	style := StyleFor(7)
	assert.Equal(t, PathStyle{Color: "#4ECDC4", Weight: 5, Opacity: 0.9, Dash: "solid"}, style)
}
