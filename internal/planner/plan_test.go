package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busplanner.dev/internal/models"
)

func complete(number, from, to string) models.Segment {
	return models.Segment{Bus: &models.LineRef{Number: number}, From: from, To: to}
}

func TestNewPlanHasOneEmptySegment(t *testing.T) {
	p := NewPlan()
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 0, p.CompletedCount())
	assert.Empty(t, p.Completed())
}

func TestRemoveLastSegmentIsRejected(t *testing.T) {
	p := NewPlan()
	err := p.Remove(0)
	assert.ErrorIs(t, err, ErrLastSegment)
	assert.Equal(t, 1, p.Len())
}

func TestRemovePreservesOrder(t *testing.T) {
	p := NewPlanFrom([]models.Segment{
		complete("1", "a", "b"),
		complete("2", "c", "d"),
		complete("3", "e", "f"),
	})

	require.NoError(t, p.Remove(1))

	require.Equal(t, 2, p.Len())
	segs := p.Segments()
	assert.Equal(t, "1", segs[0].Bus.Number)
	assert.Equal(t, "3", segs[1].Bus.Number)
}

func TestRemoveOutOfRange(t *testing.T) {
	p := NewPlan()
	p.Add()
	assert.ErrorIs(t, p.Remove(5), ErrNoSuchSegment)
	assert.ErrorIs(t, p.Remove(-1), ErrNoSuchSegment)
	assert.Equal(t, 2, p.Len())
}

func TestReplaceRequiresCompleteSegment(t *testing.T) {
	p := NewPlan()
	err := p.Replace(0, models.Segment{Bus: &models.LineRef{Number: "1"}, From: "a"})
	assert.ErrorIs(t, err, ErrIncompleteSegment)

	require.NoError(t, p.Replace(0, complete("1", "a", "b")))
	assert.Equal(t, 1, p.CompletedCount())
}

func TestCompletedKeepsPlanIndex(t *testing.T) {
	p := NewPlan()
	p.Add()
	p.Add()
	require.NoError(t, p.Replace(2, complete("7", "x", "y")))

	legs := p.Completed()
	require.Len(t, legs, 1)
	assert.Equal(t, 2, legs[0].Index)
	assert.Equal(t, 1, p.CompletedCount())
	assert.Equal(t, 3, p.Len())
}

func TestSegmentsAreCopies(t *testing.T) {
	p := NewPlanFrom([]models.Segment{complete("1", "a", "b")})
	segs := p.Segments()
	segs[0].Bus.Number = "999"

	s, err := p.Segment(0)
	require.NoError(t, err)
	assert.Equal(t, "1", s.Bus.Number)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	p := NewPlan()
	var lengths []int
	p.Subscribe(func(segs []models.Segment) { lengths = append(lengths, len(segs)) })

	p.Add()
	require.NoError(t, p.Replace(1, complete("1", "a", "b")))
	require.NoError(t, p.Remove(0))
	assert.ErrorIs(t, p.Remove(0), ErrLastSegment)

	assert.Equal(t, []int{2, 2, 1}, lengths)
}
