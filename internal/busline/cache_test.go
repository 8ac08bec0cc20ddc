package busline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busplanner.dev/internal/models"
)

type countingLookup struct {
	Lookup
	stopCalls atomic.Int64
}

func (c *countingLookup) ListStops(ctx context.Context, lineNumber string) ([]models.StopName, error) {
	c.stopCalls.Add(1)
	return c.Lookup.ListStops(ctx, lineNumber)
}

func TestCachedLookupMemoizesStops(t *testing.T) {
	inner := &countingLookup{Lookup: NewFeedLookup(newTestFeed(), nil)}
	cached := NewCachedLookup(inner, 8, time.Minute, nil)
	ctx := context.Background()

	first, err := cached.ListStops(ctx, "1187")
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := cached.ListStops(ctx, "1187")
	require.NoError(t, err)

	assert.Equal(t, "송정공원역", second[0])
	assert.Equal(t, int64(1), inner.stopCalls.Load())
}

func TestCachedLookupDoesNotCacheErrors(t *testing.T) {
	inner := &countingLookup{Lookup: NewFeedLookup(newTestFeed(), nil)}
	cached := NewCachedLookup(inner, 8, 0, nil)

	for i := 0; i < 2; i++ {
		_, err := cached.ListStops(context.Background(), "0000")
		assert.ErrorIs(t, err, ErrLineNotFound)
	}
	assert.Equal(t, int64(2), inner.stopCalls.Load())
}
