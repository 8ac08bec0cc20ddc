package busline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bluele/gcache"

	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

// CachedLookup memoizes ListStops in an LRU. Line searches are passed
// through since they are keyed by arbitrary user input.
type CachedLookup struct {
	next   Lookup
	stops  gcache.Cache
	logger *slog.Logger
}

func NewCachedLookup(next Lookup, size int, ttl time.Duration, logger *slog.Logger) *CachedLookup {
	builder := gcache.New(size).LRU()
	if ttl > 0 {
		builder = builder.Expiration(ttl)
	}
	return &CachedLookup{
		next:   next,
		stops:  builder.Build(),
		logger: logging.ForComponent(logger, "busline_cache"),
	}
}

func (c *CachedLookup) SearchLines(ctx context.Context, keyword string) ([]models.LineRef, error) {
	return c.next.SearchLines(ctx, keyword)
}

func (c *CachedLookup) ListStops(ctx context.Context, lineNumber string) ([]models.StopName, error) {
	v, err := c.stops.Get(lineNumber)
	if err == nil {
		return append([]models.StopName(nil), v.([]models.StopName)...), nil
	}
	if !errors.Is(err, gcache.KeyNotFoundError) {
		logging.LogError(c.logger, "stop cache read failed", err, slog.String("line", lineNumber))
	}

	stops, err := c.next.ListStops(ctx, lineNumber)
	if err != nil {
		return nil, err
	}
	if err := c.stops.Set(lineNumber, append([]models.StopName(nil), stops...)); err != nil {
		logging.LogError(c.logger, "stop cache write failed", err, slog.String("line", lineNumber))
	}
	return stops, nil
}
