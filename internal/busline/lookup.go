// Package busline answers the two questions the segment editor asks: which
// lines match a keyword, and which stops a line serves in order.
package busline

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/jamespfennell/gtfs"

	internalgtfs "busplanner.dev/internal/gtfs"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

// ErrLineNotFound is returned by ListStops for a line number nobody serves.
var ErrLineNotFound = errors.New("busline: line not found")

// Lookup is the bus/stop provider consumed by the editor.
type Lookup interface {
	SearchLines(ctx context.Context, keyword string) ([]models.LineRef, error)
	ListStops(ctx context.Context, lineNumber string) ([]models.StopName, error)
}

// FeedSource is the part of the GTFS manager used here.
type FeedSource interface {
	GetRoutes() []gtfs.Route
	StopNamesForRoute(routeID string) ([]string, bool)
}

var _ FeedSource = (*internalgtfs.Manager)(nil)

// FeedLookup serves lines from a GTFS feed. A line number is a route short
// name; when several routes share it the first one with stops wins.
type FeedLookup struct {
	feed   FeedSource
	logger *slog.Logger
}

func NewFeedLookup(feed FeedSource, logger *slog.Logger) *FeedLookup {
	return &FeedLookup{feed: feed, logger: logging.ForComponent(logger, "busline")}
}

// SearchLines matches keyword case-insensitively against the short and long
// names. An empty keyword matches nothing.
func (l *FeedLookup) SearchLines(ctx context.Context, keyword string) ([]models.LineRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	lines := []models.LineRef{}
	if keyword == "" {
		return lines, nil
	}

	seen := make(map[string]bool)
	for _, route := range l.feed.GetRoutes() {
		number := route.ShortName
		if number == "" {
			number = route.Id
		}
		if seen[number] {
			continue
		}
		if !strings.Contains(strings.ToLower(number), keyword) &&
			!strings.Contains(strings.ToLower(route.LongName), keyword) {
			continue
		}
		seen[number] = true
		lines = append(lines, models.LineRef{Number: number, Name: route.LongName})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lessLineNumber(lines[i].Number, lines[j].Number)
	})
	return lines, nil
}

// ListStops returns the stops of lineNumber in travel order.
func (l *FeedLookup) ListStops(ctx context.Context, lineNumber string) ([]models.StopName, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lineNumber = strings.TrimSpace(lineNumber)

	found := false
	for _, route := range l.feed.GetRoutes() {
		if route.ShortName != lineNumber && !(route.ShortName == "" && route.Id == lineNumber) {
			continue
		}
		names, ok := l.feed.StopNamesForRoute(route.Id)
		if !ok {
			continue
		}
		found = true
		if len(names) > 0 {
			return names, nil
		}
	}
	if !found {
		logging.LogOperation(l.logger, "line_not_found", slog.String("line", lineNumber))
		return nil, ErrLineNotFound
	}
	return []models.StopName{}, nil
}

// lessLineNumber orders shorter numbers first so "7" precedes "70" and "700".
func lessLineNumber(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
