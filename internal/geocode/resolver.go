// Package geocode resolves free-text stop names to coordinates.
package geocode

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"busplanner.dev/internal/kakao"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

// ErrNotFound means the provider returned no match. It is a normal result,
// not a transport failure.
var ErrNotFound = errors.New("geocode: no matching place")

// KeywordSearcher is the provider call the resolver needs.
type KeywordSearcher interface {
	SearchKeyword(ctx context.Context, query string, size int) ([]kakao.Place, error)
}

// Resolver appends a regional hint to every query and asks for the single
// top-ranked match. Successful lookups are memoized for the configured TTL.
type Resolver struct {
	searcher KeywordSearcher
	hint     string
	memo     *cache.Cache
	logger   *slog.Logger
}

// NewResolver creates a resolver. A ttl of zero disables memoization.
func NewResolver(searcher KeywordSearcher, regionHint string, ttl time.Duration, logger *slog.Logger) *Resolver {
	r := &Resolver{
		searcher: searcher,
		hint:     regionHint,
		logger:   logging.ForComponent(logger, "geocoder"),
	}
	if ttl > 0 {
		r.memo = cache.New(ttl, 2*ttl)
	}
	return r
}

// Resolve looks up placeName with the resolver's default region hint.
func (r *Resolver) Resolve(ctx context.Context, placeName string) (models.Coordinate, error) {
	return r.ResolveCoordinate(ctx, placeName, r.hint)
}

// ResolveCoordinate looks up placeName scoped by regionHint.
func (r *Resolver) ResolveCoordinate(ctx context.Context, placeName, regionHint string) (models.Coordinate, error) {
	name := strings.TrimSpace(placeName)
	if name == "" {
		return models.Coordinate{}, ErrNotFound
	}
	query := BuildQuery(name, regionHint)

	if r.memo != nil {
		if v, ok := r.memo.Get(query); ok {
			return v.(models.Coordinate), nil
		}
	}

	places, err := r.searcher.SearchKeyword(ctx, query, 1)
	if err != nil {
		return models.Coordinate{}, err
	}
	if len(places) == 0 {
		logging.LogOperation(r.logger, "geocode_not_found", slog.String("query", query))
		return models.Coordinate{}, ErrNotFound
	}

	coord, err := places[0].Coordinate()
	if err != nil {
		return models.Coordinate{}, err
	}

	if r.memo != nil {
		r.memo.SetDefault(query, coord)
	}
	return coord, nil
}

// BuildQuery joins a place name with a region hint.
func BuildQuery(placeName, regionHint string) string {
	hint := strings.TrimSpace(regionHint)
	if hint == "" {
		return placeName
	}
	return placeName + " " + hint
}
