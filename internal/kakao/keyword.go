package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"busplanner.dev/internal/models"
)

// Place is one keyword search document. Coordinates arrive as strings.
type Place struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	CategoryName    string `json:"category_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	X               string `json:"x"`
	Y               string `json:"y"`
}

// Coordinate parses the document's x/y strings.
func (p Place) Coordinate() (models.Coordinate, error) {
	x, err := strconv.ParseFloat(p.X, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: place %q x=%q", ErrMalformedResponse, p.PlaceName, p.X)
	}
	y, err := strconv.ParseFloat(p.Y, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: place %q y=%q", ErrMalformedResponse, p.PlaceName, p.Y)
	}
	return models.Coordinate{X: x, Y: y}, nil
}

type keywordResponse struct {
	Documents []Place `json:"documents"`
	Meta      struct {
		TotalCount int  `json:"total_count"`
		IsEnd      bool `json:"is_end"`
	} `json:"meta"`
}

// SearchKeyword returns up to size ranked places matching query. Zero matches
// is an empty slice, not an error.
func (c *Client) SearchKeyword(ctx context.Context, query string, size int) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}

	body, err := c.get(ctx, "keyword_search", c.localBaseURL, "/v2/local/search/keyword.json", params)
	if err != nil {
		return nil, err
	}

	var decoded keywordResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: keyword search: %v", ErrMalformedResponse, err)
	}
	if decoded.Documents == nil {
		return []Place{}, nil
	}
	return decoded.Documents, nil
}
