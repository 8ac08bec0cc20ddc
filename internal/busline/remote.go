package busline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

// RemoteLookup talks to the lines endpoints of a running planner API.
type RemoteLookup struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRemoteLookup(baseURL string, timeout time.Duration, logger *slog.Logger) *RemoteLookup {
	return &RemoteLookup{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.ForComponent(logger, "busline_remote"),
	}
}

type envelope[T any] struct {
	Code int    `json:"code"`
	Data T      `json:"data"`
	Text string `json:"text"`
}

func (r *RemoteLookup) SearchLines(ctx context.Context, keyword string) ([]models.LineRef, error) {
	var resp envelope[models.LinesData]
	if err := r.get(ctx, "/api/lines?q="+url.QueryEscape(keyword), &resp); err != nil {
		return nil, err
	}
	if resp.Data.Lines == nil {
		return []models.LineRef{}, nil
	}
	return resp.Data.Lines, nil
}

func (r *RemoteLookup) ListStops(ctx context.Context, lineNumber string) ([]models.StopName, error) {
	var resp envelope[models.StopsData]
	if err := r.get(ctx, "/api/lines/"+url.PathEscape(lineNumber)+"/stops", &resp); err != nil {
		return nil, err
	}
	if resp.Data.Stops == nil {
		return []models.StopName{}, nil
	}
	return resp.Data.Stops, nil
}

func (r *RemoteLookup) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building lines request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer logging.DrainAndClose(resp.Body, r.logger, "lines_response")

	if resp.StatusCode == http.StatusNotFound {
		return ErrLineNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requesting %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
