package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

// HTTPClient calls a remote directions handler. It satisfies RouteSource so the
// renderer can run against a deployed API.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPClient(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.ForComponent(logger, "directions_client"),
	}
}

// Route posts the pair to the handler. Error payloads come back as *Failure.
func (c *HTTPClient) Route(ctx context.Context, origin, destination string) (*models.RouteResult, error) {
	body, err := json.Marshal(models.RouteRequest{Origin: origin, Destination: destination})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Failure{Kind: Transport, Message: MessageProviderUnavailable, Detail: err.Error(), Err: err}
	}
	defer logging.DrainAndClose(resp.Body, c.logger, "route_response")

	var payload models.RouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Failure{
			Kind:    Transport,
			Message: MessageProviderUnavailable,
			Detail:  fmt.Sprintf("status %d: undecodable body: %v", resp.StatusCode, err),
			Err:     err,
		}
	}

	if payload.Error != "" {
		return nil, &Failure{
			Kind:                  ParseFailureKind(payload.ErrorKind),
			Message:               payload.Error,
			Detail:                payload.Detail,
			OriginCoordinate:      payload.OriginCoordinate,
			DestinationCoordinate: payload.DestinationCoordinate,
		}
	}

	result, ok := payload.Result()
	if !ok {
		return nil, &Failure{Kind: Transport, Message: MessageProviderUnavailable, Detail: "response is missing coordinates"}
	}
	return result, nil
}
