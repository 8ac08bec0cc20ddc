package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/require"

	"busplanner.dev/internal/app"
	"busplanner.dev/internal/appconf"
	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/geocode"
	internalgtfs "busplanner.dev/internal/gtfs"
	"busplanner.dev/internal/kakao"
	"busplanner.dev/internal/kakao/kakaotest"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
)

const testHint = "광주 버스정류장"

// createTestApi wires a RestAPI against a fake Kakao server and an in-memory feed.
func createTestApi(t *testing.T) (*RestAPI, *kakaotest.Server) {
	t.Helper()
	server := kakaotest.NewServer(t)
	server.AddPlace("금남로4가 "+testHint, 126.9178, 35.1496)
	server.AddPlace("광주역 "+testHint, 126.9097, 35.1655)

	client := kakao.NewClient(server.Config())
	resolver := geocode.NewResolver(client, testHint, 0, slog.Default())

	manager := internalgtfs.NewManagerFromStatic(&gtfs.Static{}, nil)
	manager.MockAddRoute("r1187", "1187", "송정공원역-광주역")
	manager.MockAddRoute("r518", "518", "금남로-운천저수지")
	manager.MockAddTrip("t1187", "r1187", "송정공원역", "광주송정역", "금남로4가", "광주역")

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.RateLimit = 0

	application := &app.Application{
		Config:      cfg,
		Logger:      slog.Default(),
		Directions:  directions.NewService(resolver, client, "", slog.Default()),
		Lines:       busline.NewFeedLookup(manager, nil),
		GtfsManager: manager,
	}
	return NewRestAPI(application), server
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return server
}

// postRoute posts body to path and decodes the route payload.
func postRoute(t *testing.T, server *httptest.Server, path, body string) (*http.Response, models.RouteResponse) {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, slog.Default(), "http_response_body")

	var payload models.RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func getJSON(t *testing.T, server *httptest.Server, path string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, slog.Default(), "http_response_body")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	if out != nil && buf.Len() > 0 {
		require.NoError(t, json.Unmarshal(buf.Bytes(), out))
	}
	return resp
}
