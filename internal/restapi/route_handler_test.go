package restapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/kakao/kakaotest"
	"busplanner.dev/internal/models"
)

func TestRouteHandlerSuccess(t *testing.T) {
	api, _ := createTestApi(t)
	server := serveApi(t, api)

	for _, path := range []string{"/route", NetlifyRoutePath} {
		t.Run(path, func(t *testing.T) {
			resp, payload := postRoute(t, server, path, `{"origin":"금남로4가","destination":"광주역"}`)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Empty(t, payload.Error)
			require.NotNil(t, payload.OriginCoordinate)
			require.NotNil(t, payload.DestinationCoordinate)
			assert.Equal(t, models.Coordinate{X: 126.9178, Y: 35.1496}, *payload.OriginCoordinate)
			assert.Equal(t, models.Coordinate{X: 126.9097, Y: 35.1655}, *payload.DestinationCoordinate)
			assert.NotEmpty(t, payload.Geometry)
			assert.Contains(t, string(payload.RouteData), `"sections"`)
			assert.NotEmpty(t, payload.Polyline)
			require.NotNil(t, payload.Summary)
			assert.Equal(t, 2300, payload.Summary.DistanceMeters)

			decoded, err := models.DecodeRouteGeometry(payload.Polyline)
			require.NoError(t, err)
			assert.Len(t, decoded, len(payload.Geometry))
		})
	}
}

func TestRouteHandlerGeocodeNotFound(t *testing.T) {
	api, kakaoServer := createTestApi(t)
	server := serveApi(t, api)

	resp, payload := postRoute(t, server, "/route", `{"origin":"존재하지않는정류장은행성","destination":"광주역"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "좌표를 찾을 수 없어요", payload.Error)
	assert.Equal(t, "notFound", payload.ErrorKind)
	assert.Nil(t, payload.OriginCoordinate)
	assert.NotNil(t, payload.DestinationCoordinate)
	assert.Empty(t, payload.RouteData)
	assert.Zero(t, kakaoServer.DirectionsCalls.Load())
}

func TestRouteHandlerFailuresAnswer200(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		setup   func(*kakaotest.Server)
		kind    string
		message string
	}{
		{
			name:    "malformed request body",
			body:    `{"origin":`,
			kind:    "validation",
			message: directions.MessageInvalidRequest,
		},
		{
			name:    "missing destination",
			body:    `{"origin":"금남로4가"}`,
			kind:    "validation",
			message: directions.MessageInvalidRequest,
		},
		{
			name:    "empty body",
			body:    ``,
			kind:    "validation",
			message: directions.MessageInvalidRequest,
		},
		{
			name:    "origin too long",
			body:    `{"origin":"` + strings.Repeat("역", 101) + `","destination":"광주역"}`,
			kind:    "validation",
			message: directions.MessageInvalidRequest,
		},
		{
			name: "provider returns garbage",
			body: `{"origin":"금남로4가","destination":"광주역"}`,
			setup: func(s *kakaotest.Server) {
				s.SetDirections(kakaotest.FixedBody(http.StatusOK, `not json`))
			},
			kind:    "transport",
			message: directions.MessageProviderUnavailable,
		},
		{
			name: "provider finds no route",
			body: `{"origin":"금남로4가","destination":"광주역"}`,
			setup: func(s *kakaotest.Server) {
				s.SetDirections(kakaotest.FixedBody(http.StatusOK, `{"routes":[{"result_code":104,"result_msg":"too close"}]}`))
			},
			kind:    "notFound",
			message: directions.MessageRouteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, kakaoServer := createTestApi(t)
			if tt.setup != nil {
				tt.setup(kakaoServer)
			}
			server := serveApi(t, api)

			resp, payload := postRoute(t, server, "/route", tt.body)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.message, payload.Error)
			assert.Equal(t, tt.kind, payload.ErrorKind)
		})
	}
}

func TestRouteHandlerRejectsGet(t *testing.T) {
	api, _ := createTestApi(t)
	server := serveApi(t, api)

	resp := getJSON(t, server, "/route", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
