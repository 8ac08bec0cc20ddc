package restapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"busplanner.dev/internal/logging"
)

func TestRequestLoggingMiddleware(t *testing.T) {
	t.Run("logs HTTP request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		})

		handler := NewRequestLoggingMiddleware(logger)(testHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/lines?q=518", nil)
		req.Header.Set("User-Agent", "test-client/1.0")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "test response", recorder.Body.String())

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/api/lines"`)
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"user_agent":"test-client/1.0"`)
		assert.Contains(t, output, `"duration_ms":`)
		assert.Contains(t, output, `"component":"http_server"`)
		assert.Contains(t, output, `"request_id":"`)
	})

	t.Run("assigns a request id", func(t *testing.T) {
		handler := NewRequestLoggingMiddleware(logging.NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/route", nil))

		_, err := uuid.Parse(recorder.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("reuses an incoming request id", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewRequestLoggingMiddleware(logging.NewStructuredLogger(&buf, slog.LevelInfo))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logging.FromContext(r.Context()).Info("inside")
			}))

		req := httptest.NewRequest(http.MethodPost, "/route", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"request_id":"abc-123"`)))
	})

	t.Run("captures error status", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewRequestLoggingMiddleware(logging.NewStructuredLogger(&buf, slog.LevelInfo))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/lines/0000/stops", nil))

		assert.Contains(t, buf.String(), `"status":404`)
	})
}
