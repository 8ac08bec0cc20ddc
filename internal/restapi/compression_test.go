package restapi

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionMiddleware(t *testing.T) {
	large := strings.Repeat(`{"x":126.9178,"y":35.1496},`, 200)
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(large))
	})

	t.Run("compresses response when gzip accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/route", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		CompressionMiddleware(testHandler).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(bytes.NewReader(recorder.Body.Bytes()))
		require.NoError(t, err)
		defer func() { _ = reader.Close() }()

		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, large, string(decompressed))
		assert.Less(t, recorder.Body.Len(), len(large))
	})

	t.Run("does not compress when gzip not accepted", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		CompressionMiddleware(testHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/route", nil))

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, large, recorder.Body.String())
	})

	t.Run("leaves small responses alone", func(t *testing.T) {
		small := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		NewCompressionMiddleware(DefaultCompressionConfig())(small).ServeHTTP(recorder, req)

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, `{"status":"ok"}`, recorder.Body.String())
	})
}

func TestCompressionSkipsUnlistedContentTypes(t *testing.T) {
	payload := strings.Repeat("binary-ish ", 400)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(payload))
	})
	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()

	CompressionMiddleware(handler).ServeHTTP(recorder, req)

	assert.Empty(t, recorder.Header().Get("Content-Encoding"))
	assert.Equal(t, payload, recorder.Body.String())
}

func TestCompressionWithoutContentTypeFilter(t *testing.T) {
	payload := strings.Repeat("binary-ish ", 400)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(payload))
	})
	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()

	NewCompressionMiddleware(CompressionConfig{MinSize: 1024, Level: 6})(handler).ServeHTTP(recorder, req)

	assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
	assert.Less(t, recorder.Body.Len(), len(payload))
}
