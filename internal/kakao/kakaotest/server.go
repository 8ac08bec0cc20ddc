// Package kakaotest provides an in-process fake of the Kakao Local and
// Mobility endpoints for tests.
package kakaotest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"busplanner.dev/internal/appconf"
)

const APIKey = "test-kakao-key"

// DirectionsFunc produces the status and body for a directions request.
type DirectionsFunc func(origin, destination [2]float64) (int, string)

type Server struct {
	*httptest.Server

	mu             sync.Mutex
	places         map[string][2]float64
	keywordDelay   map[string]time.Duration
	directions     DirectionsFunc
	keywordQueries []string

	KeywordCalls    atomic.Int64
	DirectionsCalls atomic.Int64
}

// NewServer starts a fake that answers both APIs on one listener.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		places:       make(map[string][2]float64),
		keywordDelay: make(map[string]time.Duration),
		directions:   StraightRoute,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/local/search/keyword.json", s.keyword)
	mux.HandleFunc("GET /v1/directions", s.route)
	s.Server = httptest.NewServer(s.requireKey(mux))
	t.Cleanup(s.Close)
	return s
}

// Config returns a KakaoConfig pointing at the fake.
func (s *Server) Config() appconf.KakaoConfig {
	return appconf.KakaoConfig{
		RestAPIKey:   APIKey,
		LocalBaseURL: s.URL,
		NaviBaseURL:  s.URL,
		Priority:     "RECOMMEND",
		TimeoutMS:    2000,
	}
}

// AddPlace registers the coordinate returned for an exact keyword query.
func (s *Server) AddPlace(query string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[query] = [2]float64{x, y}
}

// DelayKeyword makes the keyword search for query wait before answering.
func (s *Server) DelayKeyword(query string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywordDelay[query] = d
}

func (s *Server) SetDirections(fn DirectionsFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directions = fn
}

// KeywordQueries returns the queries received so far, in arrival order.
func (s *Server) KeywordQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keywordQueries...)
}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "KakaoAK "+APIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errorType":"AccessDeniedError","message":"wrong appKey"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) keyword(w http.ResponseWriter, r *http.Request) {
	s.KeywordCalls.Add(1)
	query := r.URL.Query().Get("query")

	s.mu.Lock()
	s.keywordQueries = append(s.keywordQueries, query)
	coord, found := s.places[query]
	delay := s.keywordDelay[query]
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	documents := []map[string]string{}
	if found {
		documents = append(documents, map[string]string{
			"id":         "1",
			"place_name": strings.Fields(query)[0],
			"x":          strconv.FormatFloat(coord[0], 'f', -1, 64),
			"y":          strconv.FormatFloat(coord[1], 'f', -1, 64),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"documents": documents,
		"meta":      map[string]interface{}{"total_count": len(documents), "is_end": true},
	})
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	s.DirectionsCalls.Add(1)
	origin, err1 := parsePair(r.URL.Query().Get("origin"))
	destination, err2 := parsePair(r.URL.Query().Get("destination"))
	if err1 != nil || err2 != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-2,"msg":"invalid coordinate"}`))
		return
	}

	s.mu.Lock()
	fn := s.directions
	s.mu.Unlock()

	status, body := fn(origin, destination)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func parsePair(v string) ([2]float64, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return [2]float64{}, fmt.Errorf("bad pair %q", v)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return [2]float64{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{x, y}, nil
}

// StraightRoute answers with one route of two roads running from origin
// through the midpoint to destination.
func StraightRoute(origin, destination [2]float64) (int, string) {
	mid := [2]float64{(origin[0] + destination[0]) / 2, (origin[1] + destination[1]) / 2}
	body := map[string]interface{}{
		"trans_id": "fake",
		"routes": []interface{}{
			map[string]interface{}{
				"result_code": 0,
				"result_msg":  "길찾기 성공",
				"summary":     map[string]interface{}{"distance": 2300, "duration": 480},
				"sections": []interface{}{
					map[string]interface{}{
						"distance": 2300,
						"duration": 480,
						"roads": []interface{}{
							map[string]interface{}{"name": "금남로", "vertexes": []float64{origin[0], origin[1], mid[0], mid[1]}},
							map[string]interface{}{"name": "무등로", "vertexes": []float64{mid[0], mid[1], destination[0], destination[1]}},
						},
					},
				},
			},
		},
	}
	encoded, _ := json.Marshal(body)
	return http.StatusOK, string(encoded)
}

// FixedBody always answers with the given status and body.
func FixedBody(status int, body string) DirectionsFunc {
	return func(_, _ [2]float64) (int, string) {
		return status, body
	}
}
