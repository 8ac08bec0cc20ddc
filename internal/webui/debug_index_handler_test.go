package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	internalgtfs "busplanner.dev/internal/gtfs"
)

func TestDebugIndexHandler(t *testing.T) {
	manager := internalgtfs.NewManagerFromStatic(&gtfs.Static{}, nil)
	manager.MockAddRoute("r518", "518", "금남로-운천저수지")
	manager.MockAddTrip("t518", "r518", "금남로4가", "상무지구")

	router := httprouter.New()
	(&WebUI{GtfsManager: manager}).SetWebUIRoutes(router)

	tests := []struct {
		dataType string
		contains string
	}{
		{"lines", "금남로-운천저수지"},
		{"stops", "상무지구"},
		{"warnings", "[]string"},
		{"stats", "routes"},
		{"", "Choose a data type"},
	}
	for _, tt := range tests {
		t.Run("dataType="+tt.dataType, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug?dataType="+tt.dataType, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}
