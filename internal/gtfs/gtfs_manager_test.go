package gtfs

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManagerFromStatic(&gtfs.Static{}, slog.Default())
}

func TestStopNamesForRouteUsesLongestTrip(t *testing.T) {
	manager := newTestManager()
	manager.MockAddRoute("r1", "1187", "송정공원역-광주역")
	manager.MockAddTrip("short", "r1", "송정공원역", "광주역")
	manager.MockAddTrip("long", "r1", "송정공원역", "광주송정역", "금남로4가", "광주역")

	names, ok := manager.StopNamesForRoute("r1")

	require.True(t, ok)
	assert.Equal(t, []string{"송정공원역", "광주송정역", "금남로4가", "광주역"}, names)
}

func TestStopNamesForRouteOrdersBySequence(t *testing.T) {
	a := &gtfs.Stop{Id: "a", Name: "A"}
	b := &gtfs.Stop{Id: "b", Name: "B"}
	c := &gtfs.Stop{Id: "c", Name: "C"}
	route := gtfs.Route{Id: "r", ShortName: "7"}
	static := &gtfs.Static{
		Routes: []gtfs.Route{route},
		Stops:  []gtfs.Stop{*a, *b, *c},
		Trips: []gtfs.ScheduledTrip{{
			ID:    "t",
			Route: &route,
			StopTimes: []gtfs.ScheduledStopTime{
				{Stop: c, StopSequence: 30},
				{Stop: a, StopSequence: 10},
				{Stop: b, StopSequence: 20},
				{Stop: a, StopSequence: 40},
			},
		}},
	}

	names, ok := NewManagerFromStatic(static, nil).StopNamesForRoute("r")

	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestStopNamesForRouteUnknown(t *testing.T) {
	manager := newTestManager()
	manager.MockAddRoute("r1", "1187", "")

	_, ok := manager.StopNamesForRoute("missing")
	assert.False(t, ok)

	names, ok := manager.StopNamesForRoute("r1")
	assert.True(t, ok)
	assert.Empty(t, names)
}

func TestInitGTFSManagerMissingFile(t *testing.T) {
	_, err := InitGTFSManager(context.Background(), Config{Source: "/nonexistent/feed.zip"}, nil)
	assert.Error(t, err)
}

func TestInitGTFSManagerRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := InitGTFSManager(context.Background(), Config{Source: srv.URL + "/feed.zip"}, nil)
	assert.ErrorContains(t, err, "status 404")
}

func TestManagerShutdown(t *testing.T) {
	manager := newTestManager()
	manager.config.Source = "http://example.invalid/feed.zip"
	manager.config.RefreshInterval = time.Hour
	manager.wg.Add(1)
	go manager.updateStaticGTFS()

	done := make(chan struct{})
	go func() {
		manager.Shutdown()
		manager.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown took too long")
	}
}

func TestWarningsAreBounded(t *testing.T) {
	manager := newTestManager()
	for i := 0; i < maxWarnings+5; i++ {
		manager.addWarning("w")
	}
	assert.Len(t, manager.Warnings(), maxWarnings)
}
