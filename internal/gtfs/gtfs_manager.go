// Package gtfs keeps a parsed GTFS static feed in memory and derives the
// bus line and stop sequences the planner offers.
package gtfs

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jamespfennell/gtfs"

	"busplanner.dev/internal/logging"
)

const maxWarnings = 20

// Manager manages the GTFS data and provides methods to access it
type Manager struct {
	config       Config
	logger       *slog.Logger
	mu           sync.RWMutex
	gtfsData     *gtfs.Static
	routeStops   map[string][]string
	lastUpdated  time.Time
	warnings     []string
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitGTFSManager loads the feed named by config.Source. Remote feeds are
// refreshed in the background until Shutdown.
func InitGTFSManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	logger = logging.ForComponent(logger, "gtfs")
	isLocalFile := config.isLocalFile()

	staticData, err := loadGTFSData(ctx, config.Source, isLocalFile, logger)
	if err != nil {
		return nil, err
	}

	manager := newManager(config, logger)
	manager.setStaticGTFS(staticData)

	if !isLocalFile {
		manager.wg.Add(1)
		go manager.updateStaticGTFS()
	}
	return manager, nil
}

// NewManagerFromStatic wraps an already parsed feed. It never refreshes.
func NewManagerFromStatic(staticData *gtfs.Static, logger *slog.Logger) *Manager {
	manager := newManager(Config{}, logging.ForComponent(logger, "gtfs"))
	manager.setStaticGTFS(staticData)
	return manager
}

func newManager(config Config, logger *slog.Logger) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
}

// Shutdown gracefully shuts down the manager and its background goroutines
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}

func (manager *Manager) setStaticGTFS(staticData *gtfs.Static) {
	routeStops := buildRouteStops(staticData)

	manager.mu.Lock()
	manager.gtfsData = staticData
	manager.routeStops = routeStops
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	logging.LogOperation(manager.logger, "gtfs_loaded",
		slog.String("source", manager.config.Source),
		slog.Int("routes", len(staticData.Routes)),
		slog.Int("stops", len(staticData.Stops)),
		slog.Int("trips", len(staticData.Trips)))
}

// buildRouteStops picks, per route, the trip with the most stop times and
// returns its stop names in stop_sequence order. A name already seen on the
// trip is skipped so loop routes list each stop once.
func buildRouteStops(staticData *gtfs.Static) map[string][]string {
	longest := make(map[string]*gtfs.ScheduledTrip)
	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil {
			continue
		}
		if current, ok := longest[trip.Route.Id]; !ok || len(trip.StopTimes) > len(current.StopTimes) {
			longest[trip.Route.Id] = trip
		}
	}

	routeStops := make(map[string][]string, len(longest))
	for routeID, trip := range longest {
		stopTimes := make([]gtfs.ScheduledStopTime, len(trip.StopTimes))
		copy(stopTimes, trip.StopTimes)
		sort.SliceStable(stopTimes, func(i, j int) bool {
			return stopTimes[i].StopSequence < stopTimes[j].StopSequence
		})

		seen := make(map[string]bool, len(stopTimes))
		names := make([]string, 0, len(stopTimes))
		for _, st := range stopTimes {
			if st.Stop == nil || st.Stop.Name == "" || seen[st.Stop.Name] {
				continue
			}
			seen[st.Stop.Name] = true
			names = append(names, st.Stop.Name)
		}
		routeStops[routeID] = names
	}
	return routeStops
}

// GetRoutes returns the routes of the current feed.
func (manager *Manager) GetRoutes() []gtfs.Route {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.gtfsData.Routes
}

// StopNamesForRoute returns the ordered stop names of routeID. The second
// result is false when the route is not in the feed.
func (manager *Manager) StopNamesForRoute(routeID string) ([]string, bool) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	names, ok := manager.routeStops[routeID]
	if !ok {
		for _, r := range manager.gtfsData.Routes {
			if r.Id == routeID {
				return []string{}, true
			}
		}
		return nil, false
	}
	return append([]string(nil), names...), true
}

func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

// Warnings returns recent refresh problems, oldest first.
func (manager *Manager) Warnings() []string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return append([]string(nil), manager.warnings...)
}

func (manager *Manager) addWarning(w string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.warnings = append(manager.warnings, w)
	if len(manager.warnings) > maxWarnings {
		manager.warnings = manager.warnings[len(manager.warnings)-maxWarnings:]
	}
}

// Statistics summarizes the loaded feed.
func (manager *Manager) Statistics() map[string]interface{} {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return map[string]interface{}{
		"source":      manager.config.Source,
		"lastUpdated": manager.lastUpdated,
		"routes":      len(manager.gtfsData.Routes),
		"stops":       len(manager.gtfsData.Stops),
		"trips":       len(manager.gtfsData.Trips),
	}
}
