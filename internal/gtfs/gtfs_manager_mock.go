package gtfs

import (
	"github.com/jamespfennell/gtfs"
)

// MockAddRoute appends a route to the feed unless its id already exists.
func (m *Manager) MockAddRoute(id, shortName, longName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.gtfsData.Routes {
		if r.Id == id {
			return
		}
	}
	m.gtfsData.Routes = append(m.gtfsData.Routes, gtfs.Route{
		Id:        id,
		ShortName: shortName,
		LongName:  longName,
	})
}

// MockAddTrip appends a trip on routeID visiting stopNames in order and
// rebuilds the derived stop lists.
func (m *Manager) MockAddTrip(tripID, routeID string, stopNames ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.gtfsData.Trips {
		if t.ID == tripID {
			return
		}
	}
	trip := gtfs.ScheduledTrip{
		ID:    tripID,
		Route: &gtfs.Route{Id: routeID},
	}
	for i, name := range stopNames {
		stop := &gtfs.Stop{Id: tripID + "-" + name, Name: name}
		m.gtfsData.Stops = append(m.gtfsData.Stops, *stop)
		trip.StopTimes = append(trip.StopTimes, gtfs.ScheduledStopTime{
			Stop:         stop,
			StopSequence: i + 1,
		})
	}
	m.gtfsData.Trips = append(m.gtfsData.Trips, trip)
	m.routeStops = buildRouteStops(m.gtfsData)
}
