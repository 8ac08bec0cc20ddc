// Package webui serves a plain debug page dumping the loaded line data.
package webui

import (
	"html/template"
	"log/slog"
	"net/http"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/julienschmidt/httprouter"

	"busplanner.dev/internal/gtfs"
	"busplanner.dev/internal/logging"
)

var debugTemplate = template.Must(template.New("debug").Parse(`<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p><a href="?dataType=lines">lines</a> · <a href="?dataType=stops">stops</a> · <a href="?dataType=warnings">warnings</a> · <a href="?dataType=stats">stats</a></p>
<pre>{{.Pre}}</pre>
</body>
</html>
`))

type WebUI struct {
	GtfsManager *gtfs.Manager
	Logger      *slog.Logger
}

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug", webUI.debugIndexHandler)
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{Title: title, Pre: spew.Sdump(data)})
	if err != nil {
		logging.LogError(webUI.Logger, "failed to render debug page", err)
	}
}

type lineSummary struct {
	ID        string
	ShortName string
	LongName  string
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "lines":
		routes := webUI.GtfsManager.GetRoutes()
		lines := make([]lineSummary, 0, len(routes))
		for _, route := range routes {
			lines = append(lines, lineSummary{ID: route.Id, ShortName: route.ShortName, LongName: route.LongName})
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].ShortName < lines[j].ShortName })
		data = lines
		title = "Lines"
	case "stops":
		stops := make(map[string][]string)
		for _, route := range webUI.GtfsManager.GetRoutes() {
			names, _ := webUI.GtfsManager.StopNamesForRoute(route.Id)
			stops[route.ShortName] = names
		}
		data = stops
		title = "Stop sequences by line"
	case "warnings":
		data = webUI.GtfsManager.Warnings()
		title = "Feed refresh warnings"
	case "stats":
		data = webUI.GtfsManager.Statistics()
		title = "Feed statistics"
	default:
		data = map[string]string{
			"error": "Please use one of the following: lines, stops, warnings, stats.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
