package restapi

import (
	"errors"
	"net/http"

	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/models"
	"busplanner.dev/internal/utils"
)

func (api *RestAPI) searchLinesHandler(w http.ResponseWriter, r *http.Request) {
	keyword := utils.SanitizeInput(r.URL.Query().Get("q"))
	if err := utils.ValidateQuery(keyword); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"q": {err.Error()}})
		return
	}

	lines, err := api.Lines.SearchLines(r.Context(), keyword)
	if err != nil {
		api.badGatewayResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(models.LinesData{Lines: lines}))
}

func (api *RestAPI) lineStopsHandler(w http.ResponseWriter, r *http.Request) {
	number := utils.ExtractParam(r, "number")
	if err := utils.ValidateLineNumber(number); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"number": {err.Error()}})
		return
	}

	stops, err := api.Lines.ListStops(r.Context(), number)
	if errors.Is(err, busline.ErrLineNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.badGatewayResponse(w, r, err)
		return
	}

	line := models.LineRef{Number: number}
	if candidates, err := api.Lines.SearchLines(r.Context(), number); err == nil {
		for _, c := range candidates {
			if c.Number == number {
				line = c
				break
			}
		}
	}

	api.sendResponse(w, r, models.NewOKResponse(models.StopsData{Line: line, Stops: stops}))
}
