package restapi

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	Lines  int    `json:"lines"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Lines: api.LineCount()}); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
