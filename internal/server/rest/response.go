package rest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/logging"
)

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Success    bool   `json:"success"`
}

type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{StatusCode: status, Message: message, Data: data, Success: true})
}

// writeError maps err to the error envelope. Anything that is not a
// *common.Error becomes a 500; server errors are logged with their cause.
func writeError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	e, ok := common.AsError(err)
	if !ok {
		e = common.Internal("Internal server error", err)
	}
	if e.Status >= http.StatusInternalServerError {
		logger.Error(r.Context(), e.Message, "kind", e.Kind.String(), "error", err)
	}
	writeJSON(w, e.Status, errorEnvelope{StatusCode: e.Status, Message: e.Message, Success: false})
}
