package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"

	"github.com/vertag/vertag/pkg/domain/model"
	"github.com/vertag/vertag/pkg/domain/types"
)

// handleHealth answers liveness probes. It deliberately checks nothing
// beyond the process itself: the forge API being down must not make the
// service look dead.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "ok",
		Service: types.AppName,
		Version: types.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("failed to encode health response", "error", err)
	}
}
