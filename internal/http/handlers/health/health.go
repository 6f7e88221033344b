// Package health implements the liveness endpoint used by the
// orchestration layer's probes.
package health

import (
	"net/http"

	"github.com/aanand-mishra/student-mgmt/internal/utils/response"
)

// serviceName identifies this process in the liveness payload.
const serviceName = "student-management-backend"

// Status is the liveness payload.
type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Check handles GET /health.
//
// It deliberately does NOT touch the record store: liveness means "the
// process is up and serving", and a restart would not fix a broken
// database. If the probe depended on the database, a database outage
// would make the orchestrator restart-loop perfectly healthy pods.
func Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, Status{
			Status:  "healthy",
			Service: serviceName,
		})
	}
}
