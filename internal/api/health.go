package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"skyward-mro/shopfloor/internal/models/entities"
	"skyward-mro/shopfloor/internal/registry"
)

// HealthCheckHandler handles GET /healthCheck. db may be nil in a
// memory-only deployment; the registry check alone decides liveness
// there.
func HealthCheckHandler(reg *registry.Registry, db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		services["registry"] = entities.ServiceStatus{
			Status:  "ok",
			Details: fmt.Sprintf("%d parts tracked", len(reg.Parts())),
		}

		if db != nil {
			pgStatus := "ok"
			pgDetails := "Postgres connected"
			if err := db.Ping(); err != nil {
				pgStatus = "down"
				pgDetails = err.Error()
			}
			services["postgres"] = entities.ServiceStatus{
				Status:  pgStatus,
				Details: pgDetails,
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		uptime := time.Since(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
