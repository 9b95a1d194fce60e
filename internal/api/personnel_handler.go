package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/dtos"
	"skyward-mro/shopfloor/internal/models/entities"
	"skyward-mro/shopfloor/internal/stats"
)

// ListTechnicians handles GET /technicians.
func (h *Handlers) ListTechnicians() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "Technicians fetched", h.deps.Registry.Technicians())
	}
}

// GetTechnician handles GET /technicians/{id}.
func (h *Handlers) GetTechnician() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		t, err := h.deps.Registry.Technician(chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgTechnicianNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Technician fetched", t)
	}
}

// UpdateTechnicianStats handles PATCH /technicians/{id}/stats.
func (h *Handlers) UpdateTechnicianStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch entities.TechnicianStatsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid stats payload", http.StatusBadRequest)
			return
		}

		t, err := h.deps.Registry.UpdateTechnicianStats(chi.URLParam(r, "id"), patch)
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgTechnicianNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Technician stats updated", t)
	}
}

// AwardBadge handles POST /technicians/{id}/badges. Awarding an already
// held badge is a no-op.
func (h *Handlers) AwardBadge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BadgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Badge == "" {
			common.RespondError(w, initTime, nil, "badge is required", http.StatusBadRequest)
			return
		}

		t, err := h.deps.Registry.AddTechnicianBadge(chi.URLParam(r, "id"), req.Badge)
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgTechnicianNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Badge awarded", t)
	}
}

// PersonnelReports handles GET /reports/personnel: per-technician
// performance derived live from part history.
func (h *Handlers) PersonnelReports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		reports := h.deps.Services.Stats.PersonnelReports(
			h.deps.Registry.Parts(), h.deps.Registry.Technicians())
		common.RespondSuccess(w, initTime, "Personnel reports fetched", reports)
	}
}

// TopPerformers handles GET /reports/top-performers?metric=...&limit=n.
func (h *Handlers) TopPerformers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		metric := r.URL.Query().Get("metric")
		if metric == "" {
			metric = "efficiency"
		}
		limit := 3
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				common.RespondError(w, initTime, nil, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		reports := h.deps.Services.Stats.PersonnelReports(
			h.deps.Registry.Parts(), h.deps.Registry.Technicians())
		common.RespondSuccess(w, initTime, "Top performers fetched", stats.TopPerformers(reports, metric, limit))
	}
}

// OverallStats handles GET /reports/overall: the whole-shop rollup.
func (h *Handlers) OverallStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		reports := h.deps.Services.Stats.PersonnelReports(
			h.deps.Registry.Parts(), h.deps.Registry.Technicians())
		common.RespondSuccess(w, initTime, "Overall stats fetched", stats.Overall(reports))
	}
}
