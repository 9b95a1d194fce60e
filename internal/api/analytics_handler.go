package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
)

// ShopAnalytics handles GET /analytics/shop: the dashboard rollup of
// throughput, MTTR, scrap and shipped rates, backlog trend and per-
// technician workload.
func (h *Handlers) ShopAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		analytics := h.deps.Services.Stats.ShopAnalytics(
			h.deps.Registry.Parts(), h.deps.Registry.Technicians(), time.Now())
		common.RespondSuccess(w, initTime, "Shop analytics fetched", analytics)
	}
}

// RecentActivity handles GET /analytics/activity?limit=n. Backed by the
// reporting database; memory-only deployments answer 503.
func (h *Handlers) RecentActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if h.deps.Repo == nil || h.deps.Repo.History == nil {
			common.RespondError(w, initTime, nil, "Activity reporting requires a database", http.StatusServiceUnavailable)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		rows, err := h.deps.Repo.History.RecentActivity(r.Context(), limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch activity", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Recent activity fetched", rows)
	}
}

// PartHistory handles GET /analytics/parts/{id}/history.
func (h *Handlers) PartHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if h.deps.Repo == nil || h.deps.Repo.History == nil {
			common.RespondError(w, initTime, nil, "History reporting requires a database", http.StatusServiceUnavailable)
			return
		}

		id := chi.URLParam(r, "id")
		if _, err := h.deps.Registry.Part(id); err != nil {
			common.RespondError(w, initTime, err, constants.MsgPartNotFound, http.StatusNotFound)
			return
		}

		rows, err := h.deps.Repo.History.HistoryForPart(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch history", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Part history fetched", rows)
	}
}

// TechnicianActivity handles GET /analytics/technicians/{id}/activity.
func (h *Handlers) TechnicianActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if h.deps.Repo == nil || h.deps.Repo.History == nil {
			common.RespondError(w, initTime, nil, "Activity reporting requires a database", http.StatusServiceUnavailable)
			return
		}

		id := chi.URLParam(r, "id")
		if _, err := h.deps.Registry.Technician(id); err != nil {
			common.RespondError(w, initTime, err, constants.MsgTechnicianNotFound, http.StatusNotFound)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		rows, err := h.deps.Repo.History.TechnicianActivity(r.Context(), id, limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch activity", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Technician activity fetched", rows)
	}
}
