package api

import (
	"io"
	"net/http"
	"time"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/logging"
)

// ExportSnapshot handles GET /snapshot: the full shop state as a JSON
// download.
func (h *Handlers) ExportSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		data, err := h.deps.Services.Snapshot.ExportJSON()
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to export snapshot", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="shopfloor-snapshot.json"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			logging.Error("Snapshot write failed", "error", err.Error())
		}
	}
}

// ImportSnapshot handles POST /snapshot: wholesale state replacement.
func (h *Handlers) ImportSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to read snapshot body", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Snapshot.ImportJSON(data); err != nil {
			common.RespondError(w, initTime, err, constants.MsgSnapshotMalformed, http.StatusBadRequest)
			return
		}
		common.RespondSuccess(w, initTime, "Snapshot imported", nil)
	}
}

// PersistSnapshot handles POST /snapshot/persist: write the live state
// to the snapshot store.
func (h *Handlers) PersistSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if h.deps.Repo == nil || h.deps.Repo.Snapshot == nil {
			common.RespondError(w, initTime, nil, "Snapshot persistence requires a database", http.StatusServiceUnavailable)
			return
		}
		if err := h.deps.Services.Snapshot.Persist(r.Context()); err != nil {
			common.RespondError(w, initTime, err, "Failed to persist snapshot", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Snapshot persisted", nil)
	}
}
