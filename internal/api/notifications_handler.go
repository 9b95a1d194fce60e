package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/registry"
)

// ListNotifications handles GET /notifications, newest first.
func (h *Handlers) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		notifications := h.deps.Registry.Notifications()
		if r.URL.Query().Get("unread") == "true" {
			unread := notifications[:0]
			for _, n := range notifications {
				if !n.Read {
					unread = append(unread, n)
				}
			}
			notifications = unread
		}
		common.RespondSuccess(w, initTime, "Notifications fetched", notifications)
	}
}

// MarkNotificationRead handles POST /notifications/{id}/read.
func (h *Handlers) MarkNotificationRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		err := h.deps.Registry.MarkNotificationRead(chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, registry.ErrNotificationNotFound) {
				common.RespondError(w, initTime, err, err.Error(), http.StatusNotFound)
				return
			}
			common.RespondError(w, initTime, err, "Failed to mark notification", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Notification marked read", nil)
	}
}

// ClearNotifications handles DELETE /notifications.
func (h *Handlers) ClearNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		h.deps.Registry.ClearNotifications()
		common.RespondSuccess(w, initTime, "Notifications cleared", nil)
	}
}

// TriggerSweep handles POST /notifications/sweep: runs the rule
// evaluator on demand instead of waiting for the background interval.
func (h *Handlers) TriggerSweep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		now := time.Now()

		advisories := h.deps.Services.Evaluator.Run(
			h.deps.Registry.Parts(), h.deps.Registry.Technicians(), now)
		for _, n := range advisories {
			h.deps.Registry.AddNotification(n)
		}
		common.RespondSuccess(w, initTime, "Sweep complete", map[string]int{"emitted": len(advisories)})
	}
}
