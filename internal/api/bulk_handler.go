package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skyward-mro/shopfloor/internal/assign"
	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/models/dtos"
	"skyward-mro/shopfloor/internal/models/entities"
)

// BulkAssign handles POST /parts/bulk/assign: many parts, one
// technician. Assignment alone never changes status.
func (h *Handlers) BulkAssign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BulkAssignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.PartIDs) == 0 || req.TechnicianID == "" {
			common.RespondError(w, initTime, nil, "part_ids and technician_id are required", http.StatusBadRequest)
			return
		}

		res, err := h.deps.Registry.BulkAssignParts(req.PartIDs, req.TechnicianID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgTechnicianNotFound, http.StatusNotFound)
			return
		}

		if len(res.Updated) > 0 {
			h.deps.Registry.AddNotification(entities.Notification{
				Kind:         constants.NotifySuccess,
				Title:        "Bulk assignment",
				Message:      fmt.Sprintf("%d parts assigned to technician %s", len(res.Updated), req.TechnicianID),
				TechnicianID: req.TechnicianID,
			})
		}
		common.RespondSuccess(w, initTime, "Bulk assignment processed", res)
	}
}

// BulkStatus handles POST /parts/bulk/status. Parts whose current state
// cannot reach the target are reported as skipped, not failed.
func (h *Handlers) BulkStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BulkStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.PartIDs) == 0 {
			common.RespondError(w, initTime, nil, "part_ids and status are required", http.StatusBadRequest)
			return
		}

		status := constants.PartStatus(req.Status)
		res, err := h.deps.Registry.BulkUpdateStatus(req.PartIDs, status)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		if len(res.Updated) > 0 {
			h.deps.Registry.AddNotification(entities.Notification{
				Kind:    constants.NotifySuccess,
				Title:   "Bulk status update",
				Message: fmt.Sprintf("%d parts moved to %s", len(res.Updated), status),
			})
		}
		common.RespondSuccess(w, initTime, "Bulk status update processed", res)
	}
}

// autoAssignResponse pairs the computed plan with the part ids actually
// applied. Applied may lag the plan if a part moved between planning and
// application, which is visible to the caller rather than hidden.
type autoAssignResponse struct {
	Plan    assign.Plan `json:"plan"`
	Applied []string    `json:"applied"`
}

// AutoAssign handles POST /parts/auto-assign: plan over the current
// snapshot, then apply each assignment as an assign-and-start step.
func (h *Handlers) AutoAssign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		plan := assign.BuildPlan(h.deps.Registry.Parts(), h.deps.Registry.Technicians())

		applied := make([]string, 0, len(plan.Assignments))
		for _, a := range plan.Assignments {
			if _, err := h.deps.Registry.AutoAssign(a.PartID, a.TechnicianID); err != nil {
				logging.Warn("Auto-assignment step failed",
					"part_id", a.PartID, "technician_id", a.TechnicianID, "error", err.Error())
				continue
			}
			h.recordTransition(constants.StatusUnrepaired, constants.StatusInRepair)
			applied = append(applied, a.PartID)
		}

		if len(applied) > 0 {
			h.deps.Registry.AddNotification(entities.Notification{
				Kind:    constants.NotifySuccess,
				Title:   "Auto-assignment complete",
				Message: fmt.Sprintf("%d parts assigned automatically, %d left unassigned", len(applied), len(plan.Unassigned)),
			})
		}
		common.RespondSuccess(w, initTime, "Auto-assignment processed", autoAssignResponse{
			Plan:    plan,
			Applied: applied,
		})
	}
}
