package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"skyward-mro/shopfloor/internal/auth"
	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/dtos"
	"skyward-mro/shopfloor/internal/models/entities"
	"skyward-mro/shopfloor/internal/registry"
	"skyward-mro/shopfloor/internal/workflow"
)

// partView decorates a part with the fields derived at read time.
type partView struct {
	entities.Part
	DaysInStatus int  `json:"days_in_status"`
	IsOverdue    bool `json:"is_overdue"`
}

func toView(p entities.Part, now time.Time) partView {
	return partView{
		Part:         p,
		DaysInStatus: p.DaysInStatus(now),
		IsOverdue:    p.IsOverdue(now),
	}
}

func toViews(parts []entities.Part, now time.Time) []partView {
	out := make([]partView, 0, len(parts))
	for _, p := range parts {
		out = append(out, toView(p, now))
	}
	return out
}

// ListParts handles GET /parts with optional status, priority,
// technician and free-text filters.
func (h *Handlers) ListParts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		now := time.Now()

		parts := h.deps.Registry.Parts()

		status := r.URL.Query().Get("status")
		priority := r.URL.Query().Get("priority")
		technician := r.URL.Query().Get("technician")
		search := strings.ToLower(r.URL.Query().Get("q"))
		overdueOnly := r.URL.Query().Get("overdue") == "true"

		filtered := parts[:0]
		for _, p := range parts {
			if status != "" && string(p.Status) != status {
				continue
			}
			if priority != "" && string(p.Priority) != priority {
				continue
			}
			if technician != "" && p.AssignedTechnician != technician {
				continue
			}
			if overdueOnly && !p.IsOverdue(now) {
				continue
			}
			if search != "" && !matchesSearch(p, search) {
				continue
			}
			filtered = append(filtered, p)
		}

		common.RespondSuccess(w, initTime, "Parts fetched", toViews(filtered, now))
	}
}

func matchesSearch(p entities.Part, needle string) bool {
	for _, hay := range []string{p.PartNumber, p.WorkOrder, p.Aircraft, p.Customer, p.Description} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// GetPart handles GET /parts/{id}.
func (h *Handlers) GetPart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		p, err := h.deps.Registry.Part(chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgPartNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Part fetched", toView(p, time.Now()))
	}
}

// IntakePart handles POST /parts: the registration form.
func (h *Handlers) IntakePart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.IntakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid intake payload", http.StatusBadRequest)
			return
		}
		if req.PartNumber == "" || req.WorkOrder == "" {
			common.RespondError(w, initTime, nil, "part_number and work_order are required", http.StatusBadRequest)
			return
		}

		registeredBy := ""
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			registeredBy = claims.Name()
		}

		p, err := h.deps.Registry.RegisterPart(registry.IntakeInput{
			PartNumber:     req.PartNumber,
			WorkOrder:      req.WorkOrder,
			Aircraft:       req.Aircraft,
			Customer:       req.Customer,
			Location:       req.Location,
			Description:    req.Description,
			SerialNumber:   req.SerialNumber,
			Manufacturer:   req.Manufacturer,
			PartType:       req.PartType,
			RFIDUid:        req.RFIDUid,
			Priority:       constants.Priority(req.Priority),
			EstimatedHours: req.EstimatedHours,
			RegisteredBy:   registeredBy,
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to register part", http.StatusInternalServerError)
			return
		}

		if h.deps.Metrics != nil {
			h.deps.Metrics.PartsRegisteredTotal.Inc()
		}
		common.RespondSuccess(w, initTime, "Part registered", toView(p, time.Now()), http.StatusCreated)
	}
}

// UpdatePart handles PATCH /parts/{id}: descriptive fields only, status
// never moves through this endpoint.
func (h *Handlers) UpdatePart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdatePartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid update payload", http.StatusBadRequest)
			return
		}

		patch := registry.PartPatch{
			Aircraft:       req.Aircraft,
			Customer:       req.Customer,
			Location:       req.Location,
			Description:    req.Description,
			SerialNumber:   req.SerialNumber,
			Manufacturer:   req.Manufacturer,
			PartType:       req.PartType,
			RFIDUid:        req.RFIDUid,
			EstimatedHours: req.EstimatedHours,
		}
		if req.Priority != nil {
			prio := constants.Priority(*req.Priority)
			patch.Priority = &prio
		}
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			name := claims.Name()
			patch.UpdatedBy = &name
		}

		p, err := h.deps.Registry.UpdatePart(chi.URLParam(r, "id"), patch)
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgPartNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Part updated", toView(p, time.Now()))
	}
}

// AddNote handles POST /parts/{id}/notes.
func (h *Handlers) AddNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.NoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid note payload", http.StatusBadRequest)
			return
		}

		authorID := ""
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			authorID = claims.UserID()
		}

		p, err := h.deps.Registry.AddPartNote(chi.URLParam(r, "id"), req.Text, authorID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgPartNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Note added", toView(p, time.Now()))
	}
}

// StartRepair handles POST /parts/{id}/start.
func (h *Handlers) StartRepair() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.StartRepairRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TechnicianID == "" {
			common.RespondError(w, initTime, nil, "technician_id is required", http.StatusBadRequest)
			return
		}

		p, err := h.deps.Registry.StartRepair(chi.URLParam(r, "id"), req.TechnicianID)
		if err != nil {
			h.respondTransitionError(w, initTime, err)
			return
		}
		h.recordTransition(constants.StatusUnrepaired, p.Status)
		common.RespondSuccess(w, initTime, "Repair started", toView(p, time.Now()))
	}
}

// CompleteRepair handles POST /parts/{id}/complete.
func (h *Handlers) CompleteRepair() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CompleteRepairRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid payload", http.StatusBadRequest)
			return
		}
		if req.ActualHours <= 0 {
			common.RespondError(w, initTime, nil, constants.MsgMissingActualHours, http.StatusBadRequest)
			return
		}

		p, err := h.deps.Registry.CompleteRepair(chi.URLParam(r, "id"), req.ActualHours)
		if err != nil {
			h.respondTransitionError(w, initTime, err)
			return
		}
		h.recordTransition(constants.StatusInRepair, p.Status)
		common.RespondSuccess(w, initTime, "Repair completed", toView(p, time.Now()))
	}
}

// ScrapPart handles POST /parts/{id}/scrap.
func (h *Handlers) ScrapPart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		before, err := h.deps.Registry.Part(chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgPartNotFound, http.StatusNotFound)
			return
		}

		p, err := h.deps.Registry.ScrapPart(before.ID)
		if err != nil {
			h.respondTransitionError(w, initTime, err)
			return
		}
		h.recordTransition(before.Status, p.Status)
		common.RespondSuccess(w, initTime, "Part scrapped", toView(p, time.Now()))
	}
}

// ShipPart handles POST /parts/{id}/ship.
func (h *Handlers) ShipPart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		p, err := h.deps.Registry.ShipPart(chi.URLParam(r, "id"))
		if err != nil {
			h.respondTransitionError(w, initTime, err)
			return
		}
		h.recordTransition(constants.StatusRepaired, p.Status)
		common.RespondSuccess(w, initTime, "Part shipped", toView(p, time.Now()))
	}
}

// respondTransitionError maps registry/workflow errors to HTTP codes:
// unknown ids are 404, illegal transitions are 409, the rest are 400.
func (h *Handlers) respondTransitionError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, registry.ErrPartNotFound), errors.Is(err, registry.ErrTechnicianNotFound):
		common.RespondError(w, initTime, err, err.Error(), http.StatusNotFound)
	case errors.Is(err, workflow.ErrIllegalTransition):
		common.RespondError(w, initTime, err, constants.MsgIllegalTransition, http.StatusConflict)
	default:
		common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
	}
}

func (h *Handlers) recordTransition(from, to constants.PartStatus) {
	if h.deps.Metrics != nil {
		h.deps.Metrics.PartTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	}
}
