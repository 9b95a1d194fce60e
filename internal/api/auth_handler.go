package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/dtos"
)

// Login handles POST /auth/login. The user id must belong to a seeded
// technician, manager or inspector; the response carries an HS256 token
// with the matching role claim.
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			common.RespondError(w, initTime, nil, "Invalid login payload", http.StatusBadRequest)
			return
		}

		name, role, ok := h.lookupUser(req.UserID)
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgUserNotFound, http.StatusNotFound)
			return
		}

		token, expiresAt, err := h.deps.Services.Tokens.IssueToken(req.UserID, name, role)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Login successful", dtos.LoginResponse{
			Token:     token,
			UserID:    req.UserID,
			Name:      name,
			Role:      role.String(),
			ExpiresIn: int(time.Until(expiresAt).Seconds()),
		})
	}
}

func (h *Handlers) lookupUser(id string) (string, constants.ShopRole, bool) {
	if t, err := h.deps.Registry.Technician(id); err == nil {
		return t.Name, constants.RoleTechnician, true
	}
	for _, m := range h.deps.Registry.Managers() {
		if m.ID == id {
			return m.Name, constants.RoleManager, true
		}
	}
	for _, i := range h.deps.Registry.Inspectors() {
		if i.ID == id {
			return i.Name, constants.RoleInspector, true
		}
	}
	return "", "", false
}
