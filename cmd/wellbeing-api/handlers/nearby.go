package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xinkuaihuo/wellbeing-engine/internal/intent"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
)

// NearbyHandler serves direct address lookups.
type NearbyHandler struct {
	logger *observability.Logger
	router *intent.Router
}

// NewNearbyHandler creates a new nearby handler.
func NewNearbyHandler(logger *observability.Logger, router *intent.Router) *NearbyHandler {
	return &NearbyHandler{logger: logger, router: router}
}

// NearbyRequestDTO represents the API request for a nearby lookup.
type NearbyRequestDTO struct {
	Address string `json:"address"`
}

// Nearby handles POST /nearby.
func (h *NearbyHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var req NearbyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp := h.router.LookupAddress(r.Context(), req.Address)
	writeJSON(w, http.StatusOK, resp)
}
