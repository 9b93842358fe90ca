package handlers

import (
	"net/http"

	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

// AdminHandler serves operational endpoints.
type AdminHandler struct {
	logger   *observability.Logger
	taxonomy *taxonomy.Taxonomy
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(logger *observability.Logger, tax *taxonomy.Taxonomy) *AdminHandler {
	return &AdminHandler{logger: logger, taxonomy: tax}
}

// ReloadKeywords handles POST /admin/reload-keywords. In-flight searches
// keep the snapshot they started with.
func (h *AdminHandler) ReloadKeywords(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.Reload(); err != nil {
		h.logger.Error().Err(err).Msg("keywords reload failed")
		writeError(w, http.StatusInternalServerError, "reload failed", err.Error())
		return
	}

	snap := h.taxonomy.Current()
	h.logger.Info().Int("categories", len(snap.Categories())).Msg("keywords reloaded")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "reloaded",
		"categories": len(snap.Categories()),
	})
}
