package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xinkuaihuo/wellbeing-engine/internal/chat"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
)

// RecommendHandler serves direct search requests without intent routing or
// session state.
type RecommendHandler struct {
	logger   *observability.Logger
	search   *search.Service
	pageSize int
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(logger *observability.Logger, svc *search.Service, pageSize int) *RecommendHandler {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &RecommendHandler{logger: logger, search: svc, pageSize: pageSize}
}

// RecommendRequestDTO represents the API request for a direct search.
type RecommendRequestDTO struct {
	Query  string `json:"query"`
	Model  string `json:"model,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Filter string `json:"filter,omitempty"` // article or video
}

// Recommend handles POST /recommend.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	limit := req.Limit
	if limit <= 0 {
		limit = h.pageSize
	}
	filter := search.MediaFilter(req.Filter)
	if filter != search.FilterNone && filter != search.FilterArticles && filter != search.FilterVideos {
		writeError(w, http.StatusBadRequest, "invalid filter", string(filter))
		return
	}

	results, err := h.search.Search(r.Context(), req.Query, req.Model, filter)
	if err != nil && !errors.Is(err, search.ErrNoSearchableTerms) {
		h.logger.Error().Err(err).Str("query", req.Query).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "search failed", "")
		return
	}

	page, total, hasMore := search.Paginate(results, offset, limit)
	resp := chat.BuildRecommendation(req.Query, req.Model, page, offset, limit, total, hasMore, filter)
	writeJSON(w, http.StatusOK, resp)
}
