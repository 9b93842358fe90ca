// Package handlers provides HTTP handlers for the wellbeing engine API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xinkuaihuo/wellbeing-engine/internal/chat"
	"github.com/xinkuaihuo/wellbeing-engine/internal/intent"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/session"
)

// ChatHandler handles conversational turns and history reads.
type ChatHandler struct {
	logger   *observability.Logger
	router   *intent.Router
	sessions *session.Store
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, router *intent.Router, sessions *session.Store) *ChatHandler {
	return &ChatHandler{logger: logger, router: router, sessions: sessions}
}

// ChatRequestDTO represents the API request for a conversational turn.
type ChatRequestDTO struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
	Model     string `json:"model,omitempty"`
}

// ChatResponseDTO wraps the turn response with the session id so clients
// can continue the conversation.
type ChatResponseDTO struct {
	SessionID string `json:"session_id"`
	chat.Response
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	sessionID := session.EnsureID(req.SessionID)
	resp := h.router.Handle(r.Context(), sessionID, req.Query, req.Model)

	writeJSON(w, http.StatusOK, ChatResponseDTO{SessionID: sessionID, Response: resp})
}

// HistoryItemDTO is one recorded turn.
type HistoryItemDTO struct {
	Query    string        `json:"query"`
	Response chat.Response `json:"response"`
	Language string        `json:"language"`
}

// History handles GET /history?session_id=.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required", "")
		return
	}

	turns := h.sessions.Get(sessionID).History()
	items := make([]HistoryItemDTO, 0, len(turns))
	for _, t := range turns {
		items = append(items, HistoryItemDTO{
			Query:    t.RawQuery,
			Response: t.Response,
			Language: t.Language,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{"error": message}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
