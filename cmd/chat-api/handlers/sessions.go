package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/junglore/chat-engine/internal/chat"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// SessionHandler handles chat session lifecycle and messaging.
type SessionHandler struct {
	logger   *observability.Logger
	sessions *storage.SessionRepository
	engine   *chat.Engine
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(logger *observability.Logger, sessions *storage.SessionRepository, engine *chat.Engine) *SessionHandler {
	return &SessionHandler{logger: logger, sessions: sessions, engine: engine}
}

// NewSessionRequestDTO represents the session creation request.
type NewSessionRequestDTO struct {
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}

// SessionInfoDTO represents a session in API responses.
type SessionInfoDTO struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// SendMessageRequestDTO represents a message sent into a session.
type SendMessageRequestDTO struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	session := &storage.ChatSession{
		UserID: req.UserID,
		Title:  req.Title,
	}
	if err := h.sessions.Create(r.Context(), session); err != nil {
		h.logger.Error().Err(err).Msg("Session creation failed")
		writeError(w, http.StatusInternalServerError, "failed to create session", "")
		return
	}

	writeJSON(w, http.StatusCreated, SessionInfoDTO{
		SessionID: session.SessionID,
		Title:     session.Title,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
	})
}

// List handles GET /sessions?user_id=...
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	sessions, err := h.sessions.ListByUser(r.Context(), userID, 100)
	if err != nil {
		h.logger.Error().Err(err).Msg("Session listing failed")
		writeError(w, http.StatusInternalServerError, "failed to list sessions", "")
		return
	}

	out := make([]SessionInfoDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionInfoDTO{
			SessionID: s.SessionID,
			Title:     s.Title,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// History handles GET /sessions/{sessionID}/history?user_id=...
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	session, err := h.sessions.GetForUser(r.Context(), sessionID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found", "")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("History lookup failed")
		writeError(w, http.StatusInternalServerError, "failed to load history", "")
		return
	}

	history := session.History
	if history == nil {
		history = []storage.Message{}
	}
	writeJSON(w, http.StatusOK, history)
}

// SendMessage handles POST /sessions/{sessionID}/message.
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req SendMessageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message are required", "")
		return
	}

	reply, err := h.engine.Respond(r.Context(), sessionID, req.UserID, req.Message)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found", "")
		return
	}
	if err != nil {
		h.logger.Error().
			Str("session_id", sessionID).
			Err(err).
			Msg("Message processing failed")
		writeError(w, http.StatusInternalServerError, "failed to process message", "")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
