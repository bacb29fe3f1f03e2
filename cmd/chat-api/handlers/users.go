package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// UserHandler handles user registration.
type UserHandler struct {
	logger *observability.Logger
	users  *storage.UserRepository
}

// NewUserHandler creates a new user handler.
func NewUserHandler(logger *observability.Logger, users *storage.UserRepository) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// CreateUserRequestDTO represents the user creation request.
type CreateUserRequestDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserResponseDTO represents a user in API responses.
type UserResponseDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required", "")
		return
	}

	user := &storage.User{Email: req.Email, Name: req.Name}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Msg("User creation failed")
		writeError(w, http.StatusInternalServerError, "failed to create user", "")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponseDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}
