package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"
)

type userSummary struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type sessionResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userSummary `json:"user"`
}

type RegisterHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		IsAdmin         bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, token, err := h.Service.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword, req.IsAdmin)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Msg)
		case errors.Is(err, ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "email is already registered")
		default:
			h.Logger.Error("register user", "err", err)
			writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResponse{
		Message: "User created successfully",
		Token:   token,
		User:    userSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}

type LoginHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, token, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Msg)
		case errors.Is(err, ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			h.Logger.Error("login user", "err", err)
			writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResponse{
		Message: "Login successful",
		Token:   token,
		User:    userSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}
