package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

type AuthHandler struct {
	Auth *usecase.AuthUseCase
}

func NewAuthHandler(auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.Email == "" || input.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	out, err := h.Auth.Login(r.Context(), input)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrAccountInactive):
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	out, err := h.Auth.Register(r.Context(), input)
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, entity.ErrPlanNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		var ve usecase.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// HandleRefresh issues a fresh token for the calling account. Sits behind
// RequireAuth, so claims are always present.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	out, err := h.Auth.Refresh(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}
