package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aarsh-studio/portfolio-backend/metrics"
	"github.com/aarsh-studio/portfolio-backend/middleware"
	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/aarsh-studio/portfolio-backend/service"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 7 * 24 * time.Hour

type AuthHandler struct {
	Auth      *service.AuthService
	JWTSecret string
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register creates a pending account awaiting super-admin approval.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	user, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToResponse(user))
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(string(models.KindOf(err))).Inc()
		writeError(w, err)
		return
	}
	token, err := h.createToken(user.ID.Hex(), user.Email)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		writeError(w, models.Internal("could not create token", err))
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: userToResponse(user)})
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, models.E(models.KindUnauthenticated, "authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// ChangePassword rotates the authenticated user's password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, models.E(models.KindUnauthenticated, "authentication required"))
		return
	}
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	if err := h.Auth.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) createToken(userID, email string) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
