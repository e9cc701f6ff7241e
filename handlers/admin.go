package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aarsh-studio/portfolio-backend/middleware"
	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/aarsh-studio/portfolio-backend/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminHandler struct {
	Admin *service.AdminService
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsApproved bool   `json:"isApproved"`
	ApprovedBy string `json:"approvedBy,omitempty"`
	ApprovedAt string `json:"approvedAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func userToResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
	if u.ApprovedBy != nil {
		resp.ApprovedBy = u.ApprovedBy.Hex()
	}
	if u.ApprovedAt != nil {
		resp.ApprovedAt = u.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}

func usersToResponse(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out
}

func actorFromRequest(r *http.Request) (*models.User, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, models.E(models.KindUnauthenticated, "authentication required")
	}
	return user, nil
}

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, models.E(models.KindInvalidInput, "invalid user id")
	}
	return id, nil
}

type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateAdminRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// ListUsers returns all approved admin accounts.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	users, err := h.Admin.ListAdmins(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: usersToResponse(users), Count: len(users)})
}

// ListPending returns accounts awaiting approval.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	users, err := h.Admin.ListPending(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: usersToResponse(users), Count: len(users)})
}

// CreateUser provisions an admin directly (super admin only).
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	user, err := h.Admin.CreateAdmin(r.Context(), service.CreateAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToResponse(user))
}

// UpdateUser edits an admin account (super admin only).
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	user, err := h.Admin.UpdateAdmin(r.Context(), id, service.AdminPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// DeleteUser removes an admin account (super admin only).
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Admin.DeleteAdmin(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Approve promotes a pending account to admin (super admin only).
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.Admin.Approve(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// Reject deletes a pending account (super admin only).
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Admin.Reject(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns dashboard aggregates.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.Admin.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
