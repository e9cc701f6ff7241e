package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AdminService manages admin accounts: the pending-approval queue, direct
// provisioning by super admins, and the guards that keep at least one super
// admin alive.
type AdminService struct {
	users  UserStore
	media  MediaStore
	logger zerolog.Logger
}

func NewAdminService(users UserStore, media MediaStore, logger zerolog.Logger) *AdminService {
	return &AdminService{
		users:  users,
		media:  media,
		logger: logger.With().Str("service", "admin").Logger(),
	}
}

func requireAdmin(actor *models.User) error {
	if actor == nil {
		return models.E(models.KindUnauthenticated, "authentication required")
	}
	if !actor.CanManageMedia() {
		return models.E(models.KindForbidden, "admin access required")
	}
	return nil
}

func requireSuperAdmin(actor *models.User) error {
	if actor == nil {
		return models.E(models.KindUnauthenticated, "authentication required")
	}
	if actor.Role != models.RoleSuperAdmin {
		return models.E(models.KindForbidden, "super admin access required")
	}
	return nil
}

// ListAdmins returns all approved admin accounts, newest first.
func (s *AdminService) ListAdmins(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.users.UsersByRoles(ctx, models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list admins")
		return nil, models.Internal("failed to list admins", err)
	}
	return users, nil
}

// ListPending returns self-registered accounts awaiting approval.
func (s *AdminService) ListPending(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.users.UsersByRoles(ctx, models.RolePending)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list pending accounts")
		return nil, models.Internal("failed to list pending accounts", err)
	}
	return users, nil
}

type CreateAdminInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateAdmin provisions an admin directly, bypassing the pending queue.
// The new account is approved immediately with the actor as approver.
func (s *AdminService) CreateAdmin(ctx context.Context, in CreateAdminInput, actor *models.User) (*models.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, models.E(models.KindInvalidInput, "name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.E(models.KindInvalidInput, "invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, models.E(models.KindInvalidInput, "password must be at least 6 characters")
	}
	role := in.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.RoleValid(role) {
		return nil, models.E(models.KindInvalidInput, "role must be admin or super_admin")
	}

	existing, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, models.Internal("failed to create admin", err)
	}
	if existing != nil {
		return nil, models.E(models.KindConflict, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.Internal("failed to create admin", err)
	}
	now := time.Now().UTC()
	user := &models.User{
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Role:       role,
		IsApproved: true,
		ApprovedBy: &actor.ID,
		ApprovedAt: &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.E(models.KindConflict, "email already in use")
		}
		s.logger.Error().Err(err).Msg("failed to create admin")
		return nil, models.Internal("failed to create admin", err)
	}
	user.ID = id
	s.logger.Info().Str("email", email).Str("role", role).Msg("admin account created")
	return user, nil
}

// Approve promotes a pending account to admin.
func (s *AdminService) Approve(ctx context.Context, userID primitive.ObjectID, actor *models.User) (*models.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, models.Internal("failed to approve account", err)
	}
	if user == nil {
		return nil, models.E(models.KindNotFound, "user not found")
	}
	if user.IsApproved {
		return nil, models.E(models.KindAlreadyApproved, "user is already approved")
	}

	role := models.RoleAdmin
	approved := true
	now := time.Now().UTC()
	patch := models.UserPatch{
		Role:       &role,
		IsApproved: &approved,
		ApprovedBy: &actor.ID,
		ApprovedAt: &now,
	}
	if err := s.users.UpdateUser(ctx, userID, patch); err != nil {
		s.logger.Error().Err(err).Msg("failed to approve account")
		return nil, models.Internal("failed to approve account", err)
	}
	user.Role = role
	user.IsApproved = true
	user.ApprovedBy = &actor.ID
	user.ApprovedAt = &now
	s.logger.Info().Str("email", user.Email).Msg("account approved")
	return user, nil
}

// Reject deletes a pending account. Approved accounts must go through
// DeleteAdmin so the super-admin guards apply.
func (s *AdminService) Reject(ctx context.Context, userID primitive.ObjectID, actor *models.User) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return models.Internal("failed to reject account", err)
	}
	if user == nil {
		return models.E(models.KindNotFound, "user not found")
	}
	if user.Role != models.RolePending {
		return models.E(models.KindInvalidState, "only pending accounts can be rejected")
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		s.logger.Error().Err(err).Msg("failed to reject account")
		return models.Internal("failed to reject account", err)
	}
	s.logger.Info().Str("email", user.Email).Msg("pending account rejected")
	return nil
}

type AdminPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// UpdateAdmin edits name, email, or role. Demoting the last super admin is
// rejected so the system can never lose all super admins.
func (s *AdminService) UpdateAdmin(ctx context.Context, userID primitive.ObjectID, in AdminPatch, actor *models.User) (*models.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, models.Internal("failed to update admin", err)
	}
	if user == nil {
		return nil, models.E(models.KindNotFound, "user not found")
	}

	patch := models.UserPatch{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.E(models.KindInvalidInput, "name cannot be empty")
		}
		patch.Name = &name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email == "" {
			return nil, models.E(models.KindInvalidInput, "email cannot be empty")
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, models.E(models.KindInvalidInput, "invalid email address")
		}
		existing, err := s.users.UserByEmail(ctx, email)
		if err != nil {
			return nil, models.Internal("failed to update admin", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, models.E(models.KindConflict, "email already in use")
		}
		patch.Email = &email
	}
	if in.Role != nil {
		role := *in.Role
		if !models.RoleValid(role) {
			return nil, models.E(models.KindInvalidInput, "role must be admin or super_admin")
		}
		if role == models.RoleAdmin && user.Role == models.RoleSuperAdmin {
			count, err := s.users.CountByRole(ctx, models.RoleSuperAdmin)
			if err != nil {
				return nil, models.Internal("failed to update admin", err)
			}
			if count <= 1 {
				return nil, models.E(models.KindLastSuperAdmin, "cannot demote the only super admin")
			}
		}
		patch.Role = &role
	}

	if err := s.users.UpdateUser(ctx, userID, patch); err != nil {
		s.logger.Error().Err(err).Msg("failed to update admin")
		return nil, models.Internal("failed to update admin", err)
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	return user, nil
}

// DeleteAdmin removes an account. Blocked when the target is the sole super
// admin or the actor themselves.
func (s *AdminService) DeleteAdmin(ctx context.Context, userID primitive.ObjectID, actor *models.User) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return models.Internal("failed to delete admin", err)
	}
	if user == nil {
		return models.E(models.KindNotFound, "user not found")
	}
	if user.Role == models.RoleSuperAdmin {
		count, err := s.users.CountByRole(ctx, models.RoleSuperAdmin)
		if err != nil {
			return models.Internal("failed to delete admin", err)
		}
		if count <= 1 {
			return models.E(models.KindLastSuperAdmin, "cannot delete the only super admin")
		}
	}
	if user.ID == actor.ID {
		return models.E(models.KindSelfDeletion, "cannot delete your own account")
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete admin")
		return models.Internal("failed to delete admin", err)
	}
	s.logger.Info().Str("email", user.Email).Msg("admin account deleted")
	return nil
}

// Stats aggregates dashboard counts.
type Stats struct {
	TotalMedia           int64 `json:"totalMedia"`
	Photos               int64 `json:"photos"`
	Videos               int64 `json:"videos"`
	PendingAdminRequests int64 `json:"pendingAdminRequests"`
}

func (s *AdminService) Stats(ctx context.Context, actor *models.User) (*Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	photos, err := s.media.CountActiveMedia(ctx, models.MediaPhoto)
	if err != nil {
		return nil, models.Internal("failed to load stats", err)
	}
	videos, err := s.media.CountActiveMedia(ctx, models.MediaVideo)
	if err != nil {
		return nil, models.Internal("failed to load stats", err)
	}
	pending, err := s.users.CountByRole(ctx, models.RolePending)
	if err != nil {
		return nil, models.Internal("failed to load stats", err)
	}
	return &Stats{
		TotalMedia:           photos + videos,
		Photos:               photos,
		Videos:               videos,
		PendingAdminRequests: pending,
	}, nil
}
