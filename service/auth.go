package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// AuthService handles registration, credential verification, and password
// changes. Session tokens are issued at the HTTP layer.
type AuthService struct {
	users  UserStore
	logger zerolog.Logger
}

func NewAuthService(users UserStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// NormalizeEmail lowercases and trims an email so uniqueness checks are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a pending account. The account cannot log in until a
// super admin approves it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, models.E(models.KindInvalidInput, "name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.E(models.KindInvalidInput, "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, models.E(models.KindInvalidInput, "password must be at least 6 characters")
	}

	existing, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, models.Internal("registration failed", err)
	}
	if existing != nil {
		return nil, models.E(models.KindConflict, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.Internal("registration failed", err)
	}
	now := time.Now().UTC()
	user := &models.User{
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Role:       models.RolePending,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		// Unique index backstop for concurrent registrations with the same email.
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.E(models.KindConflict, "email already in use")
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, models.Internal("registration failed", err)
	}
	user.ID = id
	s.logger.Info().Str("email", email).Msg("account registered, awaiting approval")
	return user, nil
}

// Login verifies credentials and the approval gate. Unknown email and wrong
// password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.E(models.KindInvalidInput, "email and password are required")
	}
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, models.Internal("login failed", err)
	}
	if user == nil {
		return nil, models.E(models.KindInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.E(models.KindInvalidCredentials, "invalid email or password")
	}
	if !user.IsApproved {
		return nil, models.E(models.KindNotApproved, "account is pending approval")
	}
	return user, nil
}

// ChangePassword lets an authenticated user rotate their own password.
func (s *AuthService) ChangePassword(ctx context.Context, actor *models.User, oldPassword, newPassword string) error {
	if actor == nil {
		return models.E(models.KindUnauthenticated, "authentication required")
	}
	if len(newPassword) < minPasswordLength {
		return models.E(models.KindInvalidInput, "password must be at least 6 characters")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(actor.Password), []byte(oldPassword)); err != nil {
		return models.E(models.KindInvalidCredentials, "current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.Internal("password change failed", err)
	}
	hashed := string(hash)
	if err := s.users.UpdateUser(ctx, actor.ID, models.UserPatch{Password: &hashed}); err != nil {
		s.logger.Error().Err(err).Msg("failed to update password")
		return models.Internal("password change failed", err)
	}
	return nil
}
