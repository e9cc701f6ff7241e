package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userKey contextKey = "user"

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserLoader resolves a token's subject to a live user record so role and
// approval state are always read fresh, not trusted from the token.
type UserLoader interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"kind":"unauthenticated","error":"` + message + `"}`))
}

// Auth validates the bearer token and loads the current user into the
// request context. Deleted or unapproved accounts are rejected even when the
// token itself is still valid.
func Auth(jwtSecret string, users UserLoader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				unauthorized(w, "missing authorization header")
				return
			}
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization format")
				return
			}
			token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				unauthorized(w, "invalid token")
				return
			}
			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				unauthorized(w, "invalid user id")
				return
			}
			user, err := users.UserByID(r.Context(), userID)
			if err != nil || user == nil {
				unauthorized(w, "account no longer exists")
				return
			}
			if !user.IsApproved {
				unauthorized(w, "account is pending approval")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user set by Auth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// RequireRoles rejects requests whose authenticated user is not in the
// allowed role set.
func RequireRoles(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w, "authentication required")
				return
			}
			if !allowed[user.Role] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"kind":"forbidden","error":"insufficient role"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
