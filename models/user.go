package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants for user authorization.
const (
	RolePending    = "pending"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ValidRoles are the roles assignable through the admin API. Pending is
// reserved for self-registered accounts awaiting approval.
var ValidRoles = []string{RoleAdmin, RoleSuperAdmin}

func RoleValid(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Password   string              `bson:"password" json:"-"` // bcrypt hash
	Role       string              `bson:"role" json:"role"`  // pending, admin, super_admin
	IsApproved bool                `bson:"isApproved" json:"isApproved"`
	ApprovedBy *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CanManageMedia reports whether the user may create, update, or delete media.
func (u *User) CanManageMedia() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// UserPatch carries partial updates for a user. Nil fields are left untouched.
type UserPatch struct {
	Name       *string
	Email      *string
	Password   *string // bcrypt hash, never plaintext
	Role       *string
	IsApproved *bool
	ApprovedBy *primitive.ObjectID
	ApprovedAt *time.Time
}
