package rbac

import (
	"time"

	"github.com/google/uuid"
)

// AdminRoleName is the designated administrator role.
const AdminRoleName = "admin"

// Assignment links a user to a role. Rows are soft-revoked rather than
// deleted so the grant history survives re-grants; is_active=false marks a
// logically revoked assignment.
type Assignment struct {
	ID         int64      `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	RoleID     int64      `json:"role_id"`
	AssignedBy *uuid.UUID `json:"assigned_by,omitempty"`
	IsActive   bool       `json:"is_active"`
	AssignedAt time.Time  `json:"assigned_at"`
}
