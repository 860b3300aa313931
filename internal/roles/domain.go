package roles

import (
	"encoding/json"
	"strings"
	"time"
)

// Wildcard is the permission string that satisfies every permission check.
const Wildcard = "*"

// PermissionGroupFallback is the group key for permissions without a
// "group:action" separator.
const PermissionGroupFallback = "general"

// Role represents a named permission grouping. The permission set is kept in
// a single serialized text column (a JSON array) and manipulated through the
// codec methods below.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions string    `json:"-"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionsList deserializes the stored permission set. Unset or malformed
// values yield an empty list; reads never fail.
func (r *Role) PermissionsList() []string {
	if strings.TrimSpace(r.Permissions) == "" {
		return []string{}
	}
	var perms []string
	if err := json.Unmarshal([]byte(r.Permissions), &perms); err != nil {
		return []string{}
	}
	return perms
}

// SetPermissionsList normalizes values (trims whitespace, drops empties,
// collapses duplicates preserving first-seen order) and stores the serialized
// result. Calling it twice with the same logical set yields the same stored
// value.
func (r *Role) SetPermissionsList(values []string) {
	normalized := normalizePermissions(values)
	data, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	r.Permissions = string(data)
}

// AddPermission appends a single permission. It returns false without
// mutating when the trimmed value is empty or already present.
func (r *Role) AddPermission(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	perms := r.PermissionsList()
	for _, p := range perms {
		if p == value {
			return false
		}
	}
	r.SetPermissionsList(append(perms, value))
	return true
}

// RemovePermission removes a single permission. It returns false when the
// trimmed value is empty or absent.
func (r *Role) RemovePermission(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	perms := r.PermissionsList()
	kept := perms[:0]
	removed := false
	for _, p := range perms {
		if p == value {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false
	}
	r.SetPermissionsList(kept)
	return true
}

// HasPermission reports whether the role grants value. A stored wildcard
// permission satisfies every check.
func (r *Role) HasPermission(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, p := range r.PermissionsList() {
		if p == Wildcard || p == value {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the role grants at least one of values.
func (r *Role) HasAnyPermission(values []string) bool {
	for _, v := range values {
		if r.HasPermission(v) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role grants every value.
func (r *Role) HasAllPermissions(values []string) bool {
	for _, v := range values {
		if !r.HasPermission(v) {
			return false
		}
	}
	return true
}

// PermissionsByLevel groups permissions by the substring preceding the first
// ':' separator. Permissions without a separator group under "general".
func (r *Role) PermissionsByLevel() map[string][]string {
	groups := make(map[string][]string)
	for _, p := range r.PermissionsList() {
		group := PermissionGroupFallback
		if idx := strings.Index(p, ":"); idx > 0 {
			group = p[:idx]
		}
		groups[group] = append(groups[group], p)
	}
	return groups
}

func normalizePermissions(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		normalized = append(normalized, v)
	}
	return normalized
}
