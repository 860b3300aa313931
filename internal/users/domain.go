package users

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// User represents a platform account.
type User struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	HashedPassword    string    `json:"-"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	IsActive          bool      `json:"is_active"`
	IsSuperuser       bool      `json:"is_superuser"`
	IsVerified        bool      `json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FullName returns the trimmed concatenation of first and last name. Empty
// when neither is set.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DisplayName returns the full name, falling back to the email local-part
// when no names are present.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// Initials returns the uppercased first letters of first and last name. When
// names are absent it falls back to the first letter of the email.
func (u *User) Initials() string {
	var b strings.Builder
	for _, part := range []string{u.FirstName, u.LastName} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, r := range part {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	for _, r := range u.Email {
		return string(unicode.ToUpper(r))
	}
	return ""
}
