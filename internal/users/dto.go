package users

import "time"

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

type updateProfileRequest struct {
	FirstName         *string `json:"first_name" validate:"omitempty,max=100"`
	LastName          *string `json:"last_name" validate:"omitempty,max=100"`
	Phone             *string `json:"phone" validate:"omitempty,max=32"`
	Bio               *string `json:"bio" validate:"omitempty,max=2000"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
	IsVerified        *bool   `json:"is_verified"`
}

type userResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	FullName          string    `json:"full_name"`
	DisplayName       string    `json:"display_name"`
	Initials          string    `json:"initials"`
	Phone             string    `json:"phone,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	IsActive          bool      `json:"is_active"`
	IsSuperuser       bool      `json:"is_superuser"`
	IsVerified        bool      `json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:                u.ID.String(),
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		DisplayName:       u.DisplayName(),
		Initials:          u.Initials(),
		Phone:             u.Phone,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		IsActive:          u.IsActive,
		IsSuperuser:       u.IsSuperuser,
		IsVerified:        u.IsVerified,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
