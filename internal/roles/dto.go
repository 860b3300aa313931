package roles

import "time"

type createRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Permissions []string `json:"permissions"`
}

type updateRoleRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type setPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

type addPermissionRequest struct {
	Permission string `json:"permission" validate:"required"`
}

type roleResponse struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Permissions        []string            `json:"permissions"`
	PermissionsByLevel map[string][]string `json:"permissions_by_level,omitempty"`
	IsActive           bool                `json:"is_active"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func toRoleResponse(r Role, withGroups bool) roleResponse {
	resp := roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.PermissionsList(),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if withGroups {
		resp.PermissionsByLevel = r.PermissionsByLevel()
	}
	return resp
}
