package rbac

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/readypath/readypath/internal/platform/httpx"
	"github.com/readypath/readypath/internal/roles"
	"github.com/readypath/readypath/internal/shared"
)

type assignRoleRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	RoleID int64  `json:"role_id" validate:"required,gt=0"`
}

type userRoleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserRoleResponse(r roles.Role) userRoleResponse {
	return userRoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.PermissionsList(),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type assignmentResponse struct {
	ID         int64      `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	RoleID     int64      `json:"role_id"`
	AssignedBy *uuid.UUID `json:"assigned_by,omitempty"`
	IsActive   bool       `json:"is_active"`
	AssignedAt time.Time  `json:"assigned_at"`
}

// Handler manages assignment endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	authz    Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authz Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		authz:    authz,
	}
}

// MountRoutes registers assignment routes. All of them require the
// role:manage permission except the read-side listings.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAny("role:read", "role:manage"))
		r.Get("/users/{userID}/roles", h.listUserRoles)
		r.Get("/users/{userID}/assignments", h.listUserAssignments)
		r.Get("/users/{userID}/permissions", h.listUserPermissions)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAll("role:manage"))
		r.Post("/assignments", h.assign)
		r.Post("/assignments/{id}/revoke", h.revoke)
		r.Delete("/assignments/{id}", h.remove)
	})
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user ID")
		return
	}

	var assignedBy *uuid.UUID
	if actor, ok := shared.ActorFromContext(r.Context()); ok {
		assignedBy = &actor
	}

	assignment, err := h.service.Assign(r.Context(), userID, req.RoleID, assignedBy)
	if err != nil {
		h.logger.Error("assign role", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, assignmentResponse(assignment))
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAssignmentID(w, r)
	if !ok {
		return
	}
	if err := h.service.Revoke(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAssignmentID(w, r)
	if !ok {
		return
	}
	if err := h.service.Remove(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listUserRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	activeOnly := r.URL.Query().Get("active_only") != "false"
	list, err := h.service.RolesForUser(r.Context(), userID, activeOnly)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]userRoleResponse, 0, len(list))
	for _, role := range list {
		out = append(out, toUserRoleResponse(role))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) listUserAssignments(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	activeOnly := r.URL.Query().Get("active_only") == "true"
	list, err := h.service.AssignmentsForUser(r.Context(), userID, activeOnly)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]assignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, assignmentResponse(a))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) listUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	granted, err := h.service.EffectivePermissions(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user_id":     userID,
		"permissions": granted,
	})
}

func parseAssignmentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid assignment ID")
		return 0, false
	}
	return id, true
}

func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
