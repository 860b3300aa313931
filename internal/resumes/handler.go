package resumes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/readypath/readypath/internal/platform/httpx"
)

// AuthzMiddleware guards resume routes. Satisfied by rbac.Middleware.
type AuthzMiddleware interface {
	RequireAny(perms ...string) func(http.Handler) http.Handler
	RequireAll(perms ...string) func(http.Handler) http.Handler
}

// Handler manages resume endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	authz    AuthzMiddleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authz AuthzMiddleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		authz:    authz,
	}
}

// MountRoutes registers resume routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAny("resume:read", "resume:manage"))
		r.Get("/{id}", h.get)
		r.Get("/users/{userID}", h.listByUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAll("resume:manage"))
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.remove)
		r.Post("/{id}/analyze", h.requestAnalysis)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createResumeRequest
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

	resume, err := h.service.Create(r.Context(), CreateResumeParams{
		UserID:          userID,
		Title:           req.Title,
		FilePath:        req.FilePath,
		FileName:        req.FileName,
		FileSize:        req.FileSize,
		FileType:        req.FileType,
		Summary:         req.Summary,
		ExperienceYears: req.ExperienceYears,
		EducationLevel:  req.EducationLevel,
		Skills:          req.Skills,
		Languages:       req.Languages,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		h.logger.Error("create resume", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResumeResponse(resume))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseResumeID(w, r)
	if !ok {
		return
	}
	resume, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResumeResponse(resume))
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user ID")
		return
	}
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	activeOnly := r.URL.Query().Get("active_only") != "false"

	list, err := h.service.ListByUser(r.Context(), userID, skip, limit, activeOnly)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]resumeResponse, 0, len(list))
	for _, resume := range list {
		out = append(out, toResumeResponse(resume))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseResumeID(w, r)
	if !ok {
		return
	}
	var req updateResumeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	params := UpdateResumeParams{
		Title:           req.Title,
		Summary:         req.Summary,
		ExperienceYears: req.ExperienceYears,
		EducationLevel:  req.EducationLevel,
		IsActive:        req.IsActive,
		IsPublic:        req.IsPublic,
	}
	if req.Skills != nil {
		encoded := encodeList(req.Skills)
		params.Skills = &encoded
	}
	if req.Languages != nil {
		encoded := encodeList(req.Languages)
		params.Languages = &encoded
	}

	resume, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResumeResponse(resume))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseResumeID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) requestAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := parseResumeID(w, r)
	if !ok {
		return
	}
	queued, err := h.service.RequestAnalysis(r.Context(), id)
	if err != nil {
		h.logger.Error("request analysis", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{
		"resume_id": id,
		"queued":    queued,
	})
}

func parseResumeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid resume ID")
		return 0, false
	}
	return id, true
}
