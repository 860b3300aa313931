package scores

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/readypath/readypath/internal/platform/httpx"
)

// AuthzMiddleware guards score routes. Satisfied by rbac.Middleware.
type AuthzMiddleware interface {
	RequireAny(perms ...string) func(http.Handler) http.Handler
	RequireAll(perms ...string) func(http.Handler) http.Handler
}

// Handler manages score endpoints.
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

// MountRoutes registers score routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAny("score:read", "score:manage"))
		r.Get("/{id}", h.get)
		r.Get("/users/{userID}", h.listByUser)
		r.Get("/resumes/{resumeID}", h.listByResume)
		r.Get("/resumes/{resumeID}/latest", h.latest)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAll("score:manage"))
		r.Post("/", h.create)
		r.Post("/{id}/deactivate", h.deactivate)
		r.Delete("/{id}", h.remove)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createScoreRequest
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

	score, err := h.service.Create(r.Context(), CreateScoreParams{
		UserID:          userID,
		ResumeID:        req.ResumeID,
		AnalysisType:    req.AnalysisType,
		JobTitle:        req.JobTitle,
		Company:         req.Company,
		OverallScore:    req.OverallScore,
		SkillScore:      req.SkillScore,
		ExperienceScore: req.ExperienceScore,
		EducationScore:  req.EducationScore,
		SkillMatches:    req.SkillMatches,
		SkillGaps:       req.SkillGaps,
		Recommendations: req.Recommendations,
		AnalysisDetails: req.AnalysisDetails,
	})
	if err != nil {
		h.logger.Error("create score", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toScoreResponse(score))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseScoreID(w, r)
	if !ok {
		return
	}
	score, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toScoreResponse(score))
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user ID")
		return
	}
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.service.ListByUser(r.Context(), userID, skip, limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toScoreResponses(list))
}

func (h *Handler) listByResume(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := parsePathID(w, r, "resumeID", "invalid resume ID")
	if !ok {
		return
	}
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.service.ListByResume(r.Context(), resumeID, skip, limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toScoreResponses(list))
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := parsePathID(w, r, "resumeID", "invalid resume ID")
	if !ok {
		return
	}
	score, err := h.service.Latest(r.Context(), resumeID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toScoreResponse(score))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseScoreID(w, r)
	if !ok {
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseScoreID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func toScoreResponses(list []Score) []scoreResponse {
	out := make([]scoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toScoreResponse(s))
	}
	return out
}

func parseScoreID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return parsePathID(w, r, "id", "invalid score ID")
}

func parsePathID(w http.ResponseWriter, r *http.Request, param, msg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", msg)
		return 0, false
	}
	return id, true
}
