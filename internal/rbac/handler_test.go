package rbac

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUserRolesIncludesPermissions(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true, "content:read", "content:write")
	_, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, svc, Middleware{Service: svc})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID.String())
	req := httptest.NewRequest(http.MethodGet, "/users/"+userID.String()+"/roles", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	h.listUserRoles(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []userRoleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "editor", got[0].Name)
	assert.Equal(t, []string{"content:read", "content:write"}, got[0].Permissions,
		"listing must expose the decoded permission list")
}
