package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readypath/readypath/internal/shared"
)

func performGuarded(t *testing.T, mw func(http.Handler) http.Handler, userID string) int {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if userID != "" {
		sess := &shared.Session{}
		sess.SetUser(userID)
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	}

	res := httptest.NewRecorder()
	mw(next).ServeHTTP(res, req)
	return res.Code
}

func TestRequireAnyAllowsMatchingPermission(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("viewer", true, "user:read")
	_, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)

	mw := Middleware{Service: svc}

	assert.Equal(t, http.StatusOK,
		performGuarded(t, mw.RequireAny("user:read", "user:manage"), userID.String()))
	assert.Equal(t, http.StatusForbidden,
		performGuarded(t, mw.RequireAny("role:manage"), userID.String()))
}

func TestRequireAllNeedsEveryPermission(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true, "user:read", "user:manage")
	_, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)

	mw := Middleware{Service: svc}

	assert.Equal(t, http.StatusOK,
		performGuarded(t, mw.RequireAll("user:read", "user:manage"), userID.String()))
	assert.Equal(t, http.StatusForbidden,
		performGuarded(t, mw.RequireAll("user:read", "role:manage"), userID.String()))
}

func TestMiddlewareWildcardBypass(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	admin := repo.addRole("admin", true, "*")
	_, err := svc.Assign(context.Background(), userID, admin.ID, nil)
	require.NoError(t, err)

	mw := Middleware{Service: svc}

	assert.Equal(t, http.StatusOK,
		performGuarded(t, mw.RequireAll("user:manage", "role:manage", "score:manage"), userID.String()))
}

func TestMiddlewareRejectsAnonymous(t *testing.T) {
	mw := Middleware{Service: NewService(newMockRepository(), nil)}

	assert.Equal(t, http.StatusForbidden,
		performGuarded(t, mw.RequireAny("user:read"), ""))
}

func TestMiddlewareEmptyRequirementPassesThrough(t *testing.T) {
	mw := Middleware{Service: NewService(newMockRepository(), nil)}

	assert.Equal(t, http.StatusOK, performGuarded(t, mw.RequireAny(), ""))
	assert.Equal(t, http.StatusOK, performGuarded(t, mw.RequireAll(" ", ""), ""))
}
