package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, sess)

	sess.SetUser("1f3b4cde-0000-4000-8000-000000000001")
	sess.Set("theme", "dark")

	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, sess))

	cookies := res.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "test_session", cookies[0].Name)

	// A second request carrying the cookie sees the same state.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req2)
	require.NoError(t, err)
	assert.Equal(t, "1f3b4cde-0000-4000-8000-000000000001", loaded.User())
	assert.Equal(t, "dark", loaded.Get("theme"))
}

func TestSessionDestroy(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.SetUser("someone")

	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, sess))
	cookie := res.Result().Cookies()[0]

	sm.Destroy(sess)
	res2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res2, sess))

	expired := res2.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Negative(t, expired[0].MaxAge)

	// The stored payload is gone: reloading yields an empty session.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookie)
	reloaded, err := sm.Load(ctx, req2)
	require.NoError(t, err)
	assert.Empty(t, reloaded.User())
}

func TestActorFromContext(t *testing.T) {
	_, ok := ActorFromContext(context.Background())
	assert.False(t, ok)

	sess := &Session{}
	sess.SetUser("not-a-uuid")
	ctx := ContextWithSession(context.Background(), sess)
	_, ok = ActorFromContext(ctx)
	assert.False(t, ok)

	sess2 := &Session{}
	sess2.SetUser("1f3b4cde-0000-4000-8000-000000000001")
	ctx2 := ContextWithSession(context.Background(), sess2)
	actor, ok := ActorFromContext(ctx2)
	require.True(t, ok)
	assert.Equal(t, "1f3b4cde-0000-4000-8000-000000000001", actor.String())
}
