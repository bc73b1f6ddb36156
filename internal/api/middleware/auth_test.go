package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/craftfolio/craftfolio-server/internal/auth"
)

const testSecret = "mw-secret"

func identityEcho(t *testing.T, want string) (http.Handler, *bool) {
	t.Helper()
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, want, identity.Email)
	}), &called
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken("8b9f9b3e-1111-4222-8333-444455556666", "a@x.com", "Alice", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	t.Parallel()

	next, called := identityEcho(t, "a@x.com")
	handler := RequireAuth([]byte(testSecret))(next)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, *called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_Cookie(t *testing.T) {
	t.Parallel()

	next, called := identityEcho(t, "a@x.com")
	handler := RequireAuth([]byte(testSecret))(next)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: validToken(t)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, *called)
}

func TestRequireAuth_Rejections(t *testing.T) {
	t.Parallel()

	handler := RequireAuth([]byte(testSecret))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Token "+validToken(t))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := auth.GenerateToken("id", "a@x.com", "Alice", []byte("other"), time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRemoteAuth_Unavailable(t *testing.T) {
	t.Parallel()

	// Nothing listens here; the verify call must fail fast as 502.
	client := auth.NewVerifyClient("http://127.0.0.1:1", 100*time.Millisecond)
	handler := RequireRemoteAuth(client)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRequireRemoteAuth_Valid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"valid":true,"user":{"id":"8b9f9b3e-1111-4222-8333-444455556666","fullname":"Alice","email":"a@x.com"}}}`))
	}))
	defer srv.Close()

	next, called := identityEcho(t, "a@x.com")
	client := auth.NewVerifyClient(srv.URL, time.Second)
	handler := RequireRemoteAuth(client)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, *called)
	require.Equal(t, http.StatusOK, rec.Code)
}
