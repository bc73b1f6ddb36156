package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/stretchr/testify/require"

	"github.com/craftfolio/craftfolio-server/internal/api/handlers"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
	"github.com/craftfolio/craftfolio-server/internal/uploader"
)

type memUsers struct {
	users map[string]*models.User
}

func (s *memUsers) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	s.users[user.Email] = user
	return nil
}

func (s *memUsers) UserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (s *memUsers) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type memProfiles struct {
	profiles map[uuid.UUID]*models.Profile
}

func (s *memProfiles) ProfileByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return profile, nil
}

func (s *memProfiles) SaveProfile(_ context.Context, profile *models.Profile) error {
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *memProfiles) DeleteProfile(_ context.Context, userID uuid.UUID) error {
	if _, ok := s.profiles[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.profiles, userID)
	return nil
}

type memUploader struct{}

func (memUploader) Upload(_ context.Context, _ []byte, filename, _, folder string) (*uploader.Result, error) {
	return &uploader.Result{URL: "https://cdn.example.com/" + folder + "/" + filename, FileID: folder + "/" + filename}, nil
}

func newMonolith(t *testing.T) *httptest.Server {
	t.Helper()
	secret := []byte("router-secret")
	ah := handlers.NewAuthHandler(&memUsers{users: make(map[string]*models.User)}, secret, false)
	ph := handlers.NewProfileHandler(&memProfiles{profiles: make(map[uuid.UUID]*models.Profile)}, memUploader{}, "portfolio")

	srv := httptest.NewServer(SetupPortfolioRouter(ah, ph, secret, "", cors.Options{}))
	t.Cleanup(srv.Close)
	return srv
}

// noRedirect keeps 3xx responses visible to the test.
func noRedirect() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestMonolithSessionFlow(t *testing.T) {
	t.Parallel()

	srv := newMonolith(t)
	client := noRedirect()

	// Sign up and capture the session cookie.
	resp, err := client.Post(srv.URL+"/signup", "application/json",
		strings.NewReader(`{"fullname":"Alice","email":"a@x.com","password":"secret1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			session = c
		}
	}
	require.NotNil(t, session)

	withSession := func(method, path string, body string) *http.Response {
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		req.AddCookie(session)
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	// No profile yet.
	resp = withSession(http.MethodGet, "/profile", "")
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Fill it in.
	resp = withSession(http.MethodPost, "/profile", `{"bio":"Backend dev","phone":"1234567890"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = withSession(http.MethodGet, "/profile", "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = withSession(http.MethodGet, "/preview", "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMonolithRejectsAnonymousProfile(t *testing.T) {
	t.Parallel()

	srv := newMonolith(t)
	resp, err := http.Get(srv.URL + "/profile")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMonolithRootRedirect(t *testing.T) {
	t.Parallel()

	srv := newMonolith(t)
	resp, err := noRedirect().Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/profile", resp.Header.Get("Location"))
}

func TestMonolithHealthAndMetrics(t *testing.T) {
	t.Parallel()

	srv := newMonolith(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
