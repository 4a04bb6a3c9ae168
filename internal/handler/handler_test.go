package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"devhub-api/internal/config"
	"devhub-api/internal/integrations/github"
	"devhub-api/internal/middleware"
	"devhub-api/internal/models"
	"devhub-api/internal/repository"
	"devhub-api/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory service.Store for wire-level tests
type memStore struct {
	users    map[string]*models.User
	profiles map[string]*models.Profile
	posts    map[string]*models.Post
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		profiles: map[string]*models.Profile{},
		posts:    map[string]*models.Post{},
	}
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	for _, e := range m.users {
		if e.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = u
	return nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	for postID, p := range m.posts {
		if p.UserID == id {
			delete(m.posts, postID)
		}
	}
	delete(m.profiles, id)
	delete(m.users, id)
	return nil
}

func (m *memStore) SaveProfile(_ context.Context, p *models.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	m.profiles[p.UserID] = p
	return nil
}

func (m *memStore) FindProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u, ok := m.users[userID]; ok {
		p.Name = u.Name
		p.Avatar = u.Avatar
	}
	return p, nil
}

func (m *memStore) ListProfiles(_ context.Context) ([]*models.Profile, error) {
	profiles := []*models.Profile{}
	for userID := range m.profiles {
		p, _ := m.FindProfileByUserID(context.Background(), userID)
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (m *memStore) CreatePost(_ context.Context, p *models.Post) error {
	p.CreatedAt = time.Now().UTC()
	m.posts[p.ID] = p
	return nil
}

func (m *memStore) FindPostByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *memStore) ListPosts(_ context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *memStore) UpdatePost(_ context.Context, p *models.Post) error {
	if _, ok := m.posts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	m.posts[p.ID] = p
	return nil
}

func (m *memStore) DeletePost(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type testAPI struct {
	router http.Handler
	store  *memStore
}

func newTestAPI(t *testing.T, githubURL string) *testAPI {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour, GithubURL: githubURL}

	store := newMemStore()
	svc := service.NewService(store, log, cfg, nil)
	gh := github.NewClient(cfg, log)
	h := NewHandler(svc, gh, log)

	return &testAPI{
		router: h.Routes(middleware.AuthMiddleware(cfg)),
		store:  store,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, name, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRoot(t *testing.T) {
	api := newTestAPI(t, "")
	rec := api.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"API running"}`, rec.Body.String())
}

func TestRegister_ThenDuplicate(t *testing.T) {
	api := newTestAPI(t, "")

	api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Email has already existed"}]}`, rec.Body.String())
}

func TestRegister_Validation(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeJSON[map[string][]map[string]string](t, rec)
	msgs := []string{}
	for _, e := range resp["errors"] {
		msgs = append(msgs, e["msg"])
	}
	assert.Contains(t, msgs, "Name is required")
	assert.Contains(t, msgs, "Invalid Email")
	assert.Contains(t, msgs, "Please enter a password with 6 or more characters")
}

func TestLogin_AndCurrentUser(t *testing.T) {
	api := newTestAPI(t, "")
	api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeJSON[map[string]string](t, rec)["token"]
	require.NotEmpty(t, token)

	rec = api.do(t, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "A", user["name"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_InvalidCredentialsUniform(t *testing.T) {
	api := newTestAPI(t, "")
	api.register(t, "A", "a@x.com")

	recUnknown := api.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "b@x.com", "password": "secret1",
	})
	recWrong := api.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "a@x.com", "password": "wrong-pass",
	})

	assert.Equal(t, http.StatusBadRequest, recUnknown.Code)
	assert.Equal(t, http.StatusBadRequest, recWrong.Code)
	assert.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, "")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth"},
		{http.MethodGet, "/api/profiles/me"},
		{http.MethodPost, "/api/profiles"},
		{http.MethodGet, "/api/posts"},
	} {
		rec := api.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestProfileUpsertAndFetch(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodGet, "/api/profiles/me", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/profiles", token, map[string]string{
		"status": "Developer", "skills": "Go, SQL", "company": "Acme",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decodeJSON[models.Profile](t, rec)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
	assert.Equal(t, "Acme", profile.Company)

	rec = api.do(t, http.MethodGet, "/api/profiles/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/profiles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profiles := decodeJSON[[]models.Profile](t, rec)
	assert.Len(t, profiles, 1)
}

func TestProfileUpsert_RequiresStatusAndSkills(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/profiles", token, map[string]string{"bio": "hi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExperienceLifecycle(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/profiles", token, map[string]string{
		"status": "Developer", "skills": "Go",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/profiles/experience", token, map[string]string{
		"title": "Eng", "company": "Acme", "from": "2020-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decodeJSON[models.Profile](t, rec)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Eng", profile.Experience[0].Title)
	assert.Equal(t, "Acme", profile.Experience[0].Company)
	assert.Equal(t, "2020-01-01", profile.Experience[0].From)

	// Unknown id deletes nothing.
	rec = api.do(t, http.MethodDelete, "/api/profiles/experience/unknown-id", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile = decodeJSON[models.Profile](t, rec)
	assert.Len(t, profile.Experience, 1)

	rec = api.do(t, http.MethodDelete, "/api/profiles/experience/"+profile.Experience[0].ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile = decodeJSON[models.Profile](t, rec)
	assert.Empty(t, profile.Experience)
}

func TestPostLifecycle(t *testing.T) {
	api := newTestAPI(t, "")
	alice := api.register(t, "A", "a@x.com")
	bob := api.register(t, "B", "b@x.com")

	rec := api.do(t, http.MethodPost, "/api/posts", alice, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	post := decodeJSON[models.Post](t, rec)
	assert.Equal(t, "A", post.Name)

	rec = api.do(t, http.MethodPut, "/api/posts/like/"+post.ID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decodeJSON[models.Post](t, rec)
	require.Len(t, liked.Likes, 1)

	rec = api.do(t, http.MethodPut, "/api/posts/like/"+post.ID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"Already liked"}`, rec.Body.String())

	rec = api.do(t, http.MethodPut, "/api/posts/dislike/"+post.ID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unliked := decodeJSON[models.Post](t, rec)
	assert.Empty(t, unliked.Likes)

	rec = api.do(t, http.MethodPut, "/api/posts/dislike/"+post.ID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"Post has not been liked yet"}`, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/posts/comment/"+post.ID, bob, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeJSON[[]models.Comment](t, rec)
	require.Len(t, comments, 1)

	// Only the comment author may remove it.
	rec = api.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Only the post author may delete the post.
	rec = api.do(t, http.MethodDelete, "/api/posts/"+post.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/posts/"+post.ID, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/posts/"+post.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPost_MalformedID(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodGet, "/api/posts/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"Post not found"}`, rec.Body.String())
}

func TestDeleteAccount_Cascades(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "A", "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/profiles", token, map[string]string{
		"status": "Developer", "skills": "Go",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPost, "/api/posts", token, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/profiles", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, api.store.users)
	assert.Empty(t, api.store.profiles)
	assert.Empty(t, api.store.posts)
}

func TestGithubProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat/repos" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"name":"hello-world"}]`))
			return
		}
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	api := newTestAPI(t, upstream.URL)

	rec := api.do(t, http.MethodGet, "/api/profiles/github/octocat", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"hello-world"}]`, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/profiles/github/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"No Github profile found"}`, rec.Body.String())
}
