package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-todo-api/internal/core/auth"
	"go-todo-api/internal/domain"
	"go-todo-api/internal/service"
	"go-todo-api/internal/testutil"
	"go-todo-api/internal/transport/http/router"
)

type env struct {
	engine     *gin.Engine
	adminToken string
	userToken  string
	users      *service.UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tasks := service.NewTaskService(testutil.NewMemTaskRepo(), nil)
	users := service.NewUserService(testutil.NewMemUserRepo(), nil)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

	ctx := context.Background()
	admin, err := users.EnsureSeedAdmin(ctx, "admin", "admin-secret")
	require.NoError(t, err)
	adminP := domain.Principal{ID: admin.ID, Name: admin.Name, Roles: admin.Roles}

	plain, err := users.Create(ctx, adminP, service.UserDraft{
		Name: "user", Password: "user-secret", Roles: []string{domain.RoleUser},
	})
	require.NoError(t, err)

	adminToken, err := jwter.Issue(admin)
	require.NoError(t, err)
	userToken, err := jwter.Issue(plain)
	require.NoError(t, err)

	return &env{
		engine:     router.NewAPIEngine(zap.NewNop(), tasks, users, jwter),
		adminToken: adminToken,
		userToken:  userToken,
		users:      users,
	}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLogin(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "user", "password": "user-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[map[string]any](t, w)
	assert.NotEmpty(t, out["token"])

	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "user", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "ghost", "password": "user-secret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMissingToken(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskLifecycle(t *testing.T) {
	e := newEnv(t)

	// create
	w := e.do(t, http.MethodPost, "/api/v1/tasks", e.userToken, gin.H{"name": "new-task"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.Task](t, w)
	assert.Equal(t, "new-task", created.Name)
	assert.EqualValues(t, 0, created.Version)
	assert.False(t, created.Created.IsZero())

	// blank name rejected
	w = e.do(t, http.MethodPost, "/api/v1/tasks", e.userToken, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// list contains it, and only for its owner
	w = e.do(t, http.MethodGet, "/api/v1/tasks", e.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.Task](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "new-task", list[0].Name)

	w = e.do(t, http.MethodGet, "/api/v1/tasks", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.Task](t, w))

	// update with the current version
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", created.ID), e.userToken,
		gin.H{"name": "updated", "version": created.Version})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[domain.Task](t, w)
	assert.Equal(t, "updated", updated.Name)
	assert.Equal(t, created.Version+1, updated.Version)

	// stale version conflicts
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", created.ID), e.userToken,
		gin.H{"name": "too-late", "version": created.Version})
	assert.Equal(t, http.StatusConflict, w.Code)

	// complete
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d/complete", created.ID), e.userToken, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", created.ID), e.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[domain.Task](t, w)
	assert.True(t, done.Complete)
	assert.Equal(t, updated.Version+1, done.Version)

	// delete, then it is gone
	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", created.ID), e.userToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", created.ID), e.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskOwnership(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/tasks", e.adminToken, gin.H{"name": "admins-task"})
	require.Equal(t, http.StatusCreated, w.Code)
	adminTask := decode[domain.Task](t, w)

	// another user updating it gets the unauthorized-style answer
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", adminTask.ID), e.userToken,
		gin.H{"name": "to-update", "version": adminTask.Version})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// record unchanged
	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", adminTask.ID), e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Task](t, w)
	assert.Equal(t, "admins-task", got.Name)
	assert.Equal(t, adminTask.Version, got.Version)
}

func TestTaskUpdateNonExistent(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPut, "/api/v1/tasks/1337", e.userToken, gin.H{"name": "updated"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskCompleteAcceptsQuotedBoolean(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/tasks", e.userToken, gin.H{"name": "toggle-me"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.Task](t, w)

	// some clients send the boolean as a JSON string
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d/complete", created.ID), e.userToken, "true")
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", created.ID), e.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[domain.Task](t, w).Complete)

	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d/complete", created.ID), e.userToken, "not-a-bool")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	e := newEnv(t)

	// list users: admin only, passwords redacted
	w := e.do(t, http.MethodGet, "/api/v1/users", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]map[string]any](t, w)
	require.GreaterOrEqual(t, len(users), 1)
	assert.Equal(t, "admin", users[0]["name"])
	assert.NotContains(t, w.Body.String(), "password")

	w = e.do(t, http.MethodGet, "/api/v1/users", e.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// create user
	w = e.do(t, http.MethodPost, "/api/v1/users", e.adminToken,
		gin.H{"name": "test", "password": "test", "roles": []string{"user"}})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)
	assert.Equal(t, "test", created["name"])
	assert.NotContains(t, created, "password")
	assert.NotEmpty(t, created["created"])
	assert.EqualValues(t, 0, created["version"])

	w = e.do(t, http.MethodPost, "/api/v1/users", e.userToken,
		gin.H{"name": "test-unauthorized", "password": "test", "roles": []string{"user"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/users", e.adminToken,
		gin.H{"name": "user", "password": "test", "roles": []string{"user"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	// self
	w = e.do(t, http.MethodGet, "/api/v1/users/self", e.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	self := decode[domain.User](t, w)
	assert.Equal(t, "user", self.Name)

	// update with stale version
	w = e.do(t, http.MethodPut, "/api/v1/users/0", e.adminToken,
		gin.H{"name": "after-update", "version": 1337})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodPut, "/api/v1/users/99999", e.adminToken,
		gin.H{"name": "idontexist", "version": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// rename with the right version bumps it
	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", self.ID), e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	current := decode[domain.User](t, w)
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", self.ID), e.adminToken,
		gin.H{"name": "renamed", "roles": current.Roles, "version": current.Version})
	require.Equal(t, http.StatusOK, w.Code)
	renamed := decode[domain.User](t, w)
	assert.Equal(t, "renamed", renamed.Name)
	assert.Equal(t, current.Version+1, renamed.Version)
}

func TestChangePasswordOverHTTP(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPut, "/api/v1/users/self/password", e.userToken,
		gin.H{"currentPassword": "aaaaaa", "newPassword": "changed"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodPut, "/api/v1/users/self/password", e.userToken,
		gin.H{"currentPassword": "user-secret", "newPassword": "changed"})
	assert.Equal(t, http.StatusOK, w.Code)

	// the new password logs in, the old one does not
	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "user", "password": "changed"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"name": "user", "password": "user-secret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
