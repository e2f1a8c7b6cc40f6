package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairs/internal/config"
	"repairs/internal/gateway"
	"repairs/internal/model"
	"repairs/internal/session"
)

func setup(t *testing.T, cfg *config.Config) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := gin.New()
	api.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`[]`))
	})
	api.GET("/invites/verify/:token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"valid": true, "email": "new@x.com"})
	})
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store, err := session.New(context.Background(), session.NewMemoryPersister(), "")
	require.NoError(t, err)
	gw := gateway.New(gateway.Config{BaseURL: srv.URL})

	if cfg == nil {
		cfg = &config.Config{Env: "development", PDFStoragePath: t.TempDir(), CompanyName: "Repairs"}
	}
	return New(cfg, gw, store, nil, nil), store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func signIn(t *testing.T, store *session.Store, role *model.Role) {
	t.Helper()
	require.NoError(t, store.SetAuthenticated(context.Background(), "tok", "ref", &model.User{ID: "u1"}, role))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	r, store := setup(t, nil)

	for _, path := range []string{"/v1/clients", "/v1/jobs/j1", "/v1/dashboard", "/v1/users/me", "/v1/invoices/i1/pdf"} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}

	signIn(t, store, nil)
	w := get(r, "/v1/clients")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"pageSize":20,"pages":0}`, w.Body.String())
}

func TestPublicRoutes(t *testing.T) {
	r, _ := setup(t, nil)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(r, "/v1/auth/session").Code)

	w := get(r, "/v1/invites/verify/abc")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "new@x.com")

	w = get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}

func TestStaticRoutesBeatIDs(t *testing.T) {
	r, store := setup(t, nil)
	signIn(t, store, nil)

	w := get(r, "/v1/clients/export.xlsx")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	w = get(r, "/v1/products/low-stock")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestAdminPermission(t *testing.T) {
	cfg := &config.Config{Env: "development", AdminPermission: "manage_users", PDFStoragePath: t.TempDir()}
	r, store := setup(t, cfg)

	signIn(t, store, &model.Role{ID: "r2", Title: "clerk"})
	assert.Equal(t, http.StatusForbidden, get(r, "/v1/users").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/v1/invites").Code)
	assert.Equal(t, http.StatusOK, get(r, "/v1/clients").Code)

	signIn(t, store, &model.Role{ID: "r1", Title: "admin", Permissions: []model.Permission{{ID: "p1", Title: "manage_users"}}})
	assert.Equal(t, http.StatusOK, get(r, "/v1/users").Code)
}

func TestInvoiceEmailDisabledWithoutQueue(t *testing.T) {
	r, store := setup(t, nil)
	signIn(t, store, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/invoices/i1/email", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
