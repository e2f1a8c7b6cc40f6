package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairs/internal/model"
)

func init() { gin.SetMode(gin.TestMode) }

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type fakeSession struct {
	authenticated bool
	exp           time.Time
	role          *model.Role
}

func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) AccessTokenExpiry() (time.Time, bool) {
	return f.exp, !f.exp.IsZero()
}
func (f fakeSession) Role() *model.Role { return f.role }

func guarded(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/x", append(mw, func(c *gin.Context) { c.Status(http.StatusOK) })...)
	return r
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name    string
		session fakeSession
		status  int
		body    string
	}{
		{"signed out", fakeSession{}, http.StatusUnauthorized, `{"message":"Authentication required"}`},
		{"expired token", fakeSession{authenticated: true, exp: time.Now().Add(-time.Minute)}, http.StatusUnauthorized, `{"message":"Session expired, refresh or sign in again"}`},
		{"opaque token", fakeSession{authenticated: true}, http.StatusOK, ""},
		{"valid token", fakeSession{authenticated: true, exp: time.Now().Add(time.Hour)}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(guarded(RequireSession(tt.session)), http.MethodGet, "/x", nil)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	role := &model.Role{Title: "cashier", Permissions: []model.Permission{{Title: "view_sales"}}}

	w := perform(guarded(RequirePermission(fakeSession{role: role}, "manage_users", "view_sales")), http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(guarded(RequirePermission(fakeSession{role: role}, "manage_users")), http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(guarded(RequirePermission(fakeSession{}, "view_sales")), http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { seen = c.GetString(RequestIDKey) })

	w := perform(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = perform(r, http.MethodGet, "/x", nil)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.PATCH("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/x", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery(), ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/err", func(c *gin.Context) { _ = c.Error(errors.New("db: secret detail")) })
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/err", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	w = perform(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLimiter_Window(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	ok, _ := l.allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = l.allow("1.1.1.1")
	assert.True(t, ok)
	ok, end := l.allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), end)

	other, _ := l.allow("2.2.2.2")
	assert.True(t, other, "limits are per IP")

	now = now.Add(61 * time.Second)
	ok, _ = l.allow("1.1.1.1")
	assert.True(t, ok, "window resets")
}

func TestLimiter_PurgesExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiter(5, time.Minute)
	l.now = func() time.Time { return now }

	l.allow("1.1.1.1")
	l.allow("2.2.2.2")
	require.Len(t, l.windows, 2)

	now = now.Add(purgeInterval + time.Second)
	l.allow("3.3.3.3")
	assert.Len(t, l.windows, 1)
}

func TestRateLimiter_Responds429(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/x", nil).Code)
	w := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
