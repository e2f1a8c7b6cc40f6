package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"repairs/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Fake API ─────────────────────────────────────────────────────────────────

type captured struct {
	method string
	path   string
	header http.Header
	body   map[string]interface{}
}

func fakeAPI(t *testing.T, register func(r *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(srv *httptest.Server) *Gateway {
	return New(Config{BaseURL: srv.URL + "/api/"})
}

// ── Request shape ────────────────────────────────────────────────────────────

func TestRequest_HeadersAndBody(t *testing.T) {
	var got captured
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.POST("/api/clients", func(c *gin.Context) {
			got.method = c.Request.Method
			got.path = c.Request.URL.Path
			got.header = c.Request.Header.Clone()
			_ = c.ShouldBindJSON(&got.body)
			c.JSON(http.StatusCreated, gin.H{"id": "c1"})
		})
	})
	gw := newGateway(srv)

	raw, err := gw.Request(context.Background(), "clients", Options{
		Method:  http.MethodPost,
		Body:    map[string]string{"name": "Jane"},
		Headers: map[string]string{"X-Trace": "abc"},
	}, "tok123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1"}`, string(raw))

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/clients", got.path)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok123", got.header.Get("Authorization"))
	assert.Equal(t, "abc", got.header.Get("X-Trace"))
	assert.Equal(t, "Jane", got.body["name"])
}

func TestRequest_NoAuthorizationWithoutToken(t *testing.T) {
	var header http.Header
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/products", func(c *gin.Context) {
			header = c.Request.Header.Clone()
			c.JSON(http.StatusOK, []gin.H{})
		})
	})

	_, err := newGateway(srv).Request(context.Background(), "/products", Options{}, "")
	require.NoError(t, err)
	_, present := header["Authorization"]
	assert.False(t, present)
}

func TestRequest_CallerHeadersOverrideDefaults(t *testing.T) {
	var accept string
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/invoices/i1", func(c *gin.Context) {
			accept = c.GetHeader("Accept")
			c.JSON(http.StatusOK, gin.H{"id": "i1"})
		})
	})

	_, err := newGateway(srv).Request(context.Background(), "/invoices/i1",
		Options{Headers: map[string]string{"Accept": "application/vnd.api+json"}}, "")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.api+json", accept)
}

// ── Failure normalization ────────────────────────────────────────────────────

func TestRequest_ServerMessageOnFailure(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/invoices", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db unavailable"})
		})
	})

	_, err := newGateway(srv).Request(context.Background(), "/invoices", Options{}, "tok123")
	require.Error(t, err)
	assert.Equal(t, "db unavailable", err.Error())
	assert.Equal(t, KindHTTP, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestRequest_GenericMessageWhenBodyHasNone(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/jobs", func(c *gin.Context) {
			c.String(http.StatusBadGateway, "<html>bad gateway</html>")
		})
	})

	_, err := newGateway(srv).Request(context.Background(), "/jobs", Options{}, "")
	require.Error(t, err)
	assert.Equal(t, "Request failed with status 502", err.Error())
}

func TestRequest_Unauthorized(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/users/me", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "jwt expired"})
		})
	})

	_, err := newGateway(srv).Request(context.Background(), "/users/me", Options{}, "old")
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "jwt expired", err.Error())
}

func TestRequest_MalformedJSON(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/clients", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(`{"id":`))
		})
	})

	_, err := newGateway(srv).Request(context.Background(), "/clients", Options{}, "")
	assert.Equal(t, KindDecode, KindOf(err))
}

func TestRequest_EmptySuccessBodyIsNull(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.DELETE("/api/clients/c1", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	})

	raw, err := newGateway(srv).Request(context.Background(), "/clients/c1", Options{Method: http.MethodDelete}, "t")
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Request(context.Background(), "/clients", Options{}, "")
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.NotEmpty(t, err.Error())
}

func TestRequest_EncodeFailure(t *testing.T) {
	gw := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := gw.Request(context.Background(), "/clients", Options{Method: http.MethodPost, Body: make(chan int)}, "")
	assert.Equal(t, KindEncode, KindOf(err))
}

// ── Cancellation & timeout ───────────────────────────────────────────────────

func TestRequest_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/jobs", func(c *gin.Context) {
			select {
			case <-release:
			case <-c.Request.Context().Done():
			}
			c.JSON(http.StatusOK, []gin.H{})
		})
	})
	defer close(release)

	for _, coalesce := range []bool{false, true} {
		gw := New(Config{BaseURL: srv.URL + "/api", Coalesce: coalesce})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		_, err := gw.Request(ctx, "/jobs", Options{}, "")
		cancel()
		require.Error(t, err)
		assert.Contains(t, []Kind{KindCanceled, KindTransport}, KindOf(err), "coalesce=%v", coalesce)
	}
}

func TestRequest_ExplicitCancelIsCanceledKind(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/jobs", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})
	})
	gw := New(Config{BaseURL: srv.URL + "/api"})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := gw.Request(ctx, "/jobs", Options{}, "")
	assert.Equal(t, KindCanceled, KindOf(err))
}

func TestRequest_Timeout(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/slow", func(c *gin.Context) {
			select {
			case <-time.After(2 * time.Second):
			case <-c.Request.Context().Done():
			}
		})
	})
	gw := New(Config{BaseURL: srv.URL + "/api", Timeout: 30 * time.Millisecond})

	_, err := gw.Request(context.Background(), "/slow", Options{}, "")
	assert.Equal(t, KindTransport, KindOf(err))
}

// ── Coalescing ───────────────────────────────────────────────────────────────

func TestRequest_CoalescesConcurrentGets(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/clients", func(c *gin.Context) {
			hits.Add(1)
			<-release
			c.JSON(http.StatusOK, []gin.H{{"id": "c1"}})
		})
	})
	gw := New(Config{BaseURL: srv.URL + "/api", Coalesce: true})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]json.RawMessage, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = gw.Request(context.Background(), "/clients", Options{}, "tok")
		}(i)
	}
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.JSONEq(t, `[{"id":"c1"}]`, string(results[i]))
	}
}

func TestRequest_DoesNotCoalesceWrites(t *testing.T) {
	var hits atomic.Int32
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.POST("/api/payments", func(c *gin.Context) {
			hits.Add(1)
			time.Sleep(20 * time.Millisecond)
			c.JSON(http.StatusCreated, gin.H{"id": "p"})
		})
	})
	gw := New(Config{BaseURL: srv.URL + "/api", Coalesce: true})

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.Request(context.Background(), "/payments", Options{Method: http.MethodPost, Body: gin.H{"amount": 10}}, "tok")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(3), hits.Load())
}

func TestFlightKey_SeparatesTokens(t *testing.T) {
	a := flightKey("GET", "http://x/clients", nil, nil, "alice")
	b := flightKey("GET", "http://x/clients", nil, nil, "bob")
	c := flightKey("GET", "http://x/clients", nil, map[string]string{"X-Page": "2"}, "alice")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, flightKey("GET", "http://x/clients", nil, nil, "alice"))
}

// ── Circuit breaker ──────────────────────────────────────────────────────────

func TestRequest_BreakerFailsFastWhenOpen(t *testing.T) {
	var hits atomic.Int32
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.GET("/api/jobs", func(c *gin.Context) {
			hits.Add(1)
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "down"})
		})
	})
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute})
	gw := New(Config{BaseURL: srv.URL + "/api", Breaker: cb})

	for i := 0; i < 2; i++ {
		_, err := gw.Request(context.Background(), "/jobs", Options{}, "")
		assert.Equal(t, "down", err.Error())
	}
	assert.Equal(t, "open", gw.BreakerState())

	_, err := gw.Request(context.Background(), "/jobs", Options{}, "")
	assert.Equal(t, KindCircuitOpen, KindOf(err))
	assert.Equal(t, int32(2), hits.Load(), "no network call while open")
}

func TestRequest_ClientErrorsDoNotTripBreaker(t *testing.T) {
	srv := fakeAPI(t, func(r *gin.Engine) {
		r.POST("/api/clients", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
		})
	})
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 1})
	gw := New(Config{BaseURL: srv.URL + "/api", Breaker: cb})

	for i := 0; i < 3; i++ {
		_, err := gw.Request(context.Background(), "/clients", Options{Method: http.MethodPost, Body: gin.H{}}, "")
		assert.Equal(t, "Email already exists", err.Error())
	}
	assert.Equal(t, "closed", gw.BreakerState())
}

func TestBreakerState_Disabled(t *testing.T) {
	assert.Equal(t, "disabled", New(Config{BaseURL: "http://x"}).BreakerState())
}
