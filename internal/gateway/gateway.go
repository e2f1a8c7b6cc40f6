// Package gateway is the single choke point for traffic to the remote REST
// API: it builds the request, attaches the bearer token and normalizes every
// outcome into either a JSON payload or a *gateway.Error.
package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"repairs/internal/apierror"
	"repairs/internal/infra"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Options describes one call. A nil Body sends no body.
type Options struct {
	Method  string
	Body    interface{}
	Headers map[string]string
}

// Config holds the gateway's tunables.
type Config struct {
	BaseURL string
	// Timeout bounds each call; zero waits as long as the server does.
	Timeout time.Duration
	// Coalesce lets concurrent identical GETs share one round trip.
	Coalesce bool
	// Breaker, when set, fails calls fast while the API is down.
	Breaker    *infra.CircuitBreaker
	HTTPClient *http.Client
}

type Gateway struct {
	baseURL    string
	timeout    time.Duration
	coalesce   bool
	breaker    *infra.CircuitBreaker
	httpClient *http.Client
	flights    singleflight.Group
}

func New(cfg Config) *Gateway {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Gateway{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		coalesce:   cfg.Coalesce,
		breaker:    cfg.Breaker,
		httpClient: client,
	}
}

// BaseURL is the configured API root, without a trailing slash.
func (g *Gateway) BaseURL() string { return g.baseURL }

// BreakerState reports the breaker state for health checks.
func (g *Gateway) BreakerState() string {
	if g.breaker == nil {
		return "disabled"
	}
	return g.breaker.State().String()
}

// Request issues one call to baseURL+path and returns the JSON response body.
// A non-empty token is sent as `Authorization: Bearer <token>`. Any non-2xx
// status, network failure or non-JSON body is returned as *Error.
func (g *Gateway) Request(ctx context.Context, path string, opts Options, token string) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	url := g.url(path)

	var body []byte
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &Error{Kind: KindEncode, Message: "Invalid request payload", Err: fmt.Errorf("gateway: marshal body: %w", err)}
		}
		body = b
	}

	if !g.coalesce || method != http.MethodGet {
		return g.do(ctx, method, url, body, opts.Headers, token)
	}
	return g.shared(ctx, method, url, body, opts.Headers, token)
}

// shared runs the call through the single-flight group. The flight itself is
// detached from any one caller's cancellation; each caller stops waiting when
// its own context ends.
func (g *Gateway) shared(ctx context.Context, method, url string, body []byte, headers map[string]string, token string) (json.RawMessage, error) {
	key := flightKey(method, url, body, headers, token)
	ch := g.flights.DoChan(key, func() (interface{}, error) {
		return g.do(context.WithoutCancel(ctx), method, url, body, headers, token)
	})

	select {
	case <-ctx.Done():
		return nil, canceled(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		raw := res.Val.(json.RawMessage)
		if res.Shared {
			raw = append(json.RawMessage(nil), raw...)
		}
		return raw, nil
	}
}

func (g *Gateway) do(ctx context.Context, method, url string, body []byte, headers map[string]string, token string) (raw json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		observe(method, err, time.Since(start).Seconds())
		logCall(method, url, err, time.Since(start))
	}()

	if g.breaker != nil {
		if berr := g.breaker.Allow(); berr != nil {
			return nil, &Error{Kind: KindCircuitOpen, Message: "Service temporarily unavailable", Err: berr}
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Error{Kind: KindEncode, Message: "Invalid request", Err: fmt.Errorf("gateway: create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, canceled(err)
		}
		g.failure()
		return nil, &Error{Kind: KindTransport, Message: "Network error: unable to reach the server", Err: fmt.Errorf("gateway: %s %s: %w", method, url, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		g.failure()
		return nil, &Error{Kind: KindTransport, Message: "Network error: incomplete response", Err: fmt.Errorf("gateway: read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode >= 500 {
			g.failure()
		} else {
			g.success()
		}
		msg, ok := apierror.MessageFrom(data)
		if !ok {
			msg = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		}
		return nil, &Error{Kind: KindHTTP, Status: resp.StatusCode, Message: msg}
	}
	g.success()

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(data) {
		return nil, &Error{Kind: KindDecode, Status: resp.StatusCode, Message: "Invalid JSON in server response"}
	}
	return json.RawMessage(data), nil
}

func (g *Gateway) url(path string) string {
	if path == "" {
		return g.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.baseURL + path
}

func (g *Gateway) success() {
	if g.breaker != nil {
		g.breaker.Success()
	}
}

func (g *Gateway) failure() {
	if g.breaker != nil {
		g.breaker.Failure()
	}
}

func canceled(cause error) *Error {
	return &Error{Kind: KindCanceled, Message: "Request cancelled", Err: cause}
}

// flightKey identifies identical calls. The token is hashed so two users never
// share a response.
func flightKey(method, url string, body []byte, headers map[string]string, token string) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(url))
	h.Write([]byte{0})
	h.Write(body)
	h.Write([]byte{0})
	h.Write([]byte(token))
	for _, k := range sortedKeys(headers) {
		h.Write([]byte{0})
		h.Write([]byte(k + "=" + headers[k]))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func logCall(method, url string, err error, latency time.Duration) {
	if err == nil {
		log.Debug().Str("method", method).Str("url", url).Dur("latency", latency).Msg("gateway: request ok")
		return
	}
	var gerr *Error
	errors.As(err, &gerr)
	evt := log.Warn()
	if gerr != nil && gerr.Kind == KindCanceled {
		evt = log.Debug()
	}
	evt.Str("method", method).
		Str("url", url).
		Str("kind", KindOf(err).String()).
		Int("status", StatusOf(err)).
		Dur("latency", latency).
		AnErr("cause", errors.Unwrap(err)).
		Msg("gateway: request failed")
}
