package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"repairs/internal/dto"
	"repairs/internal/gateway"
)

// Requester is the gateway surface the wrappers depend on.
type Requester interface {
	Request(ctx context.Context, path string, opts gateway.Options, token string) (json.RawMessage, error)
}

var errMissingID = errors.New("id is required")

// call issues one request and decodes the response into T.
func call[T any](ctx context.Context, r Requester, method, path string, body interface{}, token string) Result[T] {
	raw, err := r.Request(ctx, path, gateway.Options{Method: method, Body: body}, token)
	if err != nil {
		return FromError[T](err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return Fail[T](fmt.Sprintf("Unexpected response from server: %v", err))
	}
	return Ok(out)
}

// send validates payload before issuing the request. An invalid payload never
// reaches the network.
func send[T any](ctx context.Context, r Requester, method, path string, payload interface{}, token string) Result[T] {
	if err := dto.Validate(payload); err != nil {
		return FromError[T](err)
	}
	return call[T](ctx, r, method, path, payload, token)
}

// join appends escaped path segments to base.
func join(base string, segments ...string) string {
	p := base
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

// Crud is the standard operation set over one collection path. T is the
// entity returned by the API, C the create payload and U the update payload.
type Crud[T any, C any, U any] struct {
	r    Requester
	path string
}

func NewCrud[T any, C any, U any](r Requester, path string) *Crud[T, C, U] {
	return &Crud[T, C, U]{r: r, path: path}
}

// Path is the collection path, e.g. "/clients".
func (c *Crud[T, C, U]) Path() string { return c.path }

func (c *Crud[T, C, U]) GetAll(ctx context.Context, token string) Result[[]T] {
	return call[[]T](ctx, c.r, http.MethodGet, c.path, nil, token)
}

func (c *Crud[T, C, U]) GetByID(ctx context.Context, id, token string) Result[T] {
	if id == "" {
		return FromError[T](errMissingID)
	}
	return call[T](ctx, c.r, http.MethodGet, join(c.path, id), nil, token)
}

func (c *Crud[T, C, U]) Create(ctx context.Context, payload C, token string) Result[T] {
	return send[T](ctx, c.r, http.MethodPost, c.path, payload, token)
}

// Update replaces the entity with PUT. The payload is forwarded as given, so
// repeating the same update leaves the server in the same state.
func (c *Crud[T, C, U]) Update(ctx context.Context, id string, payload U, token string) Result[T] {
	if id == "" {
		return FromError[T](errMissingID)
	}
	return send[T](ctx, c.r, http.MethodPut, join(c.path, id), payload, token)
}

// Delete returns whatever the server answers with, usually a message or the
// removed entity.
func (c *Crud[T, C, U]) Delete(ctx context.Context, id, token string) Result[json.RawMessage] {
	if id == "" {
		return FromError[json.RawMessage](errMissingID)
	}
	return call[json.RawMessage](ctx, c.r, http.MethodDelete, join(c.path, id), nil, token)
}

// patch sends a validated partial update to <path>/<id>/<sub>.
func (c *Crud[T, C, U]) patch(ctx context.Context, id, sub string, payload interface{}, token string) Result[T] {
	if id == "" {
		return FromError[T](errMissingID)
	}
	return send[T](ctx, c.r, http.MethodPatch, join(c.path, id, sub), payload, token)
}
