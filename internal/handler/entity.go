package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"repairs/internal/resource"

	"github.com/gin-gonic/gin"
)

type collection[T any] interface {
	GetAll(ctx context.Context, token string) resource.Result[[]T]
	GetByID(ctx context.Context, id, token string) resource.Result[T]
	Delete(ctx context.Context, id, token string) resource.Result[json.RawMessage]
}

// crudAPI is the method set of resource.Crud, embedded by every entity
// wrapper.
type crudAPI[T any, C any, U any] interface {
	collection[T]
	Create(ctx context.Context, payload C, token string) resource.Result[T]
	Update(ctx context.Context, id string, payload U, token string) resource.Result[T]
}

// EntityHandler serves the grid, export and form routes of one collection.
// T is the entity, C and U the create and update forms.
type EntityHandler[T any, C any, U any] struct {
	api    crudAPI[T, C, U]
	tokens TokenSource
	sheet  string
}

func NewEntityHandler[T any, C any, U any](api crudAPI[T, C, U], tokens TokenSource, sheet string) *EntityHandler[T, C, U] {
	return &EntityHandler[T, C, U]{api: api, tokens: tokens, sheet: sheet}
}

// Register mounts the standard routes on g.
func (h *EntityHandler[T, C, U]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.GET("/export.xlsx", h.Export)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *EntityHandler[T, C, U]) List(c *gin.Context) {
	rows, err := h.api.GetAll(c.Request.Context(), h.tokens.AccessToken()).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	writePage(c, rows)
}

func (h *EntityHandler[T, C, U]) Export(c *gin.Context) {
	rows, err := h.api.GetAll(c.Request.Context(), h.tokens.AccessToken()).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	writeExport(c, rows, h.sheet)
}

func (h *EntityHandler[T, C, U]) Get(c *gin.Context) {
	respond(c, http.StatusOK, h.api.GetByID(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()))
}

func (h *EntityHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusCreated, h.api.Create(c.Request.Context(), req, h.tokens.AccessToken()))
}

func (h *EntityHandler[T, C, U]) Update(c *gin.Context) {
	var req U
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.api.Update(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}

func (h *EntityHandler[T, C, U]) Delete(c *gin.Context) {
	respond(c, http.StatusOK, h.api.Delete(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()))
}
