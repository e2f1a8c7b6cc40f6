package handler

import (
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/resource"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	products *resource.Products
	sales    *resource.Sales
	tokens   TokenSource
}

func NewInventoryHandler(products *resource.Products, sales *resource.Sales, tokens TokenSource) *InventoryHandler {
	return &InventoryHandler{products: products, sales: sales, tokens: tokens}
}

// LowStock godoc
// @Summary Products at or below their reorder level
// @Tags products
// @Produce json
// @Success 200 {object} table.Page[model.Product]
// @Router /v1/products/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	rows, err := h.products.LowStock(c.Request.Context(), h.tokens.AccessToken()).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	writePage(c, rows)
}

func (h *InventoryHandler) ByCategory(c *gin.Context) {
	rows, err := h.products.ByCategory(c.Request.Context(), c.Param("category"), h.tokens.AccessToken()).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	writePage(c, rows)
}

func (h *InventoryHandler) UpdateSaleStatus(c *gin.Context) {
	var req dto.SaleStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.sales.UpdateStatus(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}
