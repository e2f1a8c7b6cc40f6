package resource

import (
	"context"
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/model"
)

type Products struct {
	*Crud[model.Product, dto.ProductRequest, dto.ProductRequest]
}

func NewProducts(r Requester) *Products {
	return &Products{NewCrud[model.Product, dto.ProductRequest, dto.ProductRequest](r, "/products")}
}

// LowStock lists products at or below their reorder level.
func (p *Products) LowStock(ctx context.Context, token string) Result[[]model.Product] {
	return call[[]model.Product](ctx, p.r, http.MethodGet, "/products/low-stock", nil, token)
}

func (p *Products) ByCategory(ctx context.Context, category, token string) Result[[]model.Product] {
	if category == "" {
		return Fail[[]model.Product]("category is required")
	}
	return call[[]model.Product](ctx, p.r, http.MethodGet, join("/products/category", category), nil, token)
}

type Suppliers struct {
	*Crud[model.Supplier, dto.SupplierRequest, dto.SupplierRequest]
}

func NewSuppliers(r Requester) *Suppliers {
	return &Suppliers{NewCrud[model.Supplier, dto.SupplierRequest, dto.SupplierRequest](r, "/suppliers")}
}

type Stock struct {
	*Crud[model.Stock, dto.StockRequest, dto.StockRequest]
}

func NewStock(r Requester) *Stock {
	return &Stock{NewCrud[model.Stock, dto.StockRequest, dto.StockRequest](r, "/stock")}
}

type Sales struct {
	*Crud[model.Sale, dto.SaleRequest, dto.SaleRequest]
}

func NewSales(r Requester) *Sales {
	return &Sales{NewCrud[model.Sale, dto.SaleRequest, dto.SaleRequest](r, "/sales")}
}

func (s *Sales) UpdateStatus(ctx context.Context, id string, payload dto.SaleStatusRequest, token string) Result[model.Sale] {
	return s.patch(ctx, id, "status", payload, token)
}
