package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Quantity > 0 genera la entrada "initial stock".
type CreateProductRequest struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	CostValue decimal.Decimal `json:"cost_value"`
	SaleValue decimal.Decimal `json:"sale_value"`
	Quantity  int             `json:"quantity"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity: el stock se mueve vía libro).
type UpdateProductRequest struct {
	Code      *string          `json:"code"`
	Name      *string          `json:"name"`
	CostValue *decimal.Decimal `json:"cost_value"`
	SaleValue *decimal.Decimal `json:"sale_value"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	CostValue decimal.Decimal `json:"cost_value"`
	SaleValue decimal.Decimal `json:"sale_value"`
	Quantity  int             `json:"quantity"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
