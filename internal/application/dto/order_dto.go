package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido en la entrada. UnitValue cero toma el valor de venta del producto.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitValue decimal.Decimal `json:"unit_value"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID    string             `json:"customer_id"`
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	SaleType      string             `json:"sale_type"` // venda | doacao
}

// EditOrderRequest body para PUT /api/orders/:id. Status opcional pasa por la máquina de estados.
type EditOrderRequest struct {
	CustomerID    string             `json:"customer_id"`
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	SaleType      string             `json:"sale_type"`
	Status        *string            `json:"status,omitempty"`
}

// OrderItemResponse línea de pedido en la salida.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	SaleType      string              `json:"sale_type"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	FinalizedAt   *time.Time          `json:"finalized_at,omitempty"`
	CanceledAt    *time.Time          `json:"canceled_at,omitempty"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
