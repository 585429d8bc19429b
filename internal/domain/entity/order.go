package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

// Estados del pedido.
const (
	OrderStatusPendente   OrderStatus = "pendente"
	OrderStatusFinalizado OrderStatus = "finalizado"
	OrderStatusCancelado  OrderStatus = "cancelado"
)

// Valid indica si el estado es conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendente, OrderStatusFinalizado, OrderStatusCancelado:
		return true
	}
	return false
}

// SaleType tipo de salida: venta o donación.
type SaleType string

// Tipos de venta.
const (
	SaleTypeVenda  SaleType = "venda"
	SaleTypeDoacao SaleType = "doacao"
)

// Valid indica si el tipo de venta es conocido.
func (t SaleType) Valid() bool {
	return t == SaleTypeVenda || t == SaleTypeDoacao
}

// OrderItem línea de un pedido. ProductName es una copia tomada al agregar el ítem.
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitValue   decimal.Decimal
}

// Subtotal cantidad × valor unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order cabecera de un pedido con sus ítems.
type Order struct {
	ID            string
	CustomerID    string
	CustomerName  string
	Items         []OrderItem
	Total         decimal.Decimal
	Status        OrderStatus
	PaymentMethod string
	SaleType      SaleType
	CreatedAt     time.Time
	UpdatedAt     time.Time
	FinalizedAt   *time.Time
	CanceledAt    *time.Time
}

// RecalculateTotal recalcula Total a partir de los ítems; el total recibido nunca se usa.
func (o *Order) RecalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	o.Total = total
	return total
}

// ReferenceDate fecha usada por los reportes diarios: finalización o, en su defecto, creación.
func (o *Order) ReferenceDate() time.Time {
	if o.FinalizedAt != nil {
		return *o.FinalizedAt
	}
	return o.CreatedAt
}
