package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del brechó.
// Quantity es un contador desnormalizado: solo lo mueve el libro de stock, dentro de la misma
// transacción que agrega el movimiento.
type Product struct {
	ID        string
	Code      string // único entre productos activos
	Name      string
	CostValue decimal.Decimal
	SaleValue decimal.Decimal
	Quantity  int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
