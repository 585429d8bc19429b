package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // entrada | saida
	Quantity  int    `json:"quantity"`
	Origin    string `json:"origin"`
	Note      string `json:"note"`
}

// MovementResponse salida de un movimiento del libro de stock.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Origin    string    `json:"origin"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// BalanceResponse saldo derivado del libro de stock.
type BalanceResponse struct {
	ProductID string `json:"product_id"`
	Entradas  int    `json:"entradas"`
	Saidas    int    `json:"saidas"`
	Total     int    `json:"total"`
}

// StockOverviewItem saldo de un producto junto con su contador desnormalizado.
type StockOverviewItem struct {
	ProductID   string `json:"product_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Entradas    int    `json:"entradas"`
	Saidas      int    `json:"saidas"`
	Total       int    `json:"total"`
	CounterQty  int    `json:"counter_quantity"`
	InAgreement bool   `json:"in_agreement"`
	// Valor del saldo del libro a precio de costo y de venta.
	ValueAtCost decimal.Decimal `json:"value_at_cost"`
	ValueAtSale decimal.Decimal `json:"value_at_sale"`
}

// PeriodSummaryItem entradas/salidas de un producto en un período.
type PeriodSummaryItem struct {
	ProductID string `json:"product_id"`
	Entradas  int    `json:"entradas"`
	Saidas    int    `json:"saidas"`
	Net       int    `json:"net"`
}

// PeriodSummaryResponse resumen de movimientos en [From, To).
type PeriodSummaryResponse struct {
	From     time.Time           `json:"from"`
	To       time.Time           `json:"to"`
	Items    []PeriodSummaryItem `json:"items"`
	Entradas int                 `json:"entradas"`
	Saidas   int                 `json:"saidas"`
}

// DriftItem producto cuyo contador no coincide con el libro de stock.
type DriftItem struct {
	ProductID   string `json:"product_id"`
	Code        string `json:"code"`
	CounterQty  int    `json:"counter_quantity"`
	LedgerTotal int    `json:"ledger_total"`
	Difference  int    `json:"difference"` // contador - libro
}

// ReconciliationResponse resultado de comparar contador y libro.
type ReconciliationResponse struct {
	CheckedAt time.Time   `json:"checked_at"`
	Checked   int         `json:"checked"`
	Drift     []DriftItem `json:"drift"`
}
