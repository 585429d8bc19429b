package entity

import (
	"time"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada MovementType = "entrada"
	MovementTypeSaida   MovementType = "saida"
)

// OriginInitialStock origen del movimiento sintético creado junto con el producto.
const OriginInitialStock = "initial stock"

// Valid indica si el tipo es uno de los dos conocidos.
func (t MovementType) Valid() bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida
}

// StockMovement representa un movimiento del libro de stock (entrada o salida).
// Nunca se modifica ni se borra físicamente después de creado; Active es solo un flag de deshabilitación.
type StockMovement struct {
	ID        string
	ProductID string
	Type      MovementType
	Quantity  int // siempre positivo; el signo lo da Type
	Origin    string
	Note      string
	CreatedAt time.Time
	Active    bool
}

// Validate verifica las invariantes del movimiento antes de persistirlo.
func (m *StockMovement) Validate() error {
	if m.ProductID == "" {
		return domain.Errorf(domain.ErrInvalidInput, "producto requerido")
	}
	if !m.Type.Valid() {
		return domain.Errorf(domain.ErrInvalidInput, "tipo de movimiento %q desconocido", m.Type)
	}
	if m.Quantity <= 0 {
		return domain.Errorf(domain.ErrInvalidInput, "la cantidad debe ser mayor que cero")
	}
	return nil
}

// Signed devuelve la cantidad con signo: positiva para entrada, negativa para salida.
func (m *StockMovement) Signed() int {
	if m.Type == MovementTypeSaida {
		return -m.Quantity
	}
	return m.Quantity
}
