package inventory

import "github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"

// Balance saldo derivado del libro de stock de un producto.
type Balance struct {
	Entradas int `json:"entradas"`
	Saidas   int `json:"saidas"`
	Total    int `json:"total"`
}

// ComputeBalance suma los movimientos activos de productID (servicio de dominio).
// Total = Entradas - Saidas. Es una suma pura: no depende del orden de los movimientos.
func ComputeBalance(productID string, movements []*entity.StockMovement) Balance {
	var b Balance
	for _, m := range movements {
		if m == nil || !m.Active || m.ProductID != productID {
			continue
		}
		switch m.Type {
		case entity.MovementTypeEntrada:
			b.Entradas += m.Quantity
		case entity.MovementTypeSaida:
			b.Saidas += m.Quantity
		}
	}
	b.Total = b.Entradas - b.Saidas
	return b
}

// CanWithdraw indica si el saldo alcanza para una salida de quantity unidades.
func (b Balance) CanWithdraw(quantity int) bool {
	return quantity <= b.Total
}

// BalancesByProduct agrupa los saldos de varios productos en una sola pasada.
func BalancesByProduct(movements []*entity.StockMovement) map[string]Balance {
	out := make(map[string]Balance)
	for _, m := range movements {
		if m == nil || !m.Active {
			continue
		}
		b := out[m.ProductID]
		switch m.Type {
		case entity.MovementTypeEntrada:
			b.Entradas += m.Quantity
		case entity.MovementTypeSaida:
			b.Saidas += m.Quantity
		}
		b.Total = b.Entradas - b.Saidas
		out[m.ProductID] = b
	}
	return out
}
