package inventory

import "github.com/shopspring/decimal"

// Valuation valor del saldo de un producto a precio de costo y de venta.
type Valuation struct {
	AtCost decimal.Decimal
	AtSale decimal.Decimal
}

// Value valoriza el saldo del libro (servicio de dominio).
// Valor = Total * PrecioUnitario. Un saldo no positivo vale cero.
func Value(b Balance, costValue, saleValue decimal.Decimal) Valuation {
	if b.Total <= 0 {
		return Valuation{AtCost: decimal.Zero, AtSale: decimal.Zero}
	}
	qty := decimal.NewFromInt(int64(b.Total))
	return Valuation{
		AtCost: qty.Mul(costValue),
		AtSale: qty.Mul(saleValue),
	}
}

// Add acumula otra valorización.
func (v Valuation) Add(o Valuation) Valuation {
	return Valuation{AtCost: v.AtCost.Add(o.AtCost), AtSale: v.AtSale.Add(o.AtSale)}
}
