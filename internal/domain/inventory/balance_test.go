package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
)

func mov(productID string, typ entity.MovementType, q int) *entity.StockMovement {
	return &entity.StockMovement{ProductID: productID, Type: typ, Quantity: q, Active: true}
}

func TestComputeBalance(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeEntrada, 5),
		mov("p1", entity.MovementTypeSaida, 2),
		mov("p2", entity.MovementTypeEntrada, 100),
		nil,
	}
	got := inventory.ComputeBalance("p1", movs)
	assert.Equal(t, inventory.Balance{Entradas: 5, Saidas: 2, Total: 3}, got)
}

func TestComputeBalance_SinMovimientos(t *testing.T) {
	assert.Equal(t, inventory.Balance{}, inventory.ComputeBalance("p1", nil))
}

func TestComputeBalance_IgnoraInactivos(t *testing.T) {
	inactive := mov("p1", entity.MovementTypeSaida, 4)
	inactive.Active = false
	movs := []*entity.StockMovement{mov("p1", entity.MovementTypeEntrada, 10), inactive}
	assert.Equal(t, 10, inventory.ComputeBalance("p1", movs).Total)
}

func TestComputeBalance_IndependienteDelOrden(t *testing.T) {
	a := mov("p1", entity.MovementTypeEntrada, 7)
	b := mov("p1", entity.MovementTypeSaida, 3)
	c := mov("p1", entity.MovementTypeEntrada, 1)
	first := inventory.ComputeBalance("p1", []*entity.StockMovement{a, b, c})
	second := inventory.ComputeBalance("p1", []*entity.StockMovement{c, b, a})
	assert.Equal(t, first, second)
	assert.Equal(t, first, inventory.ComputeBalance("p1", []*entity.StockMovement{a, b, c}), "idempotente")
}

func TestBalance_CanWithdraw(t *testing.T) {
	b := inventory.Balance{Entradas: 10, Total: 10}
	assert.True(t, b.CanWithdraw(10))
	assert.False(t, b.CanWithdraw(11))
}

func TestBalancesByProduct(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeEntrada, 5),
		mov("p2", entity.MovementTypeEntrada, 3),
		mov("p1", entity.MovementTypeSaida, 1),
	}
	got := inventory.BalancesByProduct(movs)
	assert.Equal(t, inventory.Balance{Entradas: 5, Saidas: 1, Total: 4}, got["p1"])
	assert.Equal(t, inventory.Balance{Entradas: 3, Total: 3}, got["p2"])
	for id := range got {
		assert.Equal(t, inventory.ComputeBalance(id, movs), got[id])
	}
}

func TestValue(t *testing.T) {
	cost := decimal.RequireFromString("4.50")
	sale := decimal.RequireFromString("15.00")

	v := inventory.Value(inventory.Balance{Entradas: 5, Saidas: 2, Total: 3}, cost, sale)
	assert.True(t, v.AtCost.Equal(decimal.RequireFromString("13.50")), v.AtCost.String())
	assert.True(t, v.AtSale.Equal(decimal.RequireFromString("45.00")), v.AtSale.String())

	zero := inventory.Value(inventory.Balance{}, cost, sale)
	assert.True(t, zero.AtCost.IsZero())
	assert.True(t, zero.AtSale.IsZero())

	sum := v.Add(v)
	assert.True(t, sum.AtSale.Equal(decimal.NewFromInt(90)))
}
