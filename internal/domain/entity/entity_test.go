package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
)

func TestStockMovement_Validate(t *testing.T) {
	ok := entity.StockMovement{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 1}
	assert.NoError(t, ok.Validate())

	zero := ok
	zero.Quantity = 0
	assert.ErrorIs(t, zero.Validate(), domain.ErrInvalidInput)

	badType := ok
	badType.Type = "ajuste"
	assert.ErrorIs(t, badType.Validate(), domain.ErrInvalidInput)

	noProduct := ok
	noProduct.ProductID = ""
	assert.ErrorIs(t, noProduct.Validate(), domain.ErrInvalidInput)
}

func TestStockMovement_Signed(t *testing.T) {
	in := entity.StockMovement{Type: entity.MovementTypeEntrada, Quantity: 4}
	out := entity.StockMovement{Type: entity.MovementTypeSaida, Quantity: 4}
	assert.Equal(t, 4, in.Signed())
	assert.Equal(t, -4, out.Signed())
}

func TestOrder_RecalculateTotal(t *testing.T) {
	o := entity.Order{
		Total: decimal.NewFromInt(999),
		Items: []entity.OrderItem{
			{Quantity: 2, UnitValue: decimal.RequireFromString("10.50")},
			{Quantity: 1, UnitValue: decimal.RequireFromString("4.00")},
		},
	}
	got := o.RecalculateTotal()
	assert.True(t, decimal.RequireFromString("25.00").Equal(got))
	assert.True(t, got.Equal(o.Total))
}

func TestOrder_ReferenceDate(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	o := entity.Order{CreatedAt: created}
	assert.Equal(t, created, o.ReferenceDate())

	finalized := created.Add(48 * time.Hour)
	o.FinalizedAt = &finalized
	assert.Equal(t, finalized, o.ReferenceDate())
}
