package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/analytics"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/infrastructure/memory"
)

func ptr(t time.Time) *time.Time { return &t }

func order(id string, status entity.OrderStatus, saleType entity.SaleType, total string, created time.Time, finalized *time.Time) *entity.Order {
	return &entity.Order{
		ID: id, CustomerID: "c1", Status: status, SaleType: saleType,
		Total: decimal.RequireFromString(total), CreatedAt: created, UpdatedAt: created, FinalizedAt: finalized,
	}
}

func TestTotalVendas_SoloFinalizadasDeVenta(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	orders := []*entity.Order{
		order("1", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "50.00", now, ptr(now)),
		order("2", entity.OrderStatusPendente, entity.SaleTypeVenda, "100.00", now, nil),
		order("3", entity.OrderStatusCancelado, entity.SaleTypeVenda, "70.00", now, nil),
		order("4", entity.OrderStatusFinalizado, entity.SaleTypeDoacao, "0.00", now, ptr(now)),
		order("5", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "25.50", now, ptr(now)),
	}
	total, n := analytics.TotalVendas(orders)
	assert.True(t, decimal.RequireFromString("75.50").Equal(total), total.String())
	assert.Equal(t, 2, n)

	don, dn := analytics.TotalDoacoes(orders)
	assert.True(t, don.IsZero())
	assert.Equal(t, 1, dn)
}

func TestVendaDia_UsaZonaHorariaDelNegocio(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 2025-07-01 22:00 en São Paulo = 2025-07-02 01:00 UTC
	now := time.Date(2025, 7, 1, 22, 0, 0, 0, loc)
	sameDayLate := time.Date(2025, 7, 2, 1, 0, 0, 0, time.UTC)
	sameDayEarly := time.Date(2025, 7, 1, 3, 30, 0, 0, time.UTC) // 00:30 local
	previousDay := time.Date(2025, 7, 1, 2, 59, 0, 0, time.UTC)  // 23:59 del 30/06 local

	orders := []*entity.Order{
		order("a", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "10.00", previousDay, ptr(sameDayLate)),
		order("b", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "20.00", sameDayEarly, ptr(sameDayEarly)),
		order("c", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "40.00", previousDay, ptr(previousDay)),
		order("d", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "80.00", sameDayEarly, nil),
		order("e", entity.OrderStatusPendente, entity.SaleTypeVenda, "160.00", sameDayEarly, nil),
	}
	total, n := analytics.VendaDia(orders, now, loc)
	assert.True(t, decimal.RequireFromString("110.00").Equal(total), total.String())
	assert.Equal(t, 3, n)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	now := time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	for _, o := range []*entity.Order{
		order("1", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "30.00", now, ptr(now)),
		order("2", entity.OrderStatusFinalizado, entity.SaleTypeVenda, "20.00", yesterday, ptr(yesterday)),
		order("3", entity.OrderStatusPendente, entity.SaleTypeVenda, "99.00", now, nil),
		order("4", entity.OrderStatusFinalizado, entity.SaleTypeDoacao, "5.00", now, ptr(now)),
	} {
		require.NoError(t, st.Orders().Create(ctx, o))
	}

	uc := analytics.NewSalesUseCase(st.Orders(), time.UTC).WithClock(func() time.Time { return now })
	out, err := uc.Summary(ctx)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("50.00").Equal(out.TotalVendas))
	assert.Equal(t, 2, out.VendasCount)
	assert.True(t, decimal.RequireFromString("30.00").Equal(out.VendaDia))
	assert.Equal(t, 1, out.VendasDiaCount)
	assert.True(t, decimal.RequireFromString("5.00").Equal(out.TotalDoacoes))
	assert.Equal(t, 1, out.DoacoesCount)
	assert.Equal(t, map[string]int{"pendente": 1, "finalizado": 3, "cancelado": 0}, out.ByStatus)
	assert.Equal(t, now, out.GeneratedAt)
}
