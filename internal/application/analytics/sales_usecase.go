// Package analytics contiene los reportes de ventas y donaciones del brechó.
// Son reducciones puras sobre la colección de pedidos; no escriben nada.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

// SalesUseCase genera el resumen de ventas del día y acumulado.
type SalesUseCase struct {
	orderRepo repository.OrderRepository
	loc       *time.Location
	now       func() time.Time
}

// NewSalesUseCase construye el caso de uso. loc define el "día" de VendaDia.
func NewSalesUseCase(orderRepo repository.OrderRepository, loc *time.Location) *SalesUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesUseCase{orderRepo: orderRepo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SalesUseCase) WithClock(now func() time.Time) *SalesUseCase {
	uc.now = now
	return uc
}

// Summary calcula totalVendas, vendaDia, donaciones y conteo por estado.
func (uc *SalesUseCase) Summary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	orders, err := uc.orderRepo.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, err
	}
	now := uc.now()

	resp := &dto.SalesSummaryResponse{
		GeneratedAt: now.UTC(),
		ByStatus: map[string]int{
			string(entity.OrderStatusPendente):   0,
			string(entity.OrderStatusFinalizado): 0,
			string(entity.OrderStatusCancelado):  0,
		},
	}
	resp.TotalVendas, resp.VendasCount = TotalVendas(orders)
	resp.VendaDia, resp.VendasDiaCount = VendaDia(orders, now, uc.loc)
	resp.TotalDoacoes, resp.DoacoesCount = TotalDoacoes(orders)
	for _, o := range orders {
		resp.ByStatus[string(o.Status)]++
	}
	return resp, nil
}

// TotalVendas suma el total de los pedidos finalizados de tipo venda.
func TotalVendas(orders []*entity.Order) (decimal.Decimal, int) {
	return sumWhere(orders, isFinalizedSale)
}

// VendaDia como TotalVendas, restringido a pedidos cuya fecha de finalización (o de creación,
// si no la tienen) cae en el mismo día calendario que now en loc.
func VendaDia(orders []*entity.Order, now time.Time, loc *time.Location) (decimal.Decimal, int) {
	y, m, d := now.In(loc).Date()
	return sumWhere(orders, func(o *entity.Order) bool {
		if !isFinalizedSale(o) {
			return false
		}
		oy, om, od := o.ReferenceDate().In(loc).Date()
		return oy == y && om == m && od == d
	})
}

// TotalDoacoes suma los pedidos finalizados de tipo doacao.
func TotalDoacoes(orders []*entity.Order) (decimal.Decimal, int) {
	return sumWhere(orders, func(o *entity.Order) bool {
		return o.Status == entity.OrderStatusFinalizado && o.SaleType == entity.SaleTypeDoacao
	})
}

func isFinalizedSale(o *entity.Order) bool {
	return o.Status == entity.OrderStatusFinalizado && o.SaleType == entity.SaleTypeVenda
}

func sumWhere(orders []*entity.Order, keep func(*entity.Order) bool) (decimal.Decimal, int) {
	total := decimal.Zero
	n := 0
	for _, o := range orders {
		if o == nil || !keep(o) {
			continue
		}
		total = total.Add(o.Total)
		n++
	}
	return total, n
}
