package inventory

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

const defaultOverviewConcurrency = 8

// StockAggregator consultas de solo lectura sobre el libro de stock.
// CalcularEstoque es la cifra autoritativa para mostrar; el contador del producto se expone
// solo para comparación (Reconcile).
type StockAggregator struct {
	ledger      *LedgerUseCase
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       BalanceCache
	concurrency int
	log         *logger.Logger
	now         func() time.Time
}

// NewStockAggregator construye el agregador.
func NewStockAggregator(
	ledger *LedgerUseCase,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *StockAggregator {
	return &StockAggregator{
		ledger:      ledger,
		productRepo: productRepo,
		movRepo:     movRepo,
		concurrency: defaultOverviewConcurrency,
		log:         log.Component("stock_aggregator"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithBalanceCache lee los saldos a través de la caché (cache-aside).
func (a *StockAggregator) WithBalanceCache(cache BalanceCache) *StockAggregator {
	a.cache = cache
	return a
}

// CalcularEstoque devuelve el saldo del producto delegando en ComputeBalance.
// La versión se lee antes de calcular: si una escritura invalida entre medias, el saldo no se guarda.
func (a *StockAggregator) CalcularEstoque(ctx context.Context, productID string) (inventory.Balance, error) {
	cacheable := false
	var version int64
	if a.cache != nil {
		if b, ok, err := a.cache.Get(ctx, productID); err != nil {
			a.log.Warn().Err(err).Str("product_id", productID).Msg("lectura de caché de saldos")
		} else if ok {
			return b, nil
		} else if version, err = a.cache.Version(ctx, productID); err != nil {
			a.log.Warn().Err(err).Str("product_id", productID).Msg("lectura de versión de saldos")
		} else {
			cacheable = true
		}
	}
	b, err := a.ledger.ComputeBalance(ctx, productID)
	if err != nil {
		return inventory.Balance{}, err
	}
	if cacheable {
		if _, err := a.cache.SetIfVersion(ctx, productID, b, version); err != nil {
			a.log.Warn().Err(err).Str("product_id", productID).Msg("escritura de caché de saldos")
		}
	}
	return b, nil
}

// StockOverview saldo y valor de cada producto activo, calculado en paralelo.
func (a *StockAggregator) StockOverview(ctx context.Context) ([]dto.StockOverviewItem, error) {
	products, err := a.productRepo.List(ctx, false, 0, 0)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockOverviewItem, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, p := range products {
		g.Go(func() error {
			b, err := a.CalcularEstoque(gctx, p.ID)
			if err != nil {
				return err
			}
			v := inventory.Value(b, p.CostValue, p.SaleValue)
			items[i] = dto.StockOverviewItem{
				ProductID:   p.ID,
				Code:        p.Code,
				Name:        p.Name,
				Entradas:    b.Entradas,
				Saidas:      b.Saidas,
				Total:       b.Total,
				CounterQty:  p.Quantity,
				InAgreement: b.Total == p.Quantity,
				ValueAtCost: v.AtCost,
				ValueAtSale: v.AtSale,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// PeriodSummary entradas y salidas por producto en [from, to).
func (a *StockAggregator) PeriodSummary(ctx context.Context, from, to time.Time) (*dto.PeriodSummaryResponse, error) {
	from, to = from.UTC(), to.UTC()
	if !from.Before(to) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el inicio del período debe ser anterior al fin")
	}
	movs, err := a.movRepo.ListAll(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	balances := inventory.BalancesByProduct(movs)

	resp := &dto.PeriodSummaryResponse{From: from, To: to, Items: make([]dto.PeriodSummaryItem, 0, len(balances))}
	for productID, b := range balances {
		resp.Items = append(resp.Items, dto.PeriodSummaryItem{
			ProductID: productID,
			Entradas:  b.Entradas,
			Saidas:    b.Saidas,
			Net:       b.Total,
		})
		resp.Entradas += b.Entradas
		resp.Saidas += b.Saidas
	}
	sort.Slice(resp.Items, func(i, j int) bool { return resp.Items[i].ProductID < resp.Items[j].ProductID })
	return resp, nil
}

// Reconcile compara el contador desnormalizado de cada producto con el total del libro.
// No corrige nada: reporta la deriva para que un operador decida.
func (a *StockAggregator) Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error) {
	products, err := a.productRepo.List(ctx, true, 0, 0)
	if err != nil {
		return nil, err
	}
	movs, err := a.movRepo.ListAll(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	balances := inventory.BalancesByProduct(movs)

	resp := &dto.ReconciliationResponse{CheckedAt: a.now(), Checked: len(products), Drift: []dto.DriftItem{}}
	for _, p := range products {
		ledgerTotal := balances[p.ID].Total
		if ledgerTotal == p.Quantity {
			continue
		}
		resp.Drift = append(resp.Drift, dto.DriftItem{
			ProductID:   p.ID,
			Code:        p.Code,
			CounterQty:  p.Quantity,
			LedgerTotal: ledgerTotal,
			Difference:  p.Quantity - ledgerTotal,
		})
		a.log.Warn().
			Str("product_id", p.ID).
			Int("counter", p.Quantity).
			Int("ledger", ledgerTotal).
			Msg("contador desalineado con el libro de stock")
	}
	return resp, nil
}
