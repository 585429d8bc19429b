package main

import (
	"context"
	"fmt"

	appinv "github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/orders"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/infrastructure/memory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/infrastructure/postgres"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/config"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

// store agrupa los adaptadores de persistencia del driver elegido.
type store struct {
	txRunner  appinv.TxRunner
	orderTx   orders.TxRunner
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &store{
			txRunner:  m,
			orderTx:   m,
			products:  m.Products(),
			movements: m.Movements(),
			orders:    m.Orders(),
			customers: m.Customers(),
			close:     func() {},
		}, nil
	case config.StoreDriverPostgres:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		tx := postgres.NewTxRunner(pool)
		return &store{
			txRunner:  tx,
			orderTx:   tx,
			products:  postgres.NewProductRepository(pool),
			movements: postgres.NewStockMovementRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			customers: postgres.NewCustomerRepository(pool),
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de persistencia desconocido: %s", cfg.Store.Driver)
}
