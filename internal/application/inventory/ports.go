package inventory

import (
	"context"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock: leer saldo, validar, agregar movimiento y ajustar contador.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// BalanceCache caché opcional de saldos por producto. Se invalida explícitamente tras cada escritura confirmada.
// Cada invalidación avanza la versión del producto; SetIfVersion rechaza saldos calculados
// antes de la última invalidación.
type BalanceCache interface {
	Get(ctx context.Context, productID string) (inventory.Balance, bool, error)
	Version(ctx context.Context, productID string) (int64, error)
	SetIfVersion(ctx context.Context, productID string, balance inventory.Balance, version int64) (bool, error)
	Invalidate(ctx context.Context, productIDs ...string) error
}
