package repository

import (
	"context"
	"time"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de stock (solo inserción y consulta).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos de un producto, más recientes primero.
	// limit <= 0 significa sin límite.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListAll devuelve todos los movimientos en el rango (nil = sin cota).
	ListAll(ctx context.Context, from, to *time.Time) ([]*entity.StockMovement, error)
}
