package repository

import (
	"context"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetActiveByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update actualiza datos de catálogo; nunca modifica Quantity.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustQuantity suma delta (positivo o negativo) al contador desnormalizado.
	AdjustQuantity(ctx context.Context, id string, delta int) error
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*entity.Product, error)
}
