package repository

import (
	"context"
	"time"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar pedidos.
type OrderFilter struct {
	Status     entity.OrderStatus
	SaleType   entity.SaleType
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate obtiene el pedido y bloquea la fila (check-and-set de estado).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// Update reemplaza cabecera e ítems.
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
	// List devuelve los pedidos ordenados por fecha de creación descendente.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}
