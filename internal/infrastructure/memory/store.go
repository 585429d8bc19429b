// Package memory implementa los puertos de persistencia en memoria del proceso.
//
// Todas las escrituras se serializan con un único mutex. Las transacciones trabajan sobre
// una copia del estado que solo reemplaza al original si el callback termina sin error,
// así un movimiento rechazado no deja escrituras parciales.
package memory

import (
	"context"
	"sync"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/orders"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ orders.TxRunner    = (*Store)(nil)
)

type state struct {
	products  map[string]entity.Product
	movements []entity.StockMovement
	orders    map[string]entity.Order
	customers map[string]entity.Customer
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		orders:    make(map[string]entity.Order),
		customers: make(map[string]entity.Customer),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		movements: make([]entity.StockMovement, len(s.movements), len(s.movements)+1),
		orders:    make(map[string]entity.Order, len(s.orders)),
		customers: make(map[string]entity.Customer, len(s.customers)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	copy(c.movements, s.movements)
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

// access ejecuta fn sobre el estado correspondiente (directo con lock, o la copia de la tx).
type access func(fn func(st *state) error) error

// Store almacén en memoria.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) direct(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) inTx(ctx context.Context, fn func(with access) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	staged := s.state.clone()
	with := func(f func(st *state) error) error { return f(staged) }
	if err := fn(with); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// Run ejecuta fn con repositorios de stock atados a una transacción.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(ctx, func(with access) error {
		return fn(&StockMovementRepo{with: with}, &ProductRepo{with: with})
	})
}

// RunOrders ejecuta fn con el repositorio de pedidos atado a una transacción.
func (s *Store) RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return s.inTx(ctx, func(with access) error {
		return fn(&OrderRepo{with: with})
	})
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{with: s.direct} }

// Movements repositorio del libro de stock fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{with: s.direct} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{with: s.direct} }

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{with: s.direct} }

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.FinalizedAt != nil {
		t := *o.FinalizedAt
		o.FinalizedAt = &t
	}
	if o.CanceledAt != nil {
		t := *o.CanceledAt
		o.CanceledAt = &t
	}
	return o
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
