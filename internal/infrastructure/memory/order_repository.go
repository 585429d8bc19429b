package memory

import (
	"context"
	"sort"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	with access
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.with(func(st *state) error {
		if _, ok := st.orders[order.ID]; ok {
			return domain.Errorf(domain.ErrDuplicate, "pedido %s ya existe", order.ID)
		}
		st.orders[order.ID] = copyOrder(*order)
		return nil
	})
}

// GetByID obtiene una copia del pedido.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.with(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			c := copyOrder(o)
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza el pedido.
func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	return r.with(func(st *state) error {
		if _, ok := st.orders[order.ID]; !ok {
			return domain.Errorf(domain.ErrNotFound, "pedido %s no encontrado", order.ID)
		}
		st.orders[order.ID] = copyOrder(*order)
		return nil
	})
}

// Delete borra el pedido.
func (r *OrderRepo) Delete(_ context.Context, id string) error {
	return r.with(func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.Errorf(domain.ErrNotFound, "pedido %s no encontrado", id)
		}
		delete(st.orders, id)
		return nil
	})
}

// List filtra y ordena por fecha de creación descendente.
func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var list []*entity.Order
	err := r.with(func(st *state) error {
		for _, o := range st.orders {
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.SaleType != "" && o.SaleType != f.SaleType {
				continue
			}
			if f.CustomerID != "" && o.CustomerID != f.CustomerID {
				continue
			}
			if !inRange(o.CreatedAt, f.From, f.To) {
				continue
			}
			c := copyOrder(o)
			list = append(list, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return page(list, f.Limit, f.Offset), nil
}
