package memory

import (
	"context"
	"sort"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	with access
}

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.with(func(st *state) error {
		if _, ok := st.customers[customer.ID]; ok {
			return domain.Errorf(domain.ErrDuplicate, "cliente %s ya existe", customer.ID)
		}
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.with(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	err := r.with(func(st *state) error {
		for _, c := range st.customers {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	return r.with(func(st *state) error {
		if _, ok := st.customers[customer.ID]; !ok {
			return domain.Errorf(domain.ErrNotFound, "cliente %s no encontrado", customer.ID)
		}
		st.customers[customer.ID] = *customer
		return nil
	})
}
