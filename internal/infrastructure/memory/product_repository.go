package memory

import (
	"context"
	"sort"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	with access
}

// Create persiste un nuevo producto. El código debe ser único entre activos.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.with(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.Errorf(domain.ErrDuplicate, "producto %s ya existe", product.ID)
		}
		if product.Active && activeCodeTaken(st, product.Code, product.ID) {
			return domain.Errorf(domain.ErrDuplicate, "ya existe un producto activo con código %s", product.Code)
		}
		st.products[product.ID] = *product
		return nil
	})
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene acceso exclusivo.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetActiveByCode obtiene el producto activo con ese código.
func (r *ProductRepo) GetActiveByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if p.Active && p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update actualiza datos de catálogo conservando Quantity.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.with(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", product.ID)
		}
		if product.Active && activeCodeTaken(st, product.Code, product.ID) {
			return domain.Errorf(domain.ErrDuplicate, "ya existe un producto activo con código %s", product.Code)
		}
		updated := *product
		updated.Quantity = cur.Quantity
		updated.CreatedAt = cur.CreatedAt
		st.products[product.ID] = updated
		return nil
	})
}

// AdjustQuantity suma delta al contador.
func (r *ProductRepo) AdjustQuantity(_ context.Context, id string, delta int) error {
	return r.with(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", id)
		}
		p.Quantity += delta
		st.products[id] = p
		return nil
	})
}

// List lista productos, más recientes primero.
func (r *ProductRepo) List(_ context.Context, includeInactive bool, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.with(func(st *state) error {
		for _, p := range st.products {
			if !includeInactive && !p.Active {
				continue
			}
			p := p
			list = append(list, &p)
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
	return page(list, limit, offset), nil
}

func activeCodeTaken(st *state, code, exceptID string) bool {
	for id, p := range st.products {
		if id != exceptID && p.Active && p.Code == code {
			return true
		}
	}
	return false
}
