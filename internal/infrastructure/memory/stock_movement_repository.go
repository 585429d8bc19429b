package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock en memoria (solo inserción).
type StockMovementRepo struct {
	with access
}

// Create agrega un movimiento al libro.
func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	return r.with(func(st *state) error {
		st.movements = append(st.movements, *movement)
		return nil
	})
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	list, err := r.collect(func(m *entity.StockMovement) bool {
		return m.ProductID == productID && inRange(m.CreatedAt, from, to)
	})
	if err != nil {
		return nil, err
	}
	return page(list, limit, offset), nil
}

// ListAll todos los movimientos en [from, to).
func (r *StockMovementRepo) ListAll(_ context.Context, from, to *time.Time) ([]*entity.StockMovement, error) {
	return r.collect(func(m *entity.StockMovement) bool {
		return inRange(m.CreatedAt, from, to)
	})
}

func (r *StockMovementRepo) collect(keep func(*entity.StockMovement) bool) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := r.with(func(st *state) error {
		for i := range st.movements {
			m := st.movements[i]
			if keep(&m) {
				list = append(list, &m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Orden de inserción invertido para empates de timestamp
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}
