package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, origin, note, created_at, active`

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, string(movement.Type), movement.Quantity,
		movement.Origin, movement.Note, movement.CreatedAt, movement.Active,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", movement.ProductID)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = withRange(query, args, from, to)
	query += ` ORDER BY created_at DESC, seq DESC`
	query, args = paginate(query, args, limit, offset)
	return r.list(ctx, query, args)
}

// ListAll todos los movimientos en [from, to).
func (r *StockMovementRepo) ListAll(ctx context.Context, from, to *time.Time) ([]*entity.StockMovement, error) {
	query, args := withRange(`SELECT `+movementColumns+` FROM stock_movements WHERE TRUE`, nil, from, to)
	query += ` ORDER BY created_at DESC, seq DESC`
	return r.list(ctx, query, args)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args []any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func withRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, from.UTC())
		query += ` AND created_at >= $` + itoa(len(args))
	}
	if to != nil {
		args = append(args, to.UTC())
		query += ` AND created_at < $` + itoa(len(args))
	}
	return query, args
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var typ string
	if err := row.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.Origin, &m.Note, &m.CreatedAt, &m.Active); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}
