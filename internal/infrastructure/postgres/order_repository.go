package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderColumns = []string{
	"id", "customer_id", "customer_name", "total", "status", "payment_method", "sale_type",
	"created_at", "updated_at", "finalized_at", "canceled_at",
}

// OrderRepo implementación de OrderRepository (usable con pool o tx). Los ítems viven en order_items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create persiste cabecera e ítems. Debe ejecutarse dentro de una tx para que sea atómico.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	sql, args, err := psql().Insert("orders").Columns(orderColumns...).Values(
		order.ID, order.CustomerID, order.CustomerName, order.Total, string(order.Status),
		order.PaymentMethod, string(order.SaleType), order.CreatedAt, order.UpdatedAt,
		order.FinalizedAt, order.CanceledAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert order: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrDuplicate, "pedido %s ya existe", order.ID)
		}
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInvalidInput, "cliente o producto inexistente")
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(ctx, order)
}

func (r *OrderRepo) insertItems(ctx context.Context, order *entity.Order) error {
	if len(order.Items) == 0 {
		return nil
	}
	ins := psql().Insert("order_items").Columns("order_id", "position", "product_id", "product_name", "quantity", "unit_value")
	for i, it := range order.Items {
		ins = ins.Values(order.ID, i, it.ProductID, it.ProductName, it.Quantity, it.UnitValue)
	}
	sql, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert order items: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInvalidInput, "producto inexistente en los ítems")
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// GetByID obtiene el pedido con sus ítems.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, psql().Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}))
}

// GetForUpdate obtiene el pedido y bloquea su fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, psql().Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *OrderRepo) getOne(ctx context.Context, qb squirrel.SelectBuilder) (*entity.Order, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get order: %w", err)
	}
	o, err := scanOrder(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Update reemplaza cabecera e ítems.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	sql, args, err := psql().Update("orders").SetMap(map[string]any{
		"customer_id":    order.CustomerID,
		"customer_name":  order.CustomerName,
		"total":          order.Total,
		"status":         string(order.Status),
		"payment_method": order.PaymentMethod,
		"sale_type":      string(order.SaleType),
		"updated_at":     order.UpdatedAt,
		"finalized_at":   order.FinalizedAt,
		"canceled_at":    order.CanceledAt,
	}).Where(squirrel.Eq{"id": order.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update order: %w", err)
	}
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrNotFound, "pedido %s no encontrado", order.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, order)
}

// Delete elimina el pedido; los ítems se borran en cascada.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrNotFound, "pedido %s no encontrado", id)
	}
	return nil
}

// List filtra con squirrel y ordena por fecha de creación descendente.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	qb := psql().Select(orderColumns...).From("orders").OrderBy("created_at DESC", "id")
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": string(f.Status)})
	}
	if f.SaleType != "" {
		qb = qb.Where(squirrel.Eq{"sale_type": string(f.SaleType)})
	}
	if f.CustomerID != "" {
		qb = qb.Where(squirrel.Eq{"customer_id": f.CustomerID})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"created_at": f.From.UTC()})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.Lt{"created_at": f.To.UTC()})
	}
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit)).Offset(uint64(max(f.Offset, 0)))
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	sql, args, err := psql().
		Select("order_id", "product_id", "product_name", "quantity", "unit_value").
		From("order_items").
		Where(squirrel.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list order items: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitValue); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status, saleType string
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Total, &status, &o.PaymentMethod, &saleType,
		&o.CreatedAt, &o.UpdatedAt, &o.FinalizedAt, &o.CanceledAt)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.SaleType = entity.SaleType(saleType)
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	if o.FinalizedAt != nil {
		t := o.FinalizedAt.UTC()
		o.FinalizedAt = &t
	}
	if o.CanceledAt != nil {
		t := o.CanceledAt.UTC()
		o.CanceledAt = &t
	}
	return &o, nil
}
