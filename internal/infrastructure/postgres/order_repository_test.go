package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var (
	selectOrders = "SELECT " + strings.Join(orderColumns, ", ") + " FROM orders"
	itemCols     = []string{"order_id", "product_id", "product_name", "quantity", "unit_value"}
	selectItems  = "SELECT order_id, product_id, product_name, quantity, unit_value FROM order_items"
)

func orderRow(rows *pgxmock.Rows, id, status string) *pgxmock.Rows {
	return rows.AddRow(id, "c1", "Maria", "50.00", status, "pix", "venda",
		ts, ts, nil, nil)
}

func TestOrderRepo_GetForUpdate(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	mock.ExpectQuery("^" + sqlLike(selectOrders+" WHERE id = $1 FOR UPDATE") + "$").
		WithArgs("o1").
		WillReturnRows(orderRow(pgxmock.NewRows(orderColumns), "o1", "finalizado"))
	mock.ExpectQuery(sqlLike(selectItems + " WHERE order_id IN ($1) ORDER BY order_id, position")).
		WithArgs("o1").
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow("o1", "p1", "Camisa", 2, "10.00").
			AddRow("o1", "p2", "Calça", 1, "30.00"))

	o, err := NewOrderRepository(mock).GetForUpdate(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderStatusFinalizado, o.Status)
	assert.Equal(t, entity.SaleTypeVenda, o.SaleType)
	assert.True(t, decimal.RequireFromString("50.00").Equal(o.Total))
	assert.Nil(t, o.FinalizedAt)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, "Calça", o.Items[1].ProductName)
}

func TestOrderRepo_GetByID_NoEncontrado(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike(selectOrders + " WHERE id = $1")).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	o, err := NewOrderRepository(mock).GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderRepo_List_Filtros(t *testing.T) {
	from := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	tests := []struct {
		name     string
		filter   repository.OrderFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "sin_filtros",
			filter:  repository.OrderFilter{},
			wantSQL: selectOrders + " ORDER BY created_at DESC, id",
		},
		{
			name: "todos_los_filtros",
			filter: repository.OrderFilter{
				Status:     entity.OrderStatusFinalizado,
				SaleType:   entity.SaleTypeDoacao,
				CustomerID: "c1",
				From:       &from,
				To:         &to,
				Limit:      10,
				Offset:     5,
			},
			wantSQL: selectOrders +
				" WHERE status = $1 AND sale_type = $2 AND customer_id = $3 AND created_at >= $4 AND created_at < $5" +
				" ORDER BY created_at DESC, id LIMIT 10 OFFSET 5",
			wantArgs: []any{"finalizado", "doacao", "c1", from, to},
		},
		{
			name:     "offset_negativo_se_normaliza",
			filter:   repository.OrderFilter{CustomerID: "c2", Limit: 3, Offset: -1},
			wantSQL:  selectOrders + " WHERE customer_id = $1 ORDER BY created_at DESC, id LIMIT 3 OFFSET 0",
			wantArgs: []any{"c2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			exp := mock.ExpectQuery("^" + sqlLike(tt.wantSQL) + "$")
			if len(tt.wantArgs) > 0 {
				exp = exp.WithArgs(tt.wantArgs...)
			}
			exp.WillReturnRows(orderRow(orderRow(pgxmock.NewRows(orderColumns), "o2", "pendente"), "o1", "pendente"))
			mock.ExpectQuery(sqlLike(selectItems + " WHERE order_id IN ($1,$2)")).
				WithArgs("o2", "o1").
				WillReturnRows(pgxmock.NewRows(itemCols).
					AddRow("o1", "p1", "Camisa", 1, "15.00"))

			list, err := NewOrderRepository(mock).List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "o2", list[0].ID)
			assert.Empty(t, list[0].Items)
			assert.Len(t, list[1].Items, 1)
		})
	}
}

func TestOrderRepo_List_Vacio(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(sqlLike(selectOrders)).
		WillReturnRows(pgxmock.NewRows(orderColumns))

	list, err := NewOrderRepository(mock).List(context.Background(), repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "sin pedidos no se consultan ítems")
}

func TestOrderRepo_Update_ReemplazaItems(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	o := testOrder()

	mock.ExpectExec(sqlLike("UPDATE orders SET canceled_at = $1, customer_id = $2")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sqlLike("DELETE FROM order_items WHERE order_id = $1")).
		WithArgs("o1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(sqlLike("INSERT INTO order_items")).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, NewOrderRepository(mock).Update(ctx, o))
}

func TestOrderRepo_UpdateYDelete_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectExec(sqlLike("UPDATE orders SET")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(ctx, testOrder()), domain.ErrNotFound)

	mock.ExpectExec(sqlLike("DELETE FROM orders WHERE id = $1")).
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrNotFound)
}
