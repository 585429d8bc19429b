package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
)

var movementCols = []string{"id", "product_id", "type", "quantity", "origin", "note", "created_at", "active"}

func TestStockMovementRepo_ListByProduct(t *testing.T) {
	from := ts.Add(-24 * time.Hour)
	to := ts.Add(time.Hour)
	base := "SELECT " + movementColumns + " FROM stock_movements WHERE product_id = $1"

	tests := []struct {
		name          string
		from, to      *time.Time
		limit, offset int
		wantSQL       string
		wantArgs      []any
	}{
		{
			name:     "sin_rango",
			wantSQL:  base + " ORDER BY created_at DESC, seq DESC",
			wantArgs: []any{"p1"},
		},
		{
			name:     "rango_y_pagina",
			from:     &from,
			to:       &to,
			limit:    50,
			offset:   100,
			wantSQL:  base + " AND created_at >= $2 AND created_at < $3 ORDER BY created_at DESC, seq DESC LIMIT $4 OFFSET $5",
			wantArgs: []any{"p1", from, to, 50, 100},
		},
		{
			name:     "solo_hasta",
			to:       &to,
			wantSQL:  base + " AND created_at < $2 ORDER BY created_at DESC, seq DESC",
			wantArgs: []any{"p1", to},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery("^" + sqlLike(tt.wantSQL) + "$").
				WithArgs(tt.wantArgs...).
				WillReturnRows(pgxmock.NewRows(movementCols).
					AddRow("m2", "p1", "saida", 2, "venda", "", ts, true).
					AddRow("m1", "p1", "entrada", 5, "doação", "lote 1", ts.Add(-time.Hour), true))

			list, err := NewStockMovementRepository(mock).ListByProduct(context.Background(), "p1", tt.from, tt.to, tt.limit, tt.offset)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, entity.MovementTypeSaida, list[0].Type)
			assert.Equal(t, "lote 1", list[1].Note)
		})
	}
}

func TestStockMovementRepo_ListAll(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("^" + sqlLike("SELECT "+movementColumns+" FROM stock_movements WHERE TRUE AND created_at >= $1 ORDER BY created_at DESC, seq DESC") + "$").
		WithArgs(ts).
		WillReturnRows(pgxmock.NewRows(movementCols))

	list, err := NewStockMovementRepository(mock).ListAll(context.Background(), &ts, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStockMovementRepo_Create(t *testing.T) {
	ctx := context.Background()
	mov := &entity.StockMovement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 3,
		Origin: "doação", CreatedAt: ts, Active: true,
	}

	t.Run("inserta", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(sqlLike("INSERT INTO stock_movements")).
			WithArgs("m1", "p1", "entrada", 3, "doação", "", ts, true).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		require.NoError(t, NewStockMovementRepository(mock).Create(ctx, mov))
	})

	t.Run("producto_inexistente", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(sqlLike("INSERT INTO stock_movements")).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		assert.ErrorIs(t, NewStockMovementRepository(mock).Create(ctx, mov), domain.ErrNotFound)
	})

	t.Run("invalido_no_llega_a_la_bd", func(t *testing.T) {
		mock := newMock(t)
		bad := *mov
		bad.Quantity = 0
		assert.ErrorIs(t, NewStockMovementRepository(mock).Create(ctx, &bad), domain.ErrInvalidInput)
	})
}
