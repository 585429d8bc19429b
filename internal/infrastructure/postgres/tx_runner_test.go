package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

var ts = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

// newMock pool simulado; verifica al final que se cumplieron todas las expectativas.
func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func sqlLike(fragment string) string { return regexp.QuoteMeta(fragment) }

func testOrder() *entity.Order {
	return &entity.Order{
		ID: "o1", CustomerID: "c1", CustomerName: "Maria",
		Items: []entity.OrderItem{
			{ProductID: "p1", ProductName: "Camisa", Quantity: 2, UnitValue: decimal.RequireFromString("10.00")},
			{ProductID: "p2", ProductName: "Calça", Quantity: 1, UnitValue: decimal.RequireFromString("30.00")},
		},
		Total:         decimal.RequireFromString("50.00"),
		Status:        entity.OrderStatusPendente,
		PaymentMethod: "pix",
		SaleType:      entity.SaleTypeVenda,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func TestTxRunner_RunOrders_CreateAtomico(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlLike("INSERT INTO orders")).
		WithArgs("o1", "c1", "Maria", pgxmock.AnyArg(), "pendente", "pix", "venda",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(sqlLike("INSERT INTO order_items (order_id,position,product_id,product_name,quantity,unit_value) VALUES ($1,$2,$3,$4,$5,$6),($7,$8,$9,$10,$11,$12)")).
		WithArgs("o1", 0, "p1", "Camisa", 2, pgxmock.AnyArg(), "o1", 1, "p2", "Calça", 1, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := NewTxRunner(mock).RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(ctx, testOrder())
	})
	require.NoError(t, err)
}

func TestTxRunner_RunOrders_RollbackSiFallanLosItems(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlLike("INSERT INTO orders")).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(sqlLike("INSERT INTO order_items")).WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	err := NewTxRunner(mock).RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(ctx, testOrder())
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTxRunner_Run_BeginFalla(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("sin conexiones"))

	called := false
	err := NewTxRunner(mock).Run(context.Background(), func(repository.StockMovementRepository, repository.ProductRepository) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.False(t, called)
}
