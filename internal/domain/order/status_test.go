package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/order"
)

const (
	p = entity.OrderStatusPendente
	f = entity.OrderStatusFinalizado
	c = entity.OrderStatusCancelado
)

func TestTransition_Table(t *testing.T) {
	tests := []struct {
		from    entity.OrderStatus
		ev      order.Event
		want    entity.OrderStatus
		illegal bool
	}{
		{p, order.EventFinalize, f, false},
		{f, order.EventFinalize, f, true},
		{c, order.EventFinalize, f, false},

		{p, order.EventCancel, c, false},
		{f, order.EventCancel, f, true},
		{c, order.EventCancel, c, false},

		{p, order.EventReopen, p, false},
		{f, order.EventReopen, p, false},
		{c, order.EventReopen, p, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.ev), func(t *testing.T) {
			got, err := order.Transition(tt.from, tt.ev)
			if tt.illegal {
				require.ErrorIs(t, err, domain.ErrIllegalTransition)
				assert.Equal(t, tt.from, got, "el estado no cambia cuando se rechaza")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_Desconocidos(t *testing.T) {
	_, err := order.Transition("entregue", order.EventFinalize)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = order.Transition(p, "ship")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMove_SoloRechazaFinalizadoAFinalizado(t *testing.T) {
	all := []entity.OrderStatus{p, f, c}
	for _, from := range all {
		for _, to := range all {
			got, err := order.Move(from, to)
			if from == f && to == f {
				assert.ErrorIs(t, err, domain.ErrIllegalTransition)
				continue
			}
			require.NoError(t, err, "%s→%s", from, to)
			assert.Equal(t, to, got)
		}
	}
	_, err := order.Move(p, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsNoop(t *testing.T) {
	assert.True(t, order.IsNoop(p, p))
	assert.True(t, order.IsNoop(c, c))
	assert.False(t, order.IsNoop(f, f))
	assert.False(t, order.IsNoop(p, f))
}

func TestNeedsConfirmation(t *testing.T) {
	assert.True(t, order.NeedsConfirmation(f, p))
	assert.True(t, order.NeedsConfirmation(f, c))
	assert.False(t, order.NeedsConfirmation(f, f))
	assert.False(t, order.NeedsConfirmation(p, c))
	assert.False(t, order.NeedsConfirmation(c, p))
	assert.False(t, order.NeedsConfirmation(p, f))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, order.CanDelete(p))
	assert.True(t, order.CanDelete(c))
	assert.False(t, order.CanDelete(f))
}
