// Package order contiene la máquina de estados del ciclo de vida del pedido.
//
// Tabla de transiciones (P=pendente, F=finalizado, C=cancelado):
//
//	de\a  P                 F        C
//	P     no-op             permite  permite
//	F     permite (avisar)  rechaza  permite (avisar)
//	C     permite           permite  no-op
//
// Finalize rechaza solo F→F; Cancel rechaza siempre que el estado actual sea F;
// Reopen y Move (edición genérica) no tienen guarda salvo F→F.
package order

import (
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
)

// Event evento que dispara un cambio de estado.
type Event string

// Eventos del ciclo de vida.
const (
	EventFinalize Event = "finalize"
	EventCancel   Event = "cancel"
	EventReopen   Event = "reopen"
)

// Transition aplica ev sobre from y devuelve el nuevo estado o ErrIllegalTransition.
func Transition(from entity.OrderStatus, ev Event) (entity.OrderStatus, error) {
	if !from.Valid() {
		return from, domain.Errorf(domain.ErrInvalidInput, "estado %q desconocido", from)
	}
	switch ev {
	case EventFinalize:
		if from == entity.OrderStatusFinalizado {
			return from, domain.Errorf(domain.ErrIllegalTransition, "el pedido ya está finalizado")
		}
		return entity.OrderStatusFinalizado, nil
	case EventCancel:
		if from == entity.OrderStatusFinalizado {
			return from, domain.Errorf(domain.ErrIllegalTransition, "no se puede cancelar un pedido finalizado")
		}
		return entity.OrderStatusCancelado, nil
	case EventReopen:
		return entity.OrderStatusPendente, nil
	}
	return from, domain.Errorf(domain.ErrInvalidInput, "evento %q desconocido", ev)
}

// Move valida un cambio de estado arbitrario (edición genérica del pedido).
// Solo F→F está prohibido; P→P y C→C son no-op.
func Move(from, to entity.OrderStatus) (entity.OrderStatus, error) {
	if !from.Valid() || !to.Valid() {
		return from, domain.Errorf(domain.ErrInvalidInput, "estado desconocido")
	}
	if from == entity.OrderStatusFinalizado && to == entity.OrderStatusFinalizado {
		return from, domain.Errorf(domain.ErrIllegalTransition, "el pedido ya está finalizado")
	}
	return to, nil
}

// IsNoop indica si from→to no cambia nada (P→P, C→C).
func IsNoop(from, to entity.OrderStatus) bool {
	return from == to && from != entity.OrderStatusFinalizado
}

// NeedsConfirmation indica si el llamador debe advertir al usuario antes de aplicar from→to:
// reabrir un pedido finalizado o cancelarlo por edición genérica (puede afectar el stock).
func NeedsConfirmation(from, to entity.OrderStatus) bool {
	return from == entity.OrderStatusFinalizado && to != entity.OrderStatusFinalizado
}

// CanDelete indica si un pedido en status puede borrarse definitivamente.
func CanDelete(status entity.OrderStatus) bool {
	return status != entity.OrderStatusFinalizado
}
