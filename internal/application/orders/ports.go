package orders

import (
	"context"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con el repositorio de pedidos atado a ella.
// Los cambios de estado se hacen como check-and-set sobre la fila bloqueada.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}
