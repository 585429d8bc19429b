// Package orders implementa el ciclo de vida de los pedidos (venta o donación).
//
// Finalizar un pedido no genera salidas de stock: stock y pedidos están desacoplados
// y el stock se maneja manualmente desde el libro.
package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/order"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

// UseCase gestor del ciclo de vida de pedidos.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		log:          log.Component("orders"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = func() time.Time { return now().UTC() }
	return uc
}

// CreateOrder crea un pedido pendiente. El total se calcula a partir de los ítems.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	customer, err := uc.resolveCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	saleType, err := parseSaleType(in.SaleType)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	o := &entity.Order{
		ID:            uuid.New().String(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Items:         priceItems(lines, saleType),
		Status:        entity.OrderStatusPendente,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		SaleType:      saleType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.RecalculateTotal()
	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", o.ID).
		Str("customer_id", o.CustomerID).
		Str("total", o.Total.StringFixed(2)).
		Str("sale_type", string(o.SaleType)).
		Msg("pedido creado")
	return ToOrderResponse(o), nil
}

// EditOrder reemplaza cliente, ítems, forma de pago y tipo; recalcula el total.
// Cliente, forma de pago y tipo vacíos conservan el valor actual del pedido.
// Conserva ID y CreatedAt. Sacar un pedido de finalizado exige confirmed.
func (uc *UseCase) EditOrder(ctx context.Context, id string, in dto.EditOrderRequest, confirmed bool) (*dto.OrderResponse, error) {
	var target *entity.OrderStatus
	if in.Status != nil {
		s := entity.OrderStatus(*in.Status)
		if !s.Valid() {
			return nil, domain.Errorf(domain.ErrInvalidInput, "estado %q desconocido", *in.Status)
		}
		target = &s
	}
	var saleType entity.SaleType
	if strings.TrimSpace(in.SaleType) != "" {
		var err error
		if saleType, err = parseSaleType(strings.TrimSpace(in.SaleType)); err != nil {
			return nil, err
		}
	}
	lines, err := uc.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if in.CustomerID != "" {
		if customer, err = uc.resolveCustomer(ctx, in.CustomerID); err != nil {
			return nil, err
		}
	}
	payment := strings.TrimSpace(in.PaymentMethod)

	var out *entity.Order
	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		o, err := lockOrder(ctx, orderRepo, id)
		if err != nil {
			return err
		}
		now := uc.now()
		from := o.Status
		if target != nil && *target != from {
			next, err := order.Move(from, *target)
			if err != nil {
				return err
			}
			if err := checkConfirmation(from, next, confirmed); err != nil {
				return err
			}
			applyStatus(o, next, now)
		}
		if customer != nil {
			o.CustomerID = customer.ID
			o.CustomerName = customer.Name
		}
		if saleType != "" {
			o.SaleType = saleType
		}
		if payment != "" {
			o.PaymentMethod = payment
		}
		o.Items = priceItems(lines, o.SaleType)
		o.RecalculateTotal()
		o.UpdatedAt = now
		if err := orderRepo.Update(ctx, o); err != nil {
			return err
		}
		if from != o.Status {
			uc.logTransition(o, from)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(out), nil
}

// FinalizeOrder pasa el pedido a finalizado. Rechaza F→F con ErrIllegalTransition.
func (uc *UseCase) FinalizeOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.apply(ctx, id, order.EventFinalize, false)
}

// CancelOrder cancela el pedido. Rechaza cualquier pedido finalizado.
func (uc *UseCase) CancelOrder(ctx context.Context, id string, confirmed bool) (*dto.OrderResponse, error) {
	return uc.apply(ctx, id, order.EventCancel, confirmed)
}

// ReopenOrder vuelve el pedido a pendente. Un pedido finalizado solo se reabre con confirmed;
// sin él devuelve ErrConfirmationRequired y no cambia nada.
func (uc *UseCase) ReopenOrder(ctx context.Context, id string, confirmed bool) (*dto.OrderResponse, error) {
	return uc.apply(ctx, id, order.EventReopen, confirmed)
}

// DeleteOrder borra definitivamente el pedido si no está finalizado.
func (uc *UseCase) DeleteOrder(ctx context.Context, id string) error {
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		o, err := lockOrder(ctx, orderRepo, id)
		if err != nil {
			return err
		}
		if !order.CanDelete(o.Status) {
			return domain.Errorf(domain.ErrIllegalTransition, "no se puede eliminar un pedido finalizado")
		}
		return orderRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_id", id).Msg("pedido eliminado")
	return nil
}

// GetOrder obtiene un pedido.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "pedido %s no encontrado", id)
	}
	return ToOrderResponse(o), nil
}

// ListOrders lista pedidos, más recientes primero.
func (uc *UseCase) ListOrders(ctx context.Context, filter repository.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "estado %q desconocido", filter.Status)
	}
	if filter.SaleType != "" && !filter.SaleType.Valid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "tipo de venta %q desconocido", filter.SaleType)
	}
	list, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// apply ejecuta el evento sobre el pedido bloqueado; la confirmación se evalúa con el estado leído en la tx.
func (uc *UseCase) apply(ctx context.Context, id string, ev order.Event, confirmed bool) (*dto.OrderResponse, error) {
	var out *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		o, err := lockOrder(ctx, orderRepo, id)
		if err != nil {
			return err
		}
		from := o.Status
		next, err := order.Transition(from, ev)
		if err != nil {
			return err
		}
		out = o
		if order.IsNoop(from, next) {
			return nil
		}
		if err := checkConfirmation(from, next, confirmed); err != nil {
			return err
		}
		applyStatus(o, next, uc.now())
		if err := orderRepo.Update(ctx, o); err != nil {
			return err
		}
		uc.logTransition(o, from)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", id).Str("event", string(ev)).Msg("transición rechazada")
		return nil, err
	}
	return ToOrderResponse(out), nil
}

// applyStatus cambia el estado y sella las fechas correspondientes.
func applyStatus(o *entity.Order, next entity.OrderStatus, now time.Time) {
	switch next {
	case entity.OrderStatusFinalizado:
		o.FinalizedAt = &now
	case entity.OrderStatusCancelado:
		o.CanceledAt = &now
	}
	o.Status = next
	o.UpdatedAt = now
}

func checkConfirmation(from, next entity.OrderStatus, confirmed bool) error {
	if order.NeedsConfirmation(from, next) && !confirmed {
		return domain.Errorf(domain.ErrConfirmationRequired, "el pedido está finalizado; repita la operación con confirm=true")
	}
	return nil
}

func (uc *UseCase) logTransition(o *entity.Order, from entity.OrderStatus) {
	var ev *zerolog.Event
	if order.NeedsConfirmation(from, o.Status) {
		ev = uc.log.Warn()
	} else {
		ev = uc.log.Info()
	}
	ev.Str("order_id", o.ID).
		Str("from", string(from)).
		Str("to", string(o.Status)).
		Msg("estado del pedido actualizado")
}

func lockOrder(ctx context.Context, orderRepo repository.OrderRepository, id string) (*entity.Order, error) {
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "pedido %s no encontrado", id)
	}
	return o, nil
}

func (uc *UseCase) resolveCustomer(ctx context.Context, customerID string) (*entity.Customer, error) {
	if customerID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "cliente requerido")
	}
	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "cliente %s no existe", customerID)
	}
	return c, nil
}

// itemLine línea validada contra el catálogo; el precio final depende del tipo de venta.
type itemLine struct {
	entity.OrderItem
	listPrice decimal.Decimal
}

// resolveItems valida las líneas contra el catálogo y toma una copia del nombre del producto.
func (uc *UseCase) resolveItems(ctx context.Context, in []dto.OrderItemRequest) ([]itemLine, error) {
	if len(in) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el pedido debe tener al menos un ítem")
	}
	lines := make([]itemLine, 0, len(in))
	for i, it := range in {
		if it.ProductID == "" {
			return nil, domain.Errorf(domain.ErrInvalidInput, "ítem %d: producto requerido", i+1)
		}
		if it.Quantity <= 0 {
			return nil, domain.Errorf(domain.ErrInvalidInput, "ítem %d: la cantidad debe ser mayor que cero", i+1)
		}
		if it.UnitValue.LessThan(decimal.Zero) {
			return nil, domain.Errorf(domain.ErrInvalidInput, "ítem %d: valor unitario negativo", i+1)
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.Active {
			return nil, domain.Errorf(domain.ErrInvalidInput, "ítem %d: producto %s no existe", i+1, it.ProductID)
		}
		lines = append(lines, itemLine{
			OrderItem: entity.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				UnitValue:   it.UnitValue,
			},
			listPrice: p.SaleValue,
		})
	}
	return lines, nil
}

// priceItems fija el valor unitario: en venta, un valor cero toma el precio de catálogo.
func priceItems(lines []itemLine, saleType entity.SaleType) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		it := l.OrderItem
		if it.UnitValue.IsZero() && saleType == entity.SaleTypeVenda {
			it.UnitValue = l.listPrice
		}
		items = append(items, it)
	}
	return items
}

func parseSaleType(s string) (entity.SaleType, error) {
	if s == "" {
		return entity.SaleTypeVenda, nil
	}
	t := entity.SaleType(s)
	if !t.Valid() {
		return "", domain.Errorf(domain.ErrInvalidInput, "tipo de venta %q desconocido", s)
	}
	return t, nil
}

// ToOrderResponse mapea la entidad al DTO de salida.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitValue:   it.UnitValue,
			Subtotal:    it.Subtotal(),
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		Items:         items,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		SaleType:      string(o.SaleType),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		FinalizedAt:   o.FinalizedAt,
		CanceledAt:    o.CanceledAt,
	}
}
