package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/orders"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP del ciclo de vida de pedidos.
//
// Las transiciones que sacan un pedido de finalizado (F→P, F→C) requieren ?confirm=true;
// sin él se responde 409 CONFIRMATION_REQUIRED y el pedido no cambia.
type OrderHandler struct {
	uc  *orders.UseCase
	loc *time.Location
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase, loc *time.Location) *OrderHandler {
	return &OrderHandler{uc: uc, loc: loc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Crea el pedido en estado pendente. El total se calcula a partir de los ítems.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente, ítems, forma de pago, tipo (venda|doacao)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un pedido.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        status       query  string  false  "pendente|finalizado|cancelado"
// @Param        sale_type    query  string  false  "venda|doacao"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        from         query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to           query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	from, err := parseTimeParam(c.Query("from"), h.loc)
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseTimeParam(c.Query("to"), h.loc)
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListOrders(c.UserContext(), repository.OrderFilter{
		Status:     entity.OrderStatus(c.Query("status")),
		SaleType:   entity.SaleType(c.Query("sale_type")),
		CustomerID: c.Query("customer_id"),
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar pedido
// @Description  Reemplaza cliente, ítems, forma de pago y tipo. status opcional pasa por la máquina de estados.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path   string  true   "ID del pedido"
// @Param        confirm  query  bool    false  "Confirma sacar el pedido de finalizado"
// @Param        body     body   dto.EditOrderRequest  true  "Datos del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.EditOrder(c.UserContext(), c.Params("id"), in, confirmed(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finalize finaliza el pedido.
func (h *OrderHandler) Finalize(c *fiber.Ctx) error {
	out, err := h.uc.FinalizeOrder(c.UserContext(), c.Params("id"))
	return h.respond(c, out, err)
}

// Cancel cancela el pedido.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.CancelOrder(c.UserContext(), c.Params("id"), confirmed(c))
	return h.respond(c, out, err)
}

// Reopen vuelve el pedido a pendente.
func (h *OrderHandler) Reopen(c *fiber.Ctx) error {
	out, err := h.uc.ReopenOrder(c.UserContext(), c.Params("id"), confirmed(c))
	return h.respond(c, out, err)
}

// Delete borra el pedido (no permitido si está finalizado).
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) respond(c *fiber.Ctx, out *dto.OrderResponse, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// confirmed lee ?confirm=true; el caso de uso lo evalúa contra el estado bloqueado en la tx.
func confirmed(c *fiber.Ctx) bool {
	return c.QueryBool("confirm", false)
}
