package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del libro de stock.
type InventoryHandler struct {
	ledger     *inventory.LedgerUseCase
	aggregator *inventory.StockAggregator
	loc        *time.Location
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, aggregator *inventory.StockAggregator, loc *time.Location) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, aggregator: aggregator, loc: loc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (entrada|saida), quantity, origin, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.RegisterMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Balance godoc
// @Summary      Saldo del producto según el libro de stock
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/balance [get]
func (h *InventoryHandler) Balance(c *fiber.Ctx) error {
	id := c.Params("id")
	b, err := h.aggregator.CalcularEstoque(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ProductID: id, Entradas: b.Entradas, Saidas: b.Saidas, Total: b.Total})
}

// ListMovements historial del producto, más recientes primero. Acepta from/to.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := h.rangeParams(c)
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := pageParams(c)
	out, err := h.ledger.ListMovements(c.UserContext(), c.Params("id"), from, to, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": out,
		"page":  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Overview saldo de todos los productos activos junto con su contador y el valor del stock.
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	out, err := h.aggregator.StockOverview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	atCost, atSale := decimal.Zero, decimal.Zero
	for _, it := range out {
		atCost = atCost.Add(it.ValueAtCost)
		atSale = atSale.Add(it.ValueAtSale)
	}
	return c.JSON(fiber.Map{
		"total":         len(out),
		"items":         out,
		"value_at_cost": atCost,
		"value_at_sale": atSale,
	})
}

// PeriodSummary godoc
// @Summary      Entradas y salidas por producto en [from, to)
// @Tags         inventory
// @Produce      json
// @Param        from  query  string  true  "RFC3339 o YYYY-MM-DD"
// @Param        to    query  string  true  "RFC3339 o YYYY-MM-DD"
// @Success      200   {object}  dto.PeriodSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) PeriodSummary(c *fiber.Ctx) error {
	from, to, err := h.rangeParams(c)
	if err != nil {
		return writeError(c, err)
	}
	if from == nil || to == nil {
		return badRequest(c, "VALIDATION", "from y to son requeridos")
	}
	out, err := h.aggregator.PeriodSummary(c.UserContext(), *from, *to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile compara contador y libro de cada producto.
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.aggregator.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *InventoryHandler) rangeParams(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := parseTimeParam(c.Query("from"), h.loc)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseTimeParam(c.Query("to"), h.loc)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, domain.Errorf(domain.ErrInvalidInput, "from debe ser anterior a to")
	}
	return from, to, nil
}
