package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/analytics"
)

// AnalyticsHandler expone los resúmenes de ventas.
type AnalyticsHandler struct {
	sales *analytics.SalesUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(sales *analytics.SalesUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{sales: sales}
}

// SalesSummary godoc
// @Summary      Resumen de ventas
// @Description  Total de ventas finalizadas, ventas del día (zona horaria del negocio) y donaciones.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/reports/sales [get]
func (h *AnalyticsHandler) SalesSummary(c *fiber.Ctx) error {
	out, err := h.sales.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
