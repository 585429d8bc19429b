package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/analytics"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/orders"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	Ledger     *inventory.LedgerUseCase
	Aggregator *inventory.StockAggregator
	OrdersUC   *orders.UseCase
	SalesUC    *analytics.SalesUseCase
	// Location zona horaria del negocio para interpretar fechas YYYY-MM-DD.
	Location *time.Location
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Inventory (libro de stock)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Aggregator, loc)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/overview", inventoryHandler.Overview)
	invGroup.Get("/summary", inventoryHandler.PeriodSummary)
	invGroup.Get("/reconcile", inventoryHandler.Reconcile)
	invGroup.Get("/products/:id/balance", inventoryHandler.Balance)
	invGroup.Get("/products/:id/movements", inventoryHandler.ListMovements)

	// Orders
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC, loc)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Edit)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/finalize", orderHandler.Finalize)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Post("/:id/reopen", orderHandler.Reopen)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Reports
	reports := api.Group("/reports")
	analyticsHandler := NewAnalyticsHandler(deps.SalesUC)
	reports.Get("/sales", analyticsHandler.SalesSummary)
}
