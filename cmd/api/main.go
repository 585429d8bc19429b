package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/analytics"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/orders"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/usecase"
	infraredis "github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/infrastructure/redis"
	httpRouter "github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/interfaces/http"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/config"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

func main() {
	// .env es opcional; las variables de entorno reales tienen prioridad
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	ledger := inventory.NewLedgerUseCase(st.txRunner, st.products, st.movements, log)
	aggregator := inventory.NewStockAggregator(ledger, st.products, st.movements, log)

	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		cache := infraredis.NewBalanceCache(client, cfg.Redis.TTL, log)
		ledger.WithBalanceCache(cache)
		aggregator.WithBalanceCache(cache)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché de saldos activa")
	}

	productUC := usecase.NewProductUseCase(st.products, st.txRunner, ledger, log)
	customerUC := usecase.NewCustomerUseCase(st.customers)
	ordersUC := orders.NewUseCase(st.orderTx, st.orders, st.products, st.customers, log)
	salesUC := analytics.NewSalesUseCase(st.orders, cfg.App.Location())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs (solo si se generó el swagger.json)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Brechó Beneficente API",
		}))
	} else {
		log.Debug().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CustomerUC: customerUC,
		Ledger:     ledger,
		Aggregator: aggregator,
		OrdersUC:   ordersUC,
		SalesUC:    salesUC,
		Location:   cfg.App.Location(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
