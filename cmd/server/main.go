package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/config"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/database"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/gateway"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/handler"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/logger"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/middleware"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/queue"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/repository"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/router"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars

	cfg := config.Load()
	appLog := logger.New()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the marketplace data store.
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	packageRepo := repository.NewPackageRepo(db)
	partyRepo := repository.NewPartyRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Broker events are best-effort except compensation alerts; with no
	// broker configured the services run with publishing disabled.
	var pub service.EventPublisher
	if cfg.AMQPURL != "" {
		pub = queue.NewPublisher()
		go func() {
			if err := queue.StartCompensationConsumer(); err != nil {
				appLog.WithError(err).Error("compensation consumer stopped")
			}
		}()
	}

	gw := gateway.NewHTTPClient(cfg.GatewayBaseURL, cfg.GatewaySecretKey)

	saga := service.NewBookingSaga(eventRepo, bookingRepo, packageRepo, pub, appLog)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, paymentRepo, packageRepo, pub, appLog, cfg.ShareBaseURL)
	paymentWF := service.NewPaymentWorkflow(gw, paymentRepo, invoiceSvc, bookingRepo, partyRepo, appLog)

	// Redis is optional: without it the limiter and cache pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		appLog.Warn("redis unavailable; rate limiting and response cache disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true

	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc, invoiceRepo)
	router.RegisterRoutes(e, invoiceHandler)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, staffRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterConsole(e, cfg.JWTSecret,
		handler.NewBookingHandler(saga, bookingRepo, paymentRepo),
		invoiceHandler,
		handler.NewPaymentHandler(paymentWF, paymentRepo),
		handler.NewEventHandler(eventRepo),
		handler.NewPackageHandler(packageRepo),
		rateLimit,
		cache,
	)

	addr := ":" + cfg.Port
	appLog.WithField("addr", addr).WithField("env", cfg.Env).Info("starting server")
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
