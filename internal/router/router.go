package router

import (
	"time"

	"riceweigh/internal/config"
	"riceweigh/internal/handler"
	"riceweigh/internal/middleware"
	"riceweigh/internal/repository"
	"riceweigh/internal/service"
	"riceweigh/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Session())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	txRepo := repository.NewTransactionRepository(db)
	weighingRepo := repository.NewWeighingRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ricePriceRepo := repository.NewRicePriceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	txSvc := service.NewTransactionService(txRepo, weighingRepo, rdb)
	customerSvc := service.NewCustomerService(customerRepo)
	ricePriceSvc := service.NewRicePriceService(ricePriceRepo, rdb)
	paymentSvc := service.NewPaymentService(txRepo, customerRepo, dispatcher, cfg.BusinessName)
	statsSvc := service.NewStatsService(txRepo, rdb)
	confirmSvc := service.NewConfirmService(cfg.DeleteCodeHash, time.Duration(cfg.ConfirmTTLMins)*time.Minute, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	transactionsH := handler.NewTransactionsHandler(txSvc, confirmSvc)
	weightsH := handler.NewWeightsHandler(txSvc)
	customersH := handler.NewCustomersHandler(customerSvc, confirmSvc)
	ricePricesH := handler.NewRicePricesHandler(ricePriceSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	confirmationsH := handler.NewConfirmationsHandler(confirmSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		tx := v1.Group("/transactions")
		{
			tx.POST("", transactionsH.Create)
			tx.GET("", transactionsH.List)
			// "current" before ":id" — Gin matches static segments first,
			// but keep the ordering explicit anyway.
			tx.GET("/current", transactionsH.GetCurrent)
			tx.GET("/:id", transactionsH.GetByID)
			tx.POST("/:id/complete", transactionsH.Complete)
			tx.DELETE("/:id", transactionsH.Delete)
			tx.POST("/:id/weights", weightsH.Add)
			tx.POST("/mark-paid", paymentsH.MarkPaid)
		}

		weights := v1.Group("/weights")
		{
			weights.PUT("/:id", weightsH.Update)
			weights.DELETE("/:id", weightsH.Delete)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Deactivate)
			customers.PATCH("/:id/reactivate", customersH.Reactivate)
			customers.DELETE("/:id/hard", customersH.HardDelete)
		}

		prices := v1.Group("/rice-prices")
		{
			prices.GET("", ricePricesH.List)
			prices.GET("/:rice_type", ricePricesH.Get)
			prices.PUT("/:rice_type", ricePricesH.Upsert)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("/outstanding", paymentsH.Outstanding)
			payments.POST("/invoice", paymentsH.Invoice)
			payments.POST("/invoice/share", paymentsH.ShareInvoice)
		}

		stats := v1.Group("/stats")
		{
			stats.GET("/daily", statsH.Daily)
			stats.GET("/export", statsH.Export)
		}

		v1.POST("/confirmations", middleware.ConfirmRateLimiter(), confirmationsH.Confirm)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
