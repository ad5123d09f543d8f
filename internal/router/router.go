package router

import (
	"time"

	"github.com/wallblue4/tustockya-backend/internal/config"
	"github.com/wallblue4/tustockya-backend/internal/handler"
	"github.com/wallblue4/tustockya-backend/internal/infra"
	"github.com/wallblue4/tustockya-backend/internal/middleware"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
	"github.com/wallblue4/tustockya-backend/internal/service"
	"github.com/wallblue4/tustockya-backend/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, catalog *infra.CatalogClient) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ledgerSvc := service.NewLedgerService(inventoryRepo, movementRepo, locationRepo, catalog)
	saleSvc := service.NewSaleService(saleRepo, ledgerSvc, dispatcher)
	transferSvc := service.NewTransferService(transferRepo, ledgerSvc, locationRepo)
	returnSvc := service.NewReturnService(returnRepo, transferRepo, notificationRepo, userRepo, locationRepo, ledgerSvc, dispatcher)
	discountSvc := service.NewDiscountService(discountRepo, cfg.DiscountCapAmount())
	notificationSvc := service.NewNotificationService(notificationRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	locationSvc := service.NewLocationService(locationRepo)
	dashboardSvc := service.NewDashboardService(saleRepo, transferRepo, discountRepo, notificationRepo, expenseRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	inventoryH := handler.NewInventoryHandler(ledgerSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	transfersH := handler.NewTransfersHandler(transferSvc)
	returnsH := handler.NewReturnsHandler(returnSvc)
	discountsH := handler.NewDiscountsHandler(discountSvc)
	notificationsH := handler.NewNotificationsHandler(notificationSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	locationsH := handler.NewLocationsHandler(locationSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, catalog))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		v1.GET("/locations", locationsH.List)

		// Inventory — reads for store and warehouse staff, corrections admin-only
		readRoles := middleware.RequireRole(model.RoleSeller, model.RoleWarehouseKeeper, model.RoleAdministrator)
		v1.GET("/inventory/:reference", readRoles, inventoryH.Availability)
		v1.GET("/inventory/:reference/other-locations", readRoles, inventoryH.OtherLocations)
		v1.GET("/inventory/:reference/movements", middleware.RequireRole(model.RoleAdministrator), inventoryH.Movements)
		v1.POST("/inventory/adjust", middleware.RequireRole(model.RoleAdministrator), inventoryH.AdjustStock)
		v1.POST("/inventory/display-shift", readRoles, inventoryH.ShiftDisplay)

		sales := v1.Group("/sales", middleware.RequireRole(model.RoleSeller, model.RoleAdministrator))
		{
			sales.POST("", salesH.CreateSale)
			sales.POST("/:id/confirm", salesH.ConfirmSale)
			sales.GET("/today", salesH.TodaySales)
			sales.GET("/pending", salesH.PendingConfirmations)
		}

		transfers := v1.Group("/transfers")
		{
			transfers.POST("", middleware.RequireRole(model.RoleSeller), transfersH.CreateRequest)
			transfers.GET("/mine", middleware.RequireRole(model.RoleSeller), transfersH.MyRequests)
			transfers.GET("/pending", middleware.RequireRole(model.RoleWarehouseKeeper), transfersH.PendingForKeeper)
			transfers.GET("/assigned", middleware.RequireRole(model.RoleCourier), transfersH.AssignedToCourier)
			transfers.POST("/:id/accept", middleware.RequireRole(model.RoleWarehouseKeeper), transfersH.Accept)
			transfers.POST("/:id/ship", middleware.RequireRole(model.RoleWarehouseKeeper, model.RoleCourier), transfersH.StartTransit)
			transfers.POST("/:id/deliver", middleware.RequireRole(model.RoleSeller, model.RoleCourier), transfersH.Deliver)
			transfers.POST("/:id/cancel", middleware.RequireRole(model.RoleSeller), transfersH.Cancel)
		}

		returns := v1.Group("/returns")
		{
			returns.POST("", middleware.RequireRole(model.RoleSeller), returnsH.CreateReturn)
			returns.GET("/mine", middleware.RequireRole(model.RoleSeller), returnsH.MyReturns)
			returns.POST("/:id/accept", middleware.RequireRole(model.RoleSeller, model.RoleCourier), returnsH.Accept)
			returns.POST("/:id/ship", middleware.RequireRole(model.RoleSeller, model.RoleCourier), returnsH.StartTransit)
			returns.POST("/:id/deliver", middleware.RequireRole(model.RoleWarehouseKeeper, model.RoleCourier), returnsH.Deliver)
			returns.POST("/:id/cancel", middleware.RequireRole(model.RoleSeller), returnsH.Cancel)
		}

		discounts := v1.Group("/discounts")
		{
			discounts.POST("", middleware.RequireRole(model.RoleSeller), discountsH.Request)
			discounts.GET("/mine", middleware.RequireRole(model.RoleSeller), discountsH.MyRequests)
			discounts.GET("/pending", middleware.RequireRole(model.RoleAdministrator), discountsH.Pending)
			discounts.POST("/:id/review", middleware.RequireRole(model.RoleAdministrator), discountsH.Review)
		}

		notifications := v1.Group("/notifications", middleware.RequireRole(model.RoleSeller))
		{
			notifications.GET("/returns", notificationsH.List)
			notifications.POST("/returns/:id/read", notificationsH.MarkRead)
		}

		expenses := v1.Group("/expenses", middleware.RequireRole(model.RoleSeller, model.RoleAdministrator))
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("/today", expensesH.Today)
		}

		v1.GET("/dashboard", middleware.RequireRole(model.RoleSeller), dashboardH.SellerDashboard)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
