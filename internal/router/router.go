package router

import (
	"time"

	"seratauto/internal/config"
	"seratauto/internal/handler"
	"seratauto/internal/infra"
	"seratauto/internal/middleware"
	"seratauto/internal/repository"
	"seratauto/internal/service"
	"seratauto/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, neotrackCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	neotrackClient := infra.NewNeotrackClient(cfg.NeotrackAPIURL, cfg.NeotrackAPIKey)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	carRepo := repository.NewCarRepository(db)
	carBrandRepo := repository.NewCarBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	prestationRepo := repository.NewPrestationRepository(db)
	venteRepo := repository.NewVenteRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	neotrackRepo := repository.NewNeotrackRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	customerSvc := service.NewCustomerService(customerRepo)
	carSvc := service.NewCarService(carRepo, customerRepo, carBrandRepo)
	carBrandSvc := service.NewCarBrandService(carBrandRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, movementRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	prestationSvc := service.NewPrestationService(prestationRepo, customerRepo, carRepo)
	venteSvc := service.NewVenteService(venteRepo, customerRepo, productRepo, prestationRepo, movementRepo, dispatcher)
	installmentSvc := service.NewInstallmentService(installmentRepo, venteRepo)
	neotrackSvc := service.NewNeotrackService(neotrackRepo, customerRepo, carRepo, neotrackClient, neotrackCB)
	comptabiliteSvc := service.NewComptabiliteService(venteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	carsH := handler.NewCarsHandler(carSvc)
	carBrandsH := handler.NewCarBrandsHandler(carBrandSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	prestationsH := handler.NewPrestationsHandler(prestationSvc)
	ventesH := handler.NewVentesHandler(venteSvc)
	installmentsH := handler.NewInstallmentsHandler(installmentSvc)
	neotracksH := handler.NewNeotracksHandler(neotrackSvc)
	comptabiliteH := handler.NewComptabiliteHandler(comptabiliteSvc)
	priceH := handler.NewPriceLookupHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, neotrackCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	allRoles := middleware.RequireRole("agent", "gestionnaire", "administrateur")
	managers := middleware.RequireRole("gestionnaire", "administrateur")
	admin := middleware.RequireRole("administrateur")

	v1 := r.Group("/v1", jwtMW)
	{
		// Price check — cached read used by the sale form
		v1.GET("/prix/:id", allRoles, priceH.GetPrice)

		customers := v1.Group("/customers", allRoles)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.GET("/:id/cars", carsH.ListByCustomer)
			customers.GET("/:id/prestations", prestationsH.ListByCustomer)
			customers.GET("/:id/installments", installmentsH.ListByCustomer)
		}
		v1.DELETE("/customers/:id", managers, customersH.Delete)
		v1.PATCH("/customers/:id/restore", admin, customersH.Restore)

		cars := v1.Group("/cars", allRoles)
		{
			cars.POST("", carsH.Create)
			cars.GET("", carsH.List)
			cars.GET("/:id", carsH.Get)
			cars.PUT("/:id", carsH.Update)
			cars.PATCH("/:id/associate", carsH.Associate)
			cars.PATCH("/:id/disassociate", carsH.Disassociate)
		}
		v1.DELETE("/cars/:id", managers, carsH.Delete)
		v1.PATCH("/cars/:id/restore", admin, carsH.Restore)

		v1.GET("/brands", allRoles, carBrandsH.List)
		v1.GET("/brands/:id", allRoles, carBrandsH.Get)
		brands := v1.Group("/brands", managers)
		{
			brands.POST("", carBrandsH.Create)
			brands.PUT("/:id", carBrandsH.Update)
			brands.DELETE("/:id", carBrandsH.Delete)
			brands.PATCH("/:id/restore", carBrandsH.Restore)
		}

		v1.GET("/products", allRoles, productsH.List)
		v1.GET("/products/low-stock", allRoles, productsH.StockAlerts)
		v1.GET("/products/:id", allRoles, productsH.Get)
		v1.GET("/products/:id/movements", managers, productsH.ListMovements)
		v1.PATCH("/products/:id/stock", managers, productsH.AdjustStock)
		products := v1.Group("/products", managers)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/restore", productsH.Restore)
		}

		v1.GET("/categories", allRoles, categoriesH.List)
		v1.GET("/categories/:id", allRoles, categoriesH.Get)
		categories := v1.Group("/categories", managers)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
			categories.PATCH("/:id/restore", categoriesH.Restore)
		}

		prestations := v1.Group("/prestations", allRoles)
		{
			prestations.POST("", prestationsH.Create)
			prestations.GET("", prestationsH.List)
			prestations.GET("/:id", prestationsH.Get)
			prestations.PUT("/:id", prestationsH.Update)
		}
		v1.DELETE("/prestations/:id", managers, prestationsH.Delete)
		v1.PATCH("/prestations/:id/restore", admin, prestationsH.Restore)

		ventes := v1.Group("/ventes", allRoles)
		{
			ventes.POST("", ventesH.Create)
			ventes.GET("", ventesH.List)
			ventes.GET("/:id", ventesH.Get)
		}
		v1.PUT("/ventes/:id", managers, ventesH.Update)
		v1.DELETE("/ventes/:id", managers, ventesH.Delete)
		v1.PATCH("/ventes/:id/restore", admin, ventesH.Restore)

		installments := v1.Group("/installments", allRoles)
		{
			installments.GET("/upcoming", installmentsH.ListUpcoming)
			installments.GET("/:id", installmentsH.Get)
			installments.PATCH("/:id/status", installmentsH.SetStatus)
			installments.PATCH("/:id/paid", installmentsH.MarkPaid)
		}

		neotracks := v1.Group("/neotracks", allRoles)
		{
			neotracks.GET("", neotracksH.List)
			neotracks.GET("/:id", neotracksH.Get)
			neotracks.GET("/:id/position", neotracksH.Position)
		}
		neotracksW := v1.Group("/neotracks", managers)
		{
			neotracksW.POST("", neotracksH.Create)
			neotracksW.PUT("/:id", neotracksH.Update)
			neotracksW.POST("/:id/activate", neotracksH.Activate)
			neotracksW.POST("/:id/deactivate", neotracksH.Deactivate)
			neotracksW.DELETE("/:id", neotracksH.Delete)
			neotracksW.PATCH("/:id/restore", neotracksH.Restore)
		}

		v1.GET("/comptabilite/summary", managers, comptabiliteH.Summary)

		users := v1.Group("/users", admin)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
