package main

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"shopbase/internal/handler"
	"shopbase/internal/marketplace"
	mid "shopbase/internal/middleware"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/internal/repository/gormstore"
	"shopbase/internal/repository/memstore"
	"shopbase/internal/service"
	"shopbase/pkg/config"
	"shopbase/pkg/crypto"
	"shopbase/pkg/database"
	"shopbase/pkg/jwtutil"
	"shopbase/pkg/logger"
	"shopbase/pkg/metrics"

	"gorm.io/gorm"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load("shopbase")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting shopbase", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})

	// Encryption at rest for marketplace credentials
	encryptor, err := crypto.NewEncryptor(appConfig.Crypto.SecretKey, appConfig.Crypto.InitVector)
	if err != nil {
		log.Fatal("Failed to initialize encryptor", zap.Error(err))
	}

	// Initialize Prometheus metrics
	httpMetrics := metrics.NewHTTPMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize storage
	var store repository.Store
	var db *gorm.DB
	switch appConfig.DB.Driver {
	case config.StorageDriverMemory:
		store = memstore.New()
		log.Info("Using in-memory storage driver")
	default:
		db, err = database.InitDB(&appConfig.DB)
		if err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		if err := database.MigrateModels(db,
			&model.Tenant{}, &model.TenantUser{},
			&model.User{}, &model.Address{},
			&model.Product{}, &model.ProductPhoto{},
			&model.OrderStatus{}, &model.Order{}, &model.OrderItem{},
		); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		store = gormstore.New(db)
		log.Info("Database connection established")
	}

	// Seed the well-known status vocabulary
	if err := seedOrderStatuses(store); err != nil {
		log.Fatal("Failed to seed order statuses", zap.Error(err))
	}

	// Marketplace sync sink: signals are logged until real adapters consume
	// them.
	notifier := marketplace.NewAsyncNotifier(nil, 256, log.Named("marketplace"))
	defer notifier.Close()

	// Services
	authService := service.NewAuthService(store, jwtUtil, &appConfig.Tenant)
	tenantService := service.NewTenantService(store, encryptor)
	productService := service.NewProductService(store, notifier)
	orderService := service.NewOrderService(store, notifier)
	orderItemService := service.NewOrderItemService(store, notifier)
	statusService := service.NewOrderStatusService(store)
	userService := service.NewUserService(store)
	addressService := service.NewAddressService(store)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	orderItemHandler := handler.NewOrderItemHandler(orderItemService)
	statusHandler := handler.NewOrderStatusHandler(statusService)
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(addressService)
	healthHandler := handler.NewHealthHandler(db)

	// Tenant resolution
	resolver := multitenancy.NewResolver(store.Tenants(), appConfig.Tenant.RootDomain, httpMetrics)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware order matters: auth must run before the resolver so token
	// claims can drive the high-trust resolution path.
	e.Use(echomw.Recover())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())
	e.Use(mid.OptionalJWTAuth(jwtUtil))
	e.Use(resolver.Middleware())

	// Tenant-agnostic routes
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
	e.GET("/health", healthHandler.Check)
	e.POST("/api/v1/auth/register", authHandler.Register)
	e.POST("/api/v1/auth/login", authHandler.Login)

	// Authenticated shop routes
	api := e.Group("/api/v1", mid.RequireAuth(store.TenantUsers(), store.Tenants()))

	api.GET("/tenant/settings", tenantHandler.GetSettings)
	api.PUT("/tenant/settings", tenantHandler.UpdateSettings)
	api.POST("/tenant/deactivate", tenantHandler.Deactivate)

	api.GET("/products", productHandler.Search)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)
	api.GET("/products/:id/photos", productHandler.ListPhotos)
	api.POST("/products/:id/photos", productHandler.AddPhoto)
	api.PUT("/products/photos/:photoId", productHandler.UpdatePhoto)
	api.PUT("/products/photos/:photoId/main", productHandler.SetMainPhoto)
	api.DELETE("/products/photos/:photoId", productHandler.DeletePhoto)

	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders", orderHandler.Create)
	api.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	api.POST("/orders/:id/cancel", orderHandler.Cancel)
	api.POST("/orders/:id/pay", orderHandler.Pay)
	api.DELETE("/orders/:id", orderHandler.Delete)
	api.GET("/orders/:id/items", orderItemHandler.ListByOrder)
	api.POST("/orders/:id/items", orderItemHandler.Add)
	api.PUT("/orders/items/:itemId", orderItemHandler.Update)
	api.DELETE("/orders/items/:itemId", orderItemHandler.Delete)

	api.GET("/order-statuses", statusHandler.List)
	api.GET("/order-statuses/:id", statusHandler.Get)
	api.POST("/order-statuses", statusHandler.Create)
	api.PUT("/order-statuses/:id", statusHandler.Update)
	api.DELETE("/order-statuses/:id", statusHandler.Delete)

	api.GET("/customers", userHandler.List)
	api.GET("/customers/:id", userHandler.Get)
	api.POST("/customers", userHandler.Create)
	api.PUT("/customers/:id", userHandler.Update)
	api.DELETE("/customers/:id", userHandler.Delete)

	api.GET("/addresses", addressHandler.List)
	api.GET("/addresses/:id", addressHandler.Get)
	api.POST("/addresses", addressHandler.Create)
	api.PUT("/addresses/:id", addressHandler.Update)
	api.DELETE("/addresses/:id", addressHandler.Delete)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// seedOrderStatuses makes sure the well-known status names exist. The order
// engine looks "Created", "Paid" and "Canceled" up by name at runtime.
func seedOrderStatuses(store repository.Store) error {
	ctx := context.Background()
	for _, name := range []string{
		model.StatusCreated, model.StatusPaid, model.StatusCanceled,
		model.StatusReturned, model.StatusDelivered, model.StatusCompleted,
	} {
		exists, err := store.OrderStatuses().ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := store.OrderStatuses().Create(ctx, &model.OrderStatus{StatusName: name}); err != nil {
			return err
		}
	}
	return nil
}
