package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/boldserve/boldserve-api/internal/config"
	"github.com/boldserve/boldserve-api/internal/handler"
	"github.com/boldserve/boldserve-api/internal/middleware"
	"github.com/boldserve/boldserve-api/internal/repository"
	"github.com/boldserve/boldserve-api/internal/service"
	"github.com/boldserve/boldserve-api/internal/upload"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	handler.SetDevelopment(cfg.App.Development())
	if !cfg.App.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	defer connectCancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Error("connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongoClient.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Error("ping MongoDB", "error", err)
		os.Exit(1)
	}
	log.Info("connected to MongoDB", "database", cfg.Mongo.Database)

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(connectCtx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// Upload storage
	uploads, err := upload.NewStore(cfg.Upload.Dir)
	if err != nil {
		log.Error("init upload store", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Error("ensure user indexes", "error", err)
		os.Exit(1)
	}
	adminRepo := repository.NewAdminRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, adminRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userSvc := service.NewUserService(userRepo, redisClient)
	catalogSvc := service.NewCatalogService(serviceRepo, uploads, cfg.Upload.MaxImages, redisClient)
	cartSvc := service.NewCartService(cartRepo, serviceRepo)
	orderSvc := service.NewOrderService(orderRepo)
	paymentSvc := service.NewPaymentService(paymentRepo)
	dashboardSvc := service.NewDashboardService(userRepo, orderRepo, paymentRepo)

	if err := authSvc.EnsureSingletonAdmin(ctx); err != nil {
		log.Error("reconcile admin account", "error", err)
		os.Exit(1)
	}
	log.Info("admin account reconciled")

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc, cfg.Upload.MaxImages)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	healthH := handler.NewHealthHandler(mongoClient, redisClient)

	// Middleware
	limiter := middleware.NewRateLimiter()
	requireUser := middleware.RequireUser(authSvc, userSvc)
	requireAdmin := middleware.RequireAdmin(authSvc)

	// Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)
	router.Static(upload.PublicPrefix, uploads.Dir())

	api := router.Group("/api", limiter.General())
	{
		users := api.Group("/users")
		users.POST("/register", limiter.Strict(), authH.Register)
		users.POST("/login", limiter.Strict(), authH.Login)
		users.GET("/verify", authH.VerifyEmail)
		users.GET("/count", userH.Count)
		users.GET("", requireAdmin, userH.List)
		users.GET("/profile", requireUser, userH.Profile)
		users.POST("/update-profile", requireUser, userH.UpdateProfile)

		admin := api.Group("/admin")
		admin.POST("/login", limiter.Strict(), authH.AdminLogin)
		admin.GET("/dashboard", requireAdmin, dashboardH.Stats)

		dashboard := api.Group("/dashboard", requireAdmin)
		dashboard.GET("/users", dashboardH.Users)
		dashboard.GET("/orders", dashboardH.Orders)
		dashboard.GET("/payments", dashboardH.Payments)
		dashboard.GET("/revenue", dashboardH.Revenue)

		services := api.Group("/services")
		services.GET("", catalogH.List)
		services.GET("/category", catalogH.ListByCategory)
		services.GET("/categories", catalogH.Categories)
		services.GET("/subcategories/:category", catalogH.Subcategories)
		services.GET("/search", catalogH.Search)
		services.GET("/:id", catalogH.GetByID)
		services.POST("", requireAdmin, catalogH.Create)
		services.PUT("/:id", requireAdmin, catalogH.Update)
		services.DELETE("/:id", requireAdmin, catalogH.Delete)

		cart := api.Group("/cart", requireUser)
		cart.GET("", cartH.GetCart)
		cart.GET("/summary", cartH.Summary)
		cart.POST("/add", cartH.AddItem)
		cart.PUT("/item/:itemId", cartH.UpdateItem)
		cart.DELETE("/item/:itemId", cartH.RemoveItem)

		orders := api.Group("/orders")
		orders.GET("", orderH.List)
		orders.GET("/count", orderH.Count)
		orders.GET("/:orderId", orderH.GetByID)
		orders.POST("", requireUser, orderH.Create)
		orders.PUT("/:orderId", requireAdmin, orderH.Update)
		orders.DELETE("/:orderId", requireAdmin, orderH.Delete)

		payments := api.Group("/payments")
		payments.GET("", paymentH.List)
		payments.GET("/:paymentId", paymentH.GetByID)
		payments.POST("", requireUser, paymentH.Create)
		payments.PUT("/:paymentId", requireAdmin, paymentH.UpdateStatus)
		payments.DELETE("/:paymentId", requireAdmin, paymentH.Delete)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	cancel()
	log.Info("server stopped")
}
