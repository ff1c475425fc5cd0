package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hr-portal-svc/docs"
	"hr-portal-svc/internal/config"
	"hr-portal-svc/internal/database"
	"hr-portal-svc/internal/handler"
	"hr-portal-svc/internal/middleware"
	"hr-portal-svc/internal/pdf"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/internal/scheduler"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/internal/storage"
	"hr-portal-svc/pkg/logger"
)

// @title HR Portal Service API
// @version 1.0
// @description RESTful API for the HR portal: staffing, timesheets, billing and EOR payroll
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "HR Portal Service API"
	docs.SwaggerInfo.Description = "RESTful API for the HR portal: staffing, timesheets, billing and EOR payroll"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting HR Portal Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	employerRepo := repository.NewEmployerRepository(db.DB)
	employeeRepo := repository.NewEmployeeRepository(db.DB)
	eorRepo := repository.NewEORRepository(db.DB)
	timesheetRepo := repository.NewTimesheetRepository(db.DB)
	invoiceRepo := repository.NewInvoiceRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)

	// Initialize artifact rendering and storage
	renderer := pdf.NewRenderer("HR Portal")
	fileStore := storage.NewDiskStore(cfg.Storage.BaseDir)

	// Initialize services
	accountService := service.NewAccountService(userRepo, cfg.JWT.Secret, appLogger)
	profileService := service.NewProfileService(employerRepo, employeeRepo, eorRepo, userRepo, appLogger)
	jobService := service.NewJobService(employerRepo, employeeRepo, notificationRepo, appLogger)
	timesheetService := service.NewTimesheetService(timesheetRepo, employeeRepo, appLogger)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, employerRepo, eorRepo, renderer, fileStore, db.DB, appLogger)
	billingService, err := service.NewBillingService(invoiceService, timesheetRepo, employerRepo, employeeRepo, eorRepo, notificationRepo, db.DB, &cfg.Billing, appLogger)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Invalid billing configuration")
	}
	payrollService, err := service.NewPayrollService(employeeRepo, timesheetRepo, eorRepo, notificationRepo, renderer, fileStore, db.DB, &cfg.Payroll, appLogger)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Invalid payroll configuration")
	}
	eorService := service.NewEORService(eorRepo, employeeRepo, appLogger)
	notificationService := service.NewNotificationService(notificationRepo)

	// Start the billing scheduler
	billingScheduler := scheduler.NewBillingScheduler(
		billingService,
		invoiceService,
		schedulerLogRepo,
		appLogger,
		cfg.Scheduler.BillingCronExpression,
		cfg.Scheduler.OverdueCronExpression,
	)
	if err := billingScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start billing scheduler")
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(
		router,
		accountService,
		profileService,
		jobService,
		timesheetService,
		invoiceService,
		billingService,
		payrollService,
		eorService,
		notificationService,
		cfg.JWT.Secret,
		appLogger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop scheduled jobs before closing connections
	billingScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
