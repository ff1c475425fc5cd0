package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hr-portal-svc/internal/middleware"
	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	accountService service.AccountService,
	profileService service.ProfileService,
	jobService service.JobService,
	timesheetService service.TimesheetService,
	invoiceService service.InvoiceService,
	billingService service.BillingService,
	payrollService service.PayrollService,
	eorService service.EORService,
	notificationService service.NotificationService,
	jwtSecret string,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(accountService, logger)
	profileHandler := NewProfileHandler(profileService, logger)
	jobHandler := NewJobHandler(jobService, logger)
	timesheetHandler := NewTimesheetHandler(timesheetService, logger)
	invoiceHandler := NewInvoiceHandler(invoiceService, logger)
	billingHandler := NewBillingHandler(billingService, logger)
	payrollHandler := NewPayrollHandler(payrollService, logger)
	eorHandler := NewEORHandler(eorService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Everything below requires a valid token
		authed := v1.Group("")
		authed.Use(middleware.Auth(jwtSecret))

		// Profile routes
		employers := authed.Group("/employers")
		{
			employers.POST("", middleware.RequireRole(models.RoleEmployer), profileHandler.CreateEmployerProfile)
			employers.GET("", profileHandler.ListEmployers)
			employers.GET("/:id", profileHandler.GetEmployerProfile)
			employers.GET("/:id/assignments", middleware.RequireRole(models.RoleEmployer), jobHandler.ListAssignments)
		}

		employees := authed.Group("/employees")
		{
			employees.POST("", middleware.RequireRole(models.RoleEmployee), profileHandler.CreateEmployeeProfile)
			employees.GET("/:id", profileHandler.GetEmployeeProfile)
		}

		// Job posting and application routes
		jobs := authed.Group("/jobs")
		{
			jobs.POST("", middleware.RequireRole(models.RoleEmployer), jobHandler.CreateJobPosting)
			jobs.GET("", jobHandler.ListJobPostings)
			jobs.GET("/:id", jobHandler.GetJobPosting)
			jobs.POST("/:id/publish", middleware.RequireRole(models.RoleEmployer), jobHandler.PublishJobPosting)
			jobs.POST("/:id/close", middleware.RequireRole(models.RoleEmployer), jobHandler.CloseJobPosting)
			jobs.POST("/:id/applications", middleware.RequireRole(models.RoleEmployee), jobHandler.Apply)
			jobs.GET("/:id/applications", middleware.RequireRole(models.RoleEmployer), jobHandler.ListApplications)
		}

		applications := authed.Group("/applications")
		{
			applications.POST("/:id/review", middleware.RequireRole(models.RoleEmployer), jobHandler.ReviewApplication)
		}

		// Timesheet and work schedule routes
		timesheets := authed.Group("/timesheets")
		{
			timesheets.POST("", middleware.RequireRole(models.RoleEmployee), timesheetHandler.SubmitTimesheet)
			timesheets.GET("", timesheetHandler.ListTimesheets)
			timesheets.POST("/:id/review", middleware.RequireRole(models.RoleEmployer), timesheetHandler.ReviewTimesheet)
		}

		schedules := authed.Group("/schedules")
		{
			schedules.POST("", middleware.RequireRole(models.RoleEmployer, models.RoleEmployee), timesheetHandler.CreateWorkSchedule)
			schedules.GET("", timesheetHandler.ListWorkSchedules)
		}

		// Invoice and payment routes
		invoices := authed.Group("/invoices")
		{
			invoices.POST("", middleware.RequireRole(models.RoleAdmin), invoiceHandler.CreateInvoice)
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.GET("/export", middleware.RequireRole(models.RoleAdmin), invoiceHandler.ExportInvoices)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.POST("/:id/document", middleware.RequireRole(models.RoleAdmin), invoiceHandler.AttachDocument)
			invoices.POST("/:id/payments", middleware.RequireRole(models.RoleEmployer, models.RoleEORClient), invoiceHandler.RecordPayment)
			invoices.GET("/:id/payments", invoiceHandler.ListPayments)
		}

		// Billing routes (admin only)
		billings := authed.Group("/billings")
		billings.Use(middleware.RequireRole(models.RoleAdmin))
		{
			billings.POST("/employer", billingHandler.BillEmployer)
			billings.POST("/eor", billingHandler.BillEORClient)
			billings.POST("/run-monthly", billingHandler.RunMonthlyBilling)
		}

		// Payslip and payroll routes
		payslips := authed.Group("/payslips")
		{
			payslips.POST("/generate", middleware.RequireRole(models.RoleAdmin), payrollHandler.GeneratePayslip)
			payslips.GET("", payrollHandler.ListPayslips)
		}

		payroll := authed.Group("/payroll")
		{
			payroll.POST("/run", middleware.RequireRole(models.RoleAdmin), payrollHandler.RunPayroll)
		}

		// EOR routes
		eor := authed.Group("/eor")
		{
			eor.POST("/clients", middleware.RequireRole(models.RoleEORClient), profileHandler.CreateEORClientProfile)
			eor.GET("/clients", profileHandler.ListEORClients)
			eor.GET("/clients/:client_id/agreements", eorHandler.ListAgreements)
			eor.GET("/clients/:client_id/placements", eorHandler.ListActivePlacements)
			eor.POST("/agreements", middleware.RequireRole(models.RoleEORClient), eorHandler.CreateAgreement)
			eor.POST("/agreements/:id/activate", middleware.RequireRole(models.RoleAdmin), eorHandler.ActivateAgreement)
			eor.POST("/placements", middleware.RequireRole(models.RoleAdmin), eorHandler.CreatePlacement)
			eor.POST("/placements/:id/terminate", middleware.RequireRole(models.RoleAdmin), eorHandler.TerminatePlacement)
		}

		// Notification routes
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "HR Portal Service",
	})
}
