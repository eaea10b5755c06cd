package main

import (
	"fmt"
	"net/http"
	"os"

	"refutree/internal/config"
	"refutree/internal/database"
	"refutree/internal/handlers"
	"refutree/internal/logger"
	"refutree/internal/middleware"
	"refutree/internal/models"
	"refutree/internal/seed"
	"refutree/internal/services"
	"refutree/internal/store"
	"refutree/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "refutree/internal/docs" // Import swagger docs
)

// @title           RefuTree VMS API
// @version         1.0
// @description     RefuTree VMS is the backend for a refugee shelter resident management dashboard: resident case records, incidents, leave requests, documents, labels, audit trail, and backup.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize the store and services. The audit recorder doubles as the
	// store's change listener so every mutation is logged.
	st := store.New(dbManager.DB())
	seed.Register(st, appConfig.SeedDemoData)

	auditService := services.NewAuditService(st)
	st.SetListener(auditService.(store.Listener))

	notificationService := services.NewNotificationService(st)
	userService := services.NewUserService(dbManager.DB())
	residentService := services.NewResidentService(st)
	incidentService := services.NewIncidentService(st)
	leaveService := services.NewLeaveService(st, residentService, notificationService)
	documentService := services.NewDocumentService(st, residentService)
	labelService := services.NewLabelService(st)
	backupService := services.NewBackupService(st, auditService, notificationService)
	reportService := services.NewReportService(residentService, incidentService, leaveService, documentService, auditService)

	// Sweep documents whose expiry date has passed.
	if expired, err := documentService.ExpireOverdue(models.SystemUser); err != nil {
		log.Warnf("Document expiry sweep failed: %v", err)
	} else if expired > 0 {
		log.Infof("Marked %d document(s) as expired", expired)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	residentHandler := handlers.NewResidentHandler(residentService)
	incidentHandler := handlers.NewIncidentHandler(incidentService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	labelHandler := handlers.NewLabelHandler(labelService)
	auditHandler := handlers.NewAuditHandler(auditService)
	backupHandler := handlers.NewBackupHandler(backupService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Resident routes
	residents := protected.Group("/residents")
	residents.POST("", residentHandler.CreateResident)
	residents.GET("", residentHandler.ListResidents)
	residents.GET("/stats", residentHandler.GetResidentStats)
	residents.GET("/:id", residentHandler.GetResident)
	residents.PUT("/:id", residentHandler.UpdateResident)
	residents.POST("/:id/archive", residentHandler.ArchiveResident)

	// Incident routes
	incidents := protected.Group("/incidents")
	incidents.POST("", incidentHandler.ReportIncident)
	incidents.GET("", incidentHandler.ListIncidents)
	incidents.GET("/stats", incidentHandler.GetIncidentStats)
	incidents.GET("/:id", incidentHandler.GetIncident)
	incidents.PATCH("/:id/status", incidentHandler.UpdateIncidentStatus)
	incidents.DELETE("/:id", incidentHandler.DeleteIncident)

	// Leave request routes
	leaveRequests := protected.Group("/leave-requests")
	leaveRequests.POST("", leaveHandler.SubmitLeave)
	leaveRequests.GET("", leaveHandler.ListLeaveRequests)
	leaveRequests.GET("/stats", leaveHandler.GetLeaveStats)
	leaveRequests.GET("/:id", leaveHandler.GetLeaveRequest)
	leaveRequests.POST("/:id/approve", leaveHandler.ApproveLeave)
	leaveRequests.POST("/:id/reject", leaveHandler.RejectLeave)

	// Document routes
	documents := protected.Group("/documents")
	documents.POST("", documentHandler.RegisterDocument)
	documents.GET("", documentHandler.ListDocuments)
	documents.GET("/stats", documentHandler.GetDocumentStats)
	documents.GET("/:id", documentHandler.GetDocument)
	documents.PATCH("/:id/status", documentHandler.UpdateDocumentStatus)
	documents.DELETE("/:id", documentHandler.DeleteDocument)

	// Label routes
	labels := protected.Group("/labels")
	labels.POST("", labelHandler.CreateLabel)
	labels.GET("", labelHandler.ListLabels)
	labels.GET("/:id", labelHandler.GetLabel)
	labels.PUT("/:id", labelHandler.UpdateLabel)
	labels.DELETE("/:id", labelHandler.DeleteLabel)

	// Audit trail routes
	audit := protected.Group("/audit")
	audit.GET("", auditHandler.ListAuditEntries)
	audit.GET("/export", auditHandler.ExportAuditCSV)

	// Backup routes
	backup := protected.Group("/backup")
	backup.GET("/export", backupHandler.ExportBundle)
	backup.POST("/import", backupHandler.ImportBundle)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/management", reportHandler.GetManagementReport)

	log.Infof("Starting RefuTree VMS backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
