package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"refutree/internal/handlers"
	"refutree/internal/logger"
	"refutree/internal/middleware"
	"refutree/internal/models"
	"refutree/internal/services"
	"refutree/internal/store"
	"refutree/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Store  *store.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate users table: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate collections table: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	st := store.New(db)

	// Services
	auditService := services.NewAuditService(st)
	st.SetListener(auditService.(store.Listener))

	notificationService := services.NewNotificationService(st)
	userService := services.NewUserService(db)
	residentService := services.NewResidentService(st)
	incidentService := services.NewIncidentService(st)
	leaveService := services.NewLeaveService(st, residentService, notificationService)
	documentService := services.NewDocumentService(st, residentService)
	labelService := services.NewLabelService(st)
	backupService := services.NewBackupService(st, auditService, notificationService)
	reportService := services.NewReportService(residentService, incidentService, leaveService, documentService, auditService)

	// Handlers
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

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	residents := protected.Group("/residents")
	residents.POST("", residentHandler.CreateResident)
	residents.GET("", residentHandler.ListResidents)
	residents.GET("/stats", residentHandler.GetResidentStats)
	residents.GET("/:id", residentHandler.GetResident)
	residents.PUT("/:id", residentHandler.UpdateResident)
	residents.POST("/:id/archive", residentHandler.ArchiveResident)

	incidents := protected.Group("/incidents")
	incidents.POST("", incidentHandler.ReportIncident)
	incidents.GET("", incidentHandler.ListIncidents)
	incidents.GET("/stats", incidentHandler.GetIncidentStats)
	incidents.GET("/:id", incidentHandler.GetIncident)
	incidents.PATCH("/:id/status", incidentHandler.UpdateIncidentStatus)
	incidents.DELETE("/:id", incidentHandler.DeleteIncident)

	leaveRequests := protected.Group("/leave-requests")
	leaveRequests.POST("", leaveHandler.SubmitLeave)
	leaveRequests.GET("", leaveHandler.ListLeaveRequests)
	leaveRequests.GET("/stats", leaveHandler.GetLeaveStats)
	leaveRequests.GET("/:id", leaveHandler.GetLeaveRequest)
	leaveRequests.POST("/:id/approve", leaveHandler.ApproveLeave)
	leaveRequests.POST("/:id/reject", leaveHandler.RejectLeave)

	documents := protected.Group("/documents")
	documents.POST("", documentHandler.RegisterDocument)
	documents.GET("", documentHandler.ListDocuments)
	documents.GET("/stats", documentHandler.GetDocumentStats)
	documents.GET("/:id", documentHandler.GetDocument)
	documents.PATCH("/:id/status", documentHandler.UpdateDocumentStatus)
	documents.DELETE("/:id", documentHandler.DeleteDocument)

	labels := protected.Group("/labels")
	labels.POST("", labelHandler.CreateLabel)
	labels.GET("", labelHandler.ListLabels)
	labels.GET("/:id", labelHandler.GetLabel)
	labels.PUT("/:id", labelHandler.UpdateLabel)
	labels.DELETE("/:id", labelHandler.DeleteLabel)

	audit := protected.Group("/audit")
	audit.GET("", auditHandler.ListAuditEntries)
	audit.GET("/export", auditHandler.ExportAuditCSV)

	backup := protected.Group("/backup")
	backup.GET("/export", backupHandler.ExportBundle)
	backup.POST("/import", backupHandler.ImportBundle)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)

	reports := protected.Group("/reports")
	reports.GET("/management", reportHandler.GetManagementReport)

	return &testApp{DB: db, Store: st, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Sanne","last_name":"Bakker"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string), result["refresh_token"].(string)
}

// createResident creates a resident through the API and returns its ID.
func (app *testApp) createResident(t *testing.T, token, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"nationality":"Syrisch","room":"1.01"}`, name)
	rec := app.request("POST", "/api/v1/residents", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create resident failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	resident := result["resident"].(map[string]interface{})
	return resident["id"].(string)
}
