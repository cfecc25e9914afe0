package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"billdesk/internal/domain"
	"billdesk/internal/handler"
	"billdesk/internal/middleware"
	"billdesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	adminH *handler.AdminHandler,
	reportH *handler.ReportHandler,
	billH *handler.BillHandler,
	fileH *handler.FileHandler,
	auditH *handler.AuditHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Public: lets the registration form know whether the admin slot is taken.
	api.GET("/admin/check-admin", authH.CheckAdmin)

	// Protected routes - require valid JWT
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	managerUp := middleware.RequireRole(domain.RoleAdmin, domain.RoleOperationsManager)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("", managerUp, reportH.List)
	reports.POST("", managerUp, reportH.Create)
	reports.GET("/export", managerUp, reportH.Export)
	reports.GET("/pending-approval", adminOnly, reportH.PendingApproval)
	reports.GET("/pending-deletion", adminOnly, reportH.PendingDeletion)
	reports.GET("/my-reports", reportH.MyReports)
	reports.GET("/users/assignable", managerUp, reportH.Assignable)
	reports.GET("/:id", reportH.Get)
	reports.PUT("/:id", managerUp, reportH.Update)
	reports.DELETE("/:id", managerUp, reportH.Delete)
	reports.PUT("/:id/approve", adminOnly, reportH.Approve)
	reports.PUT("/:id/reject", adminOnly, reportH.Reject)
	reports.PUT("/:id/approve-deletion", adminOnly, reportH.ApproveDeletion)
	reports.PUT("/:id/reject-deletion", adminOnly, reportH.RejectDeletion)
	reports.GET("/:id/files/:fileId/download", reportH.DownloadFile)

	// Bill routes
	bills := protected.Group("/bills")
	bills.GET("", managerUp, billH.List)
	bills.POST("", billH.Create)
	bills.GET("/my-bills", billH.MyBills)
	bills.GET("/analytics", billH.Analytics)
	bills.GET("/pending-approval", adminOnly, billH.PendingApproval)
	bills.GET("/:id", billH.Get)
	bills.PATCH("/:id/status", billH.UpdateStatus)
	bills.PUT("/:id/approve", adminOnly, billH.Approve)
	bills.PUT("/:id/reject", adminOnly, billH.Reject)
	bills.POST("/:id/files", billH.UploadFiles)
	bills.GET("/:id/files/:fileId/download", billH.DownloadFile)
	bills.DELETE("/:id", billH.Delete)

	// File routes
	files := protected.Group("/files")
	files.POST("/upload/:reportId", managerUp, fileH.UploadToReport)
	files.GET("/report/:reportId", fileH.ListByReport)
	files.GET("/:fileId", fileH.Get)
	files.GET("/:fileId/download", fileH.Download)
	files.DELETE("/:fileId", managerUp, fileH.Delete)

	// Audit trail - admin only, except the list which managers may read
	audit := protected.Group("/audit")
	audit.GET("", managerUp, auditH.List)
	audit.GET("/stats/overview", adminOnly, auditH.Stats)
	audit.GET("/export/csv", adminOnly, auditH.ExportCSV)
	audit.GET("/:logId", adminOnly, auditH.Get)

	// Admin dashboard and user management
	admin := protected.Group("/admin")
	admin.Use(adminOnly)
	admin.GET("/stats", adminH.Stats)
	admin.GET("/analytics", adminH.Analytics)
	admin.GET("/users", adminH.ListUsers)
	admin.PUT("/users/:id/role", adminH.ChangeRole)
	admin.PUT("/users/:id/status", adminH.ChangeStatus)
	admin.DELETE("/users/:id", adminH.DeleteUser)
	admin.GET("/reports", reportH.List)
	admin.PUT("/reports/:id", reportH.Update)
	admin.DELETE("/reports/:id", reportH.Delete)
	admin.GET("/bills", billH.List)

	return r
}
