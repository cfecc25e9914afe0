package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"billdesk/internal/config"
	"billdesk/internal/email/noop"
	"billdesk/internal/email/ses"
	"billdesk/internal/handler"
	"billdesk/internal/port"
	"billdesk/internal/repository/postgres"
	"billdesk/internal/router"
	"billdesk/internal/service"
	diskstorage "billdesk/internal/storage/disk"
	s3storage "billdesk/internal/storage/s3"
)

// @title Billdesk API
// @version 1.0
// @description Bill and report management backend with role-based approval workflows.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	billRepo := postgres.NewBillRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	auditRepo := postgres.NewAuditLogRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage backend
	var storage port.FileStorage
	switch cfg.Storage.Backend {
	case "s3":
		storage, err = s3storage.NewS3Storage(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	default:
		storage, err = diskstorage.NewDiskStorage(cfg.Storage.UploadsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize disk storage: %w", err)
		}
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	auditSvc := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	reportSvc := service.NewReportService(reportRepo, userRepo, fileRepo, storage, emailSender, auditSvc)
	billSvc := service.NewBillService(billRepo, userRepo, fileRepo, storage, emailSender, auditSvc, statsRepo)
	fileSvc := service.NewFileService(fileRepo, storage, auditSvc)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	adminH := handler.NewAdminHandler(userSvc, statsSvc)
	reportH := handler.NewReportHandler(reportSvc, fileSvc, userSvc)
	billH := handler.NewBillHandler(billSvc, fileSvc)
	fileH := handler.NewFileHandler(fileSvc, reportSvc)
	auditH := handler.NewAuditHandler(auditSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, adminH, reportH, billH, fileH, auditH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
