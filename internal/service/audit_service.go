package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

// RequestMeta carries request attribution captured by handlers for the
// audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	Method    string
	URL       string
}

// Details converts the request metadata to an audit details map.
func (m RequestMeta) Details() domain.DetailsMap {
	return domain.DetailsMap{
		"method": m.Method,
		"url":    m.URL,
	}
}

// AuditService records and queries the audit trail.
type AuditService interface {
	// Record writes an audit entry after a successful state change.
	// Failures are logged and swallowed: auditing must never fail the
	// business operation it follows.
	Record(ctx context.Context, action domain.AuditAction, performedBy uuid.UUID, reportID, fileID *uuid.UUID, meta RequestMeta)
	List(ctx context.Context, filters domain.AuditFilters) ([]domain.AuditLog, int, error)
	Get(ctx context.Context, logID string) (*domain.AuditLog, error)
	Stats(ctx context.Context) (*domain.AuditStats, error)
	Export(ctx context.Context, filters domain.AuditFilters) ([]domain.AuditLog, error)
}

type auditService struct {
	auditRepo port.AuditLogRepository
}

// NewAuditService creates a new AuditService implementation.
func NewAuditService(auditRepo port.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, action domain.AuditAction, performedBy uuid.UUID, reportID, fileID *uuid.UUID, meta RequestMeta) {
	entry := &domain.AuditLog{
		Action:      action,
		PerformedBy: performedBy,
		ReportID:    reportID,
		FileID:      fileID,
		Details:     meta.Details(),
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit.Record: failed to write %s entry: %v", action, err)
	}
}

func (s *auditService) List(ctx context.Context, filters domain.AuditFilters) ([]domain.AuditLog, int, error) {
	return s.auditRepo.List(ctx, filters)
}

func (s *auditService) Get(ctx context.Context, logID string) (*domain.AuditLog, error) {
	return s.auditRepo.GetByLogID(ctx, logID)
}

func (s *auditService) Stats(ctx context.Context) (*domain.AuditStats, error) {
	return s.auditRepo.Stats(ctx)
}

func (s *auditService) Export(ctx context.Context, filters domain.AuditFilters) ([]domain.AuditLog, error) {
	return s.auditRepo.ListForExport(ctx, filters)
}
