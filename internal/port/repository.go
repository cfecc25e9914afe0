package port

import (
	"context"

	"github.com/google/uuid"

	"billdesk/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	List(ctx context.Context, filters domain.UserFilters) ([]domain.User, int, error)
	ListAssignable(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAdmins(ctx context.Context) (int, error)
}

// ReportRepository defines the contract for report persistence, including
// the conditional approval and deletion-workflow transitions.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	GetByReportID(ctx context.Context, reportID string) (*domain.Report, error)
	List(ctx context.Context, filters domain.ReportFilters) ([]domain.Report, int, error)
	Update(ctx context.Context, report *domain.Report) error
	// Approve and Reject transition pending resources only; both return
	// domain.ErrNotPending without mutating when the guard fails.
	Approve(ctx context.Context, id, approverID uuid.UUID) error
	Reject(ctx context.Context, id, approverID uuid.UUID, reason string) error
	// RequestDeletion marks the report and forces approval back to pending;
	// returns domain.ErrDeletionRequested when a request is already open.
	RequestDeletion(ctx context.Context, id, requesterID uuid.UUID) error
	// RejectDeletion clears the request and restores approved status;
	// returns domain.ErrNoDeletionRequest when no request is open.
	RejectDeletion(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillRepository defines the contract for bill persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	GetByBillID(ctx context.Context, billID string) (*domain.Bill, error)
	List(ctx context.Context, filters domain.BillFilters) ([]domain.Bill, int, error)
	Update(ctx context.Context, bill *domain.Bill) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus, payment domain.PaymentInfo) error
	Approve(ctx context.Context, id, approverID uuid.UUID) error
	Reject(ctx context.Context, id, approverID uuid.UUID, reason string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error)
	GetByFileID(ctx context.Context, fileID string) (*domain.FileMeta, error)
	ListByOwner(ctx context.Context, ownerType domain.FileOwnerType, ownerID uuid.UUID) ([]domain.FileMeta, error)
	// IncrementDownloadCount bumps the counter atomically in the database.
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditLogRepository defines the contract for audit log persistence.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	GetByLogID(ctx context.Context, logID string) (*domain.AuditLog, error)
	List(ctx context.Context, filters domain.AuditFilters) ([]domain.AuditLog, int, error)
	// ListForExport returns all matching rows without pagination.
	ListForExport(ctx context.Context, filters domain.AuditFilters) ([]domain.AuditLog, error)
	Stats(ctx context.Context) (*domain.AuditStats, error)
}
