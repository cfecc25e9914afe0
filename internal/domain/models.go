package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account.
type User struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	Name               string      `db:"name" json:"name"`
	Email              string      `db:"email" json:"email"`
	PasswordHash       string      `db:"password_hash" json:"-"`
	Role               UserRole    `db:"role" json:"role"`
	RegistrationNumber string      `db:"registration_number" json:"registrationNumber"`
	ProfileInfo        ProfileInfo `db:"profile_info" json:"profileInfo"`
	IsActive           bool        `db:"is_active" json:"isActive"`
	CreatedAt          time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updatedAt"`
}

// Report represents an expense report moving through the approval lifecycle.
type Report struct {
	ID                  uuid.UUID      `db:"id" json:"id"`
	ReportID            string         `db:"report_id" json:"reportId"`
	Title               string         `db:"title" json:"title"`
	Description         string         `db:"description" json:"description"`
	Amount              float64        `db:"amount" json:"amount"`
	DueDate             *time.Time     `db:"due_date" json:"dueDate"`
	Category            Category       `db:"category" json:"category"`
	Priority            Priority       `db:"priority" json:"priority"`
	Tags                StringList     `db:"tags" json:"tags"`
	Status              EntityStatus   `db:"status" json:"status"`
	ApprovalStatus      ApprovalStatus `db:"approval_status" json:"approvalStatus"`
	ApprovedBy          *uuid.UUID     `db:"approved_by" json:"approvedBy"`
	ApprovedAt          *time.Time     `db:"approved_at" json:"approvedAt"`
	RejectionReason     string         `db:"rejection_reason" json:"rejectionReason,omitempty"`
	CreatedBy           uuid.UUID      `db:"created_by" json:"createdBy"`
	AssignedUsers       UUIDList       `db:"assigned_users" json:"assignedUsers"`
	DeletionState       DeletionState  `db:"deletion_state" json:"deletionState"`
	DeletionRequestedBy *uuid.UUID     `db:"deletion_requested_by" json:"deletionRequestedBy,omitempty"`
	DeletionRequestedAt *time.Time     `db:"deletion_requested_at" json:"deletionRequestedAt,omitempty"`
	CreatedAt           time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updatedAt"`
}

// Bill represents a utility bill submitted for approval and payment tracking.
type Bill struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	BillID          string         `db:"bill_id" json:"billId"`
	Title           string         `db:"title" json:"title"`
	Description     string         `db:"description" json:"description"`
	Amount          float64        `db:"amount" json:"amount"`
	DueDate         *time.Time     `db:"due_date" json:"dueDate"`
	Category        Category       `db:"category" json:"category"`
	Priority        Priority       `db:"priority" json:"priority"`
	Tags            StringList     `db:"tags" json:"tags"`
	Status          EntityStatus   `db:"status" json:"status"`
	ApprovalStatus  ApprovalStatus `db:"approval_status" json:"approvalStatus"`
	ApprovedBy      *uuid.UUID     `db:"approved_by" json:"approvedBy"`
	ApprovedAt      *time.Time     `db:"approved_at" json:"approvedAt"`
	RejectionReason string         `db:"rejection_reason" json:"rejectionReason,omitempty"`
	PaymentInfo     PaymentInfo    `db:"payment_info" json:"paymentInfo"`
	CreatedBy       uuid.UUID      `db:"created_by" json:"createdBy"`
	AssignedUsers   UUIDList       `db:"assigned_users" json:"assignedUsers"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

// FileMeta stores metadata about a file attached to a report or bill.
type FileMeta struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	FileID        string        `db:"file_id" json:"fileId"`
	OwnerType     FileOwnerType `db:"owner_type" json:"ownerType"`
	OwnerID       uuid.UUID     `db:"owner_id" json:"ownerId"`
	FileName      string        `db:"file_name" json:"fileName"`
	OriginalName  string        `db:"original_name" json:"originalName"`
	MimeType      string        `db:"mime_type" json:"mimeType"`
	FileSize      int64         `db:"file_size" json:"fileSize"`
	StoragePath   string        `db:"storage_path" json:"-"`
	UploadedBy    uuid.UUID     `db:"uploaded_by" json:"uploadedBy"`
	IsPublic      bool          `db:"is_public" json:"isPublic"`
	DownloadCount int64         `db:"download_count" json:"downloadCount"`
	UploadedAt    time.Time     `db:"uploaded_at" json:"uploadedAt"`
}

// AuditLog is an immutable record of a sensitive action.
type AuditLog struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	LogID       string      `db:"log_id" json:"logId"`
	Action      AuditAction `db:"action" json:"action"`
	PerformedBy uuid.UUID   `db:"performed_by" json:"performedBy"`
	VerifiedBy  *uuid.UUID  `db:"verified_by" json:"verifiedBy,omitempty"`
	ReportID    *uuid.UUID  `db:"report_id" json:"reportId,omitempty"`
	FileID      *uuid.UUID  `db:"file_id" json:"fileId,omitempty"`
	Details     DetailsMap  `db:"details" json:"details"`
	IPAddress   string      `db:"ip_address" json:"ipAddress"`
	UserAgent   string      `db:"user_agent" json:"userAgent"`
	Timestamp   time.Time   `db:"timestamp" json:"timestamp"`
}
