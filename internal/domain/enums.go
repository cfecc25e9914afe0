package domain

// UserRole defines the three roles in the system.
type UserRole string

const (
	RoleAdmin             UserRole = "admin"
	RoleOperationsManager UserRole = "operations_manager"
	RoleUser              UserRole = "user"
)

// ValidUserRoles is the closed set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:             true,
	RoleOperationsManager: true,
	RoleUser:              true,
}

// ApprovalStatus is the review state of a report or bill.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// DeletionState tracks the admin-gated deletion workflow on reports.
// Approving a request removes the row entirely, so there is no
// "deleted" member.
type DeletionState string

const (
	DeletionNone      DeletionState = "none"
	DeletionRequested DeletionState = "requested"
)

// EntityStatus is the payment lifecycle shared by reports and bills.
type EntityStatus string

const (
	StatusDraft     EntityStatus = "draft"
	StatusPending   EntityStatus = "pending"
	StatusPaid      EntityStatus = "paid"
	StatusOverdue   EntityStatus = "overdue"
	StatusCancelled EntityStatus = "cancelled"
)

// ValidEntityStatuses is the closed set of statuses accepted on updates.
var ValidEntityStatuses = map[EntityStatus]bool{
	StatusDraft:     true,
	StatusPending:   true,
	StatusPaid:      true,
	StatusOverdue:   true,
	StatusCancelled: true,
}

// Priority of a report or bill.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities is the closed set of priorities.
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// Category of a report or bill.
type Category string

const (
	CategoryElectricity Category = "electricity"
	CategoryWater       Category = "water"
	CategoryGas         Category = "gas"
	CategoryInternet    Category = "internet"
	CategoryPhone       Category = "phone"
	CategoryRent        Category = "rent"
	CategoryInsurance   Category = "insurance"
	CategoryOther       Category = "other"
)

// ValidCategories is the closed set of categories.
var ValidCategories = map[Category]bool{
	CategoryElectricity: true,
	CategoryWater:       true,
	CategoryGas:         true,
	CategoryInternet:    true,
	CategoryPhone:       true,
	CategoryRent:        true,
	CategoryInsurance:   true,
	CategoryOther:       true,
}

// FileOwnerType identifies the entity a file is attached to.
type FileOwnerType string

const (
	FileOwnerReport FileOwnerType = "report"
	FileOwnerBill   FileOwnerType = "bill"
)

// AllowedMimeTypes is the upload allow-list: PDF, Word, Excel, plain text
// and common image formats.
var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// MaxFileSizeBytes is the per-file upload limit (10MB).
const MaxFileSizeBytes = 10 * 1024 * 1024

// MaxFilesPerUpload caps the number of files per multi-file upload.
const MaxFilesPerUpload = 5

// AuditAction is the closed enum of auditable actions.
type AuditAction string

const (
	AuditCreateReport   AuditAction = "create_report"
	AuditUpdateReport   AuditAction = "update_report"
	AuditDeleteReport   AuditAction = "delete_report"
	AuditUploadFile     AuditAction = "upload_file"
	AuditUpdateFile     AuditAction = "update_file"
	AuditDeleteFile     AuditAction = "delete_file"
	AuditDownloadFile   AuditAction = "download_file"
	AuditAssignUser     AuditAction = "assign_user"
	AuditUnassignUser   AuditAction = "unassign_user"
	AuditChangeStatus   AuditAction = "change_status"
	AuditChangePriority AuditAction = "change_priority"
	AuditVerifyReport   AuditAction = "verify_report"
	AuditApproveReport  AuditAction = "approve_report"
	AuditRejectReport   AuditAction = "reject_report"
)

// ValidAuditActions is the closed set of audit actions accepted as filters.
var ValidAuditActions = map[AuditAction]bool{
	AuditCreateReport:   true,
	AuditUpdateReport:   true,
	AuditDeleteReport:   true,
	AuditUploadFile:     true,
	AuditUpdateFile:     true,
	AuditDeleteFile:     true,
	AuditDownloadFile:   true,
	AuditAssignUser:     true,
	AuditUnassignUser:   true,
	AuditChangeStatus:   true,
	AuditChangePriority: true,
	AuditVerifyReport:   true,
	AuditApproveReport:  true,
	AuditRejectReport:   true,
}
