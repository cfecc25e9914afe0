package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportFilters narrows report list queries. Zero values mean "no filter".
type ReportFilters struct {
	Search         string
	Status         EntityStatus
	ApprovalStatus ApprovalStatus
	Category       Category
	Priority       Priority
	CreatedBy      *uuid.UUID
	// VisibleToUser applies plain-user visibility: only approved reports with
	// no open deletion request where the user is creator or assigned.
	VisibleToUser *uuid.UUID
	DeletionState DeletionState
	Page          int
	Limit         int
}

// BillFilters narrows bill list queries. Zero values mean "no filter".
type BillFilters struct {
	Search         string
	Status         EntityStatus
	ApprovalStatus ApprovalStatus
	Category       Category
	CreatedBy      *uuid.UUID
	// VisibleToUser applies plain-user visibility: bills where the user is
	// creator or assigned, in any approval state. Reports are stricter; see
	// ReportFilters.
	VisibleToUser *uuid.UUID
	Page          int
	Limit         int
}

// UserFilters narrows admin user list queries.
type UserFilters struct {
	Role   UserRole
	Search string
	Page   int
	Limit  int
}

// AuditFilters narrows audit log queries and exports.
type AuditFilters struct {
	ReportID  *uuid.UUID
	UserID    *uuid.UUID
	Action    AuditAction
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// NormalizePage clamps page/limit to sane bounds (limit default 10, cap 100).
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
