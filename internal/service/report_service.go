package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

// CreateReportInput is the DTO for report creation.
type CreateReportInput struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	Amount        float64           `json:"amount" binding:"gte=0"`
	DueDate       *time.Time        `json:"dueDate"`
	Category      domain.Category   `json:"category" binding:"required"`
	Priority      domain.Priority   `json:"priority"`
	Tags          domain.StringList `json:"tags"`
	AssignedUsers domain.UUIDList   `json:"assignedUsers"`
}

// UpdateReportInput is the DTO for report updates. Nil fields are left
// untouched.
type UpdateReportInput struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Amount        *float64             `json:"amount"`
	DueDate       *time.Time           `json:"dueDate"`
	Category      *domain.Category     `json:"category"`
	Priority      *domain.Priority     `json:"priority"`
	Tags          *domain.StringList   `json:"tags"`
	Status        *domain.EntityStatus `json:"status"`
	AssignedUsers *domain.UUIDList     `json:"assignedUsers"`
}

// ReportService implements the report lifecycle: creation with role-based
// initial approval, admin approval transitions, and the admin-gated
// deletion workflow.
type ReportService interface {
	Create(ctx context.Context, actor *Claims, input CreateReportInput, meta RequestMeta) (*domain.Report, error)
	Get(ctx context.Context, actor *Claims, ref string) (*domain.Report, error)
	List(ctx context.Context, filters domain.ReportFilters) ([]domain.Report, int, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Report, int, error)
	Update(ctx context.Context, actor *Claims, ref string, input UpdateReportInput, meta RequestMeta) (*domain.Report, error)
	Approve(ctx context.Context, actor *Claims, ref string, meta RequestMeta) (*domain.Report, error)
	Reject(ctx context.Context, actor *Claims, ref string, reason string, meta RequestMeta) (*domain.Report, error)
	RequestDeletion(ctx context.Context, actor *Claims, ref string, meta RequestMeta) error
	ApproveDeletion(ctx context.Context, actor *Claims, ref string, meta RequestMeta) error
	RejectDeletion(ctx context.Context, actor *Claims, ref string, meta RequestMeta) (*domain.Report, error)
}

type reportService struct {
	reportRepo port.ReportRepository
	userRepo   port.UserRepository
	fileRepo   port.FileMetaRepository
	storage    port.FileStorage
	email      port.EmailSender
	audit      AuditService
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	userRepo port.UserRepository,
	fileRepo port.FileMetaRepository,
	storage port.FileStorage,
	email port.EmailSender,
	audit AuditService,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		fileRepo:   fileRepo,
		storage:    storage,
		email:      email,
		audit:      audit,
	}
}

// resolve accepts either the internal UUID or the public report_xxx id.
func (s *reportService) resolve(ctx context.Context, ref string) (*domain.Report, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.reportRepo.GetByID(ctx, id)
	}
	return s.reportRepo.GetByReportID(ctx, ref)
}

func (s *reportService) Create(ctx context.Context, actor *Claims, input CreateReportInput, meta RequestMeta) (*domain.Report, error) {
	if input.Category != "" && !domain.ValidCategories[input.Category] {
		return nil, domain.ErrInvalidStatus
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[priority] {
		return nil, domain.ErrInvalidStatus
	}

	report := &domain.Report{
		Title:          input.Title,
		Description:    input.Description,
		Amount:         input.Amount,
		DueDate:        input.DueDate,
		Category:       input.Category,
		Priority:       priority,
		Tags:           input.Tags,
		Status:         domain.StatusDraft,
		ApprovalStatus: domain.ApprovalPending,
		CreatedBy:      actor.UserID,
		AssignedUsers:  input.AssignedUsers,
		DeletionState:  domain.DeletionNone,
	}
	if len(report.AssignedUsers) == 0 {
		report.AssignedUsers = domain.UUIDList{actor.UserID}
	}

	// Admin-created reports skip the approval queue.
	if actor.Role == domain.RoleAdmin {
		now := time.Now().UTC()
		report.ApprovalStatus = domain.ApprovalApproved
		report.ApprovedBy = &actor.UserID
		report.ApprovedAt = &now
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCreateReport, actor.UserID, &report.ID, nil, meta)
	return report, nil
}

func (s *reportService) Get(ctx context.Context, actor *Claims, ref string) (*domain.Report, error) {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, report) {
		return nil, domain.ErrForbidden
	}
	return report, nil
}

// canView applies the visibility rules: managers and admins see
// everything; plain users see approved, non-deletion-requested reports
// they created or are assigned to.
func (s *reportService) canView(actor *Claims, report *domain.Report) bool {
	if actor.Role == domain.RoleAdmin || actor.Role == domain.RoleOperationsManager {
		return true
	}
	if report.ApprovalStatus != domain.ApprovalApproved || report.DeletionState != domain.DeletionNone {
		return false
	}
	return report.CreatedBy == actor.UserID || report.AssignedUsers.Contains(actor.UserID)
}

func (s *reportService) List(ctx context.Context, filters domain.ReportFilters) ([]domain.Report, int, error) {
	return s.reportRepo.List(ctx, filters)
}

func (s *reportService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Report, int, error) {
	return s.reportRepo.List(ctx, domain.ReportFilters{
		VisibleToUser: &userID,
		Page:          page,
		Limit:         limit,
	})
}

func (s *reportService) Update(ctx context.Context, actor *Claims, ref string, input UpdateReportInput, meta RequestMeta) (*domain.Report, error) {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && report.CreatedBy != actor.UserID {
		return nil, domain.ErrForbidden
	}

	statusChanged := false
	priorityChanged := false
	assignmentChanged := false

	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.Amount != nil {
		report.Amount = *input.Amount
	}
	if input.DueDate != nil {
		report.DueDate = input.DueDate
	}
	if input.Category != nil {
		if !domain.ValidCategories[*input.Category] {
			return nil, domain.ErrInvalidStatus
		}
		report.Category = *input.Category
	}
	if input.Priority != nil {
		if !domain.ValidPriorities[*input.Priority] {
			return nil, domain.ErrInvalidStatus
		}
		priorityChanged = report.Priority != *input.Priority
		report.Priority = *input.Priority
	}
	if input.Tags != nil {
		report.Tags = *input.Tags
	}
	if input.Status != nil {
		if !domain.ValidEntityStatuses[*input.Status] {
			return nil, domain.ErrInvalidStatus
		}
		statusChanged = report.Status != *input.Status
		report.Status = *input.Status
	}
	if input.AssignedUsers != nil {
		assignmentChanged = true
		report.AssignedUsers = *input.AssignedUsers
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditUpdateReport, actor.UserID, &report.ID, nil, meta)
	if statusChanged {
		s.audit.Record(ctx, domain.AuditChangeStatus, actor.UserID, &report.ID, nil, meta)
	}
	if priorityChanged {
		s.audit.Record(ctx, domain.AuditChangePriority, actor.UserID, &report.ID, nil, meta)
	}
	if assignmentChanged {
		s.audit.Record(ctx, domain.AuditAssignUser, actor.UserID, &report.ID, nil, meta)
	}
	return report, nil
}

func (s *reportService) Approve(ctx context.Context, actor *Claims, ref string, meta RequestMeta) (*domain.Report, error) {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Approve(ctx, report.ID, actor.UserID); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditApproveReport, actor.UserID, &report.ID, nil, meta)
	s.notifyAssigned(report.AssignedUsers, report.Title, "")
	return s.reportRepo.GetByID(ctx, report.ID)
}

func (s *reportService) Reject(ctx context.Context, actor *Claims, ref string, reason string, meta RequestMeta) (*domain.Report, error) {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Reject(ctx, report.ID, actor.UserID, reason); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditRejectReport, actor.UserID, &report.ID, nil, meta)
	s.notifyAssigned(report.AssignedUsers, report.Title, reason)
	return s.reportRepo.GetByID(ctx, report.ID)
}

// RequestDeletion opens a deletion request: the report drops out of user
// visibility and lands in the admin's pending-deletion queue.
func (s *reportService) RequestDeletion(ctx context.Context, actor *Claims, ref string, meta RequestMeta) error {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && report.CreatedBy != actor.UserID {
		return domain.ErrForbidden
	}
	if err := s.reportRepo.RequestDeletion(ctx, report.ID, actor.UserID); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditDeleteReport, actor.UserID, &report.ID, nil, meta)
	return nil
}

// ApproveDeletion removes stored files first, then the record. A crash
// between the two steps leaves an orphan row rather than orphan bytes.
func (s *reportService) ApproveDeletion(ctx context.Context, actor *Claims, ref string, meta RequestMeta) error {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if report.DeletionState != domain.DeletionRequested {
		return domain.ErrNoDeletionRequest
	}

	files, err := s.fileRepo.ListByOwner(ctx, domain.FileOwnerReport, report.ID)
	if err != nil {
		return err
	}
	for i := range files {
		if err := s.storage.Delete(ctx, files[i].StoragePath); err != nil {
			log.Printf("report.ApproveDeletion: removing %s from storage: %v", files[i].FileID, err)
		}
		if err := s.fileRepo.Delete(ctx, files[i].ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("report.ApproveDeletion: %w", err)
		}
	}

	if err := s.reportRepo.Delete(ctx, report.ID); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditDeleteReport, actor.UserID, &report.ID, nil, meta)
	return nil
}

func (s *reportService) RejectDeletion(ctx context.Context, actor *Claims, ref string, meta RequestMeta) (*domain.Report, error) {
	report, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.RejectDeletion(ctx, report.ID); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditVerifyReport, actor.UserID, &report.ID, nil, meta)
	return s.reportRepo.GetByID(ctx, report.ID)
}

// notifyAssigned emails assigned users about an approval decision.
// Fire-and-forget: notification failures only get logged.
func (s *reportService) notifyAssigned(assigned domain.UUIDList, title, rejectionReason string) {
	if len(assigned) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := s.userRepo.GetByIDs(ctx, assigned)
		if err != nil {
			log.Printf("report.notifyAssigned: loading users: %v", err)
			return
		}
		for i := range users {
			var err error
			if rejectionReason == "" {
				err = s.email.SendApprovalNotice(ctx, users[i].Email, users[i].Name, title)
			} else {
				err = s.email.SendRejectionNotice(ctx, users[i].Email, users[i].Name, title, rejectionReason)
			}
			if err != nil {
				log.Printf("report.notifyAssigned: emailing %s: %v", users[i].Email, err)
			}
		}
	}()
}
