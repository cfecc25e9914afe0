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

// CreateBillInput is the DTO for bill creation.
type CreateBillInput struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	Amount        float64           `json:"amount" binding:"required,gte=0"`
	DueDate       *time.Time        `json:"dueDate"`
	Category      domain.Category   `json:"category" binding:"required"`
	Priority      domain.Priority   `json:"priority"`
	Tags          domain.StringList `json:"tags"`
	AssignedUsers domain.UUIDList   `json:"assignedUsers"`
}

// UpdateBillStatusInput is the DTO for bill status changes, carrying
// payment details when a bill is marked paid.
type UpdateBillStatusInput struct {
	Status      domain.EntityStatus `json:"status" binding:"required"`
	PaymentInfo domain.PaymentInfo  `json:"paymentInfo"`
}

// BillService implements the bill lifecycle.
type BillService interface {
	Create(ctx context.Context, actor *Claims, input CreateBillInput, meta RequestMeta) (*domain.Bill, error)
	Get(ctx context.Context, actor *Claims, ref string) (*domain.Bill, error)
	List(ctx context.Context, filters domain.BillFilters) ([]domain.Bill, int, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Bill, int, error)
	UpdateStatus(ctx context.Context, actor *Claims, ref string, input UpdateBillStatusInput, meta RequestMeta) (*domain.Bill, error)
	Approve(ctx context.Context, actor *Claims, ref string, meta RequestMeta) (*domain.Bill, error)
	Reject(ctx context.Context, actor *Claims, ref string, reason string, meta RequestMeta) (*domain.Bill, error)
	Delete(ctx context.Context, actor *Claims, ref string, meta RequestMeta) error
	Analytics(ctx context.Context, userID uuid.UUID) (*domain.BillAnalytics, error)
}

type billService struct {
	billRepo  port.BillRepository
	userRepo  port.UserRepository
	fileRepo  port.FileMetaRepository
	storage   port.FileStorage
	email     port.EmailSender
	audit     AuditService
	statsRepo port.StatsRepository
}

// NewBillService creates a new BillService implementation.
func NewBillService(
	billRepo port.BillRepository,
	userRepo port.UserRepository,
	fileRepo port.FileMetaRepository,
	storage port.FileStorage,
	email port.EmailSender,
	audit AuditService,
	statsRepo port.StatsRepository,
) BillService {
	return &billService{
		billRepo:  billRepo,
		userRepo:  userRepo,
		fileRepo:  fileRepo,
		storage:   storage,
		email:     email,
		audit:     audit,
		statsRepo: statsRepo,
	}
}

func (s *billService) resolve(ctx context.Context, ref string) (*domain.Bill, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.billRepo.GetByID(ctx, id)
	}
	return s.billRepo.GetByBillID(ctx, ref)
}

func (s *billService) Create(ctx context.Context, actor *Claims, input CreateBillInput, meta RequestMeta) (*domain.Bill, error) {
	if !domain.ValidCategories[input.Category] {
		return nil, domain.ErrInvalidStatus
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[priority] {
		return nil, domain.ErrInvalidStatus
	}

	bill := &domain.Bill{
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
	}
	if len(bill.AssignedUsers) == 0 {
		bill.AssignedUsers = domain.UUIDList{actor.UserID}
	}

	if actor.Role == domain.RoleAdmin {
		now := time.Now().UTC()
		bill.ApprovalStatus = domain.ApprovalApproved
		bill.ApprovedBy = &actor.UserID
		bill.ApprovedAt = &now
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) Get(ctx context.Context, actor *Claims, ref string) (*domain.Bill, error) {
	bill, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, bill) {
		return nil, domain.ErrForbidden
	}
	return bill, nil
}

func (s *billService) canView(actor *Claims, bill *domain.Bill) bool {
	if actor.Role == domain.RoleAdmin || actor.Role == domain.RoleOperationsManager {
		return true
	}
	return bill.CreatedBy == actor.UserID || bill.AssignedUsers.Contains(actor.UserID)
}

func (s *billService) List(ctx context.Context, filters domain.BillFilters) ([]domain.Bill, int, error) {
	return s.billRepo.List(ctx, filters)
}

func (s *billService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Bill, int, error) {
	return s.billRepo.List(ctx, domain.BillFilters{
		VisibleToUser: &userID,
		Page:          page,
		Limit:         limit,
	})
}

func (s *billService) UpdateStatus(ctx context.Context, actor *Claims, ref string, input UpdateBillStatusInput, meta RequestMeta) (*domain.Bill, error) {
	if !domain.ValidEntityStatuses[input.Status] {
		return nil, domain.ErrInvalidStatus
	}
	bill, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, bill) {
		return nil, domain.ErrForbidden
	}

	if err := s.billRepo.UpdateStatus(ctx, bill.ID, input.Status, input.PaymentInfo); err != nil {
		return nil, err
	}
	return s.billRepo.GetByID(ctx, bill.ID)
}

func (s *billService) Approve(ctx context.Context, actor *Claims, ref string, meta RequestMeta) (*domain.Bill, error) {
	bill, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.billRepo.Approve(ctx, bill.ID, actor.UserID); err != nil {
		return nil, err
	}

	s.notifyAssigned(bill.AssignedUsers, bill.Title, "")
	return s.billRepo.GetByID(ctx, bill.ID)
}

func (s *billService) Reject(ctx context.Context, actor *Claims, ref string, reason string, meta RequestMeta) (*domain.Bill, error) {
	bill, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.billRepo.Reject(ctx, bill.ID, actor.UserID, reason); err != nil {
		return nil, err
	}

	s.notifyAssigned(bill.AssignedUsers, bill.Title, reason)
	return s.billRepo.GetByID(ctx, bill.ID)
}

// Delete removes a bill directly along with its stored files; bills have
// no admin-gated deletion workflow.
func (s *billService) Delete(ctx context.Context, actor *Claims, ref string, meta RequestMeta) error {
	bill, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && bill.CreatedBy != actor.UserID {
		return domain.ErrForbidden
	}

	files, err := s.fileRepo.ListByOwner(ctx, domain.FileOwnerBill, bill.ID)
	if err != nil {
		return err
	}
	for i := range files {
		if err := s.storage.Delete(ctx, files[i].StoragePath); err != nil {
			log.Printf("bill.Delete: removing %s from storage: %v", files[i].FileID, err)
		}
		if err := s.fileRepo.Delete(ctx, files[i].ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("bill.Delete: %w", err)
		}
	}

	return s.billRepo.Delete(ctx, bill.ID)
}

func (s *billService) Analytics(ctx context.Context, userID uuid.UUID) (*domain.BillAnalytics, error) {
	return s.statsRepo.GetBillAnalytics(ctx, userID)
}

func (s *billService) notifyAssigned(assigned domain.UUIDList, title, rejectionReason string) {
	if len(assigned) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := s.userRepo.GetByIDs(ctx, assigned)
		if err != nil {
			log.Printf("bill.notifyAssigned: loading users: %v", err)
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
				log.Printf("bill.notifyAssigned: emailing %s: %v", users[i].Email, err)
			}
		}
	}()
}
