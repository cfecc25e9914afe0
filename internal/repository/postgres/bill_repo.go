package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.Bill) error {
	bill.ID = uuid.New()
	if bill.BillID == "" {
		bill.BillID = domain.NewEntityID("bill")
	}
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `INSERT INTO bills (id, bill_id, title, description, amount, due_date,
		category, priority, tags, status, approval_status, approved_by, approved_at,
		rejection_reason, payment_info, created_by, assigned_users, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.BillID, bill.Title, bill.Description, bill.Amount, bill.DueDate,
		bill.Category, bill.Priority, bill.Tags, bill.Status, bill.ApprovalStatus,
		bill.ApprovedBy, bill.ApprovedAt, bill.RejectionReason, bill.PaymentInfo,
		bill.CreatedBy, bill.AssignedUsers, bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("billRepo.Create: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) GetByBillID(ctx context.Context, billID string) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE bill_id = $1", billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByBillID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) List(ctx context.Context, f domain.BillFilters) ([]domain.Bill, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		where = append(where, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if f.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", idx, idx))
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.ApprovalStatus != "" {
		add("approval_status", f.ApprovalStatus)
	}
	if f.Category != "" {
		add("category", f.Category)
	}
	if f.CreatedBy != nil {
		add("created_by", *f.CreatedBy)
	}
	if f.VisibleToUser != nil {
		where = append(where, fmt.Sprintf(
			"(created_by = $%d OR assigned_users @> $%d::jsonb)", idx, idx+1))
		args = append(args, *f.VisibleToUser, fmt.Sprintf(`["%s"]`, f.VisibleToUser.String()))
		idx += 2
	}
	clause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills WHERE "+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)
	args = append(args, limit, (page-1)*limit)

	var bills []domain.Bill
	err = r.db.SelectContext(ctx, &bills,
		fmt.Sprintf("SELECT * FROM bills WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", clause, idx, idx+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	return bills, total, nil
}

func (r *billRepo) Update(ctx context.Context, bill *domain.Bill) error {
	bill.UpdatedAt = time.Now().UTC()
	query := `UPDATE bills SET title = $1, description = $2, amount = $3, due_date = $4,
		category = $5, priority = $6, tags = $7, assigned_users = $8, updated_at = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		bill.Title, bill.Description, bill.Amount, bill.DueDate, bill.Category,
		bill.Priority, bill.Tags, bill.AssignedUsers, bill.UpdatedAt, bill.ID)
	if err != nil {
		return fmt.Errorf("billRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus, payment domain.PaymentInfo) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bills SET status = $1, payment_info = payment_info || $2, updated_at = NOW()
		 WHERE id = $3`,
		status, payment, id)
	if err != nil {
		return fmt.Errorf("billRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) Approve(ctx context.Context, id, approverID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bills SET approval_status = 'approved', approved_by = $1, approved_at = NOW(),
			rejection_reason = '', updated_at = NOW()
		 WHERE id = $2 AND approval_status = 'pending'`,
		approverID, id)
	if err != nil {
		return fmt.Errorf("billRepo.Approve: %w", err)
	}
	return r.guardFailure(ctx, result, id)
}

func (r *billRepo) Reject(ctx context.Context, id, approverID uuid.UUID, reason string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bills SET approval_status = 'rejected', approved_by = $1, approved_at = NOW(),
			rejection_reason = $2, updated_at = NOW()
		 WHERE id = $3 AND approval_status = 'pending'`,
		approverID, reason, id)
	if err != nil {
		return fmt.Errorf("billRepo.Reject: %w", err)
	}
	return r.guardFailure(ctx, result, id)
}

func (r *billRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) guardFailure(ctx context.Context, result sql.Result, id uuid.UUID) error {
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM bills WHERE id = $1)", id); err != nil {
		return fmt.Errorf("billRepo guard lookup: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrNotPending
}
