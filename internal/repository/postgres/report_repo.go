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

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *domain.Report) error {
	report.ID = uuid.New()
	if report.ReportID == "" {
		report.ReportID = domain.NewEntityID("report")
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	query := `INSERT INTO reports (id, report_id, title, description, amount, due_date,
		category, priority, tags, status, approval_status, approved_by, approved_at,
		rejection_reason, created_by, assigned_users, deletion_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.ReportID, report.Title, report.Description, report.Amount,
		report.DueDate, report.Category, report.Priority, report.Tags, report.Status,
		report.ApprovalStatus, report.ApprovedBy, report.ApprovedAt, report.RejectionReason,
		report.CreatedBy, report.AssignedUsers, report.DeletionState,
		report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, "SELECT * FROM reports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &report, nil
}

func (r *reportRepo) GetByReportID(ctx context.Context, reportID string) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, "SELECT * FROM reports WHERE report_id = $1", reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByReportID: %w", err)
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, f domain.ReportFilters) ([]domain.Report, int, error) {
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
	if f.Priority != "" {
		add("priority", f.Priority)
	}
	if f.CreatedBy != nil {
		add("created_by", *f.CreatedBy)
	}
	if f.DeletionState != "" {
		add("deletion_state", f.DeletionState)
	}
	if f.VisibleToUser != nil {
		where = append(where, fmt.Sprintf(
			"approval_status = 'approved' AND deletion_state = 'none' AND (created_by = $%d OR assigned_users @> $%d::jsonb)",
			idx, idx+1))
		args = append(args, *f.VisibleToUser, fmt.Sprintf(`["%s"]`, f.VisibleToUser.String()))
		idx += 2
	}
	clause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reports WHERE "+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.List count: %w", err)
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)
	args = append(args, limit, (page-1)*limit)

	var reports []domain.Report
	err = r.db.SelectContext(ctx, &reports,
		fmt.Sprintf("SELECT * FROM reports WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", clause, idx, idx+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.List: %w", err)
	}
	return reports, total, nil
}

func (r *reportRepo) Update(ctx context.Context, report *domain.Report) error {
	report.UpdatedAt = time.Now().UTC()
	query := `UPDATE reports SET title = $1, description = $2, amount = $3, due_date = $4,
		category = $5, priority = $6, tags = $7, status = $8, assigned_users = $9, updated_at = $10
		WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		report.Title, report.Description, report.Amount, report.DueDate, report.Category,
		report.Priority, report.Tags, report.Status, report.AssignedUsers,
		report.UpdatedAt, report.ID)
	if err != nil {
		return fmt.Errorf("reportRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Approve flips a pending report to approved. The WHERE guard makes the
// transition race-free: a concurrent second approval sees zero rows and
// gets ErrNotPending instead of silently re-approving.
func (r *reportRepo) Approve(ctx context.Context, id, approverID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET approval_status = 'approved', approved_by = $1, approved_at = NOW(),
			rejection_reason = '', updated_at = NOW()
		 WHERE id = $2 AND approval_status = 'pending'`,
		approverID, id)
	if err != nil {
		return fmt.Errorf("reportRepo.Approve: %w", err)
	}
	return r.guardFailure(ctx, result, id, domain.ErrNotPending)
}

func (r *reportRepo) Reject(ctx context.Context, id, approverID uuid.UUID, reason string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET approval_status = 'rejected', approved_by = $1, approved_at = NOW(),
			rejection_reason = $2, updated_at = NOW()
		 WHERE id = $3 AND approval_status = 'pending'`,
		approverID, reason, id)
	if err != nil {
		return fmt.Errorf("reportRepo.Reject: %w", err)
	}
	return r.guardFailure(ctx, result, id, domain.ErrNotPending)
}

func (r *reportRepo) RequestDeletion(ctx context.Context, id, requesterID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET deletion_state = 'requested', deletion_requested_by = $1,
			deletion_requested_at = NOW(), approval_status = 'pending', updated_at = NOW()
		 WHERE id = $2 AND deletion_state = 'none'`,
		requesterID, id)
	if err != nil {
		return fmt.Errorf("reportRepo.RequestDeletion: %w", err)
	}
	return r.guardFailure(ctx, result, id, domain.ErrDeletionRequested)
}

func (r *reportRepo) RejectDeletion(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET deletion_state = 'none', deletion_requested_by = NULL,
			deletion_requested_at = NULL, approval_status = 'approved', updated_at = NOW()
		 WHERE id = $1 AND deletion_state = 'requested'`,
		id)
	if err != nil {
		return fmt.Errorf("reportRepo.RejectDeletion: %w", err)
	}
	return r.guardFailure(ctx, result, id, domain.ErrNoDeletionRequest)
}

func (r *reportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("reportRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// guardFailure distinguishes a missing row from a failed state guard when a
// conditional UPDATE touched nothing.
func (r *reportRepo) guardFailure(ctx context.Context, result sql.Result, id uuid.UUID, guardErr error) error {
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM reports WHERE id = $1)", id); err != nil {
		return fmt.Errorf("reportRepo guard lookup: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return guardErr
}
