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

type auditLogRepo struct {
	db *sqlx.DB
}

// NewAuditLogRepo creates a new PostgreSQL-backed AuditLogRepository.
func NewAuditLogRepo(db *sqlx.DB) port.AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	entry.ID = uuid.New()
	if entry.LogID == "" {
		entry.LogID = domain.NewEntityID("log")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO audit_logs (id, log_id, action, performed_by, verified_by,
		report_id, file_id, details, ip_address, user_agent, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.LogID, entry.Action, entry.PerformedBy, entry.VerifiedBy,
		entry.ReportID, entry.FileID, entry.Details, entry.IPAddress,
		entry.UserAgent, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("auditLogRepo.Create: %w", err)
	}
	return nil
}

func (r *auditLogRepo) GetByLogID(ctx context.Context, logID string) (*domain.AuditLog, error) {
	var entry domain.AuditLog
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM audit_logs WHERE log_id = $1", logID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("auditLogRepo.GetByLogID: %w", err)
	}
	return &entry, nil
}

func (r *auditLogRepo) List(ctx context.Context, f domain.AuditFilters) ([]domain.AuditLog, int, error) {
	clause, args, idx := buildAuditWhere(f)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM audit_logs WHERE "+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.List count: %w", err)
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)
	args = append(args, limit, (page-1)*limit)

	var entries []domain.AuditLog
	err = r.db.SelectContext(ctx, &entries,
		fmt.Sprintf("SELECT * FROM audit_logs WHERE %s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d", clause, idx, idx+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *auditLogRepo) ListForExport(ctx context.Context, f domain.AuditFilters) ([]domain.AuditLog, error) {
	clause, args, _ := buildAuditWhere(f)

	var entries []domain.AuditLog
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM audit_logs WHERE "+clause+" ORDER BY timestamp DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("auditLogRepo.ListForExport: %w", err)
	}
	return entries, nil
}

func (r *auditLogRepo) Stats(ctx context.Context) (*domain.AuditStats, error) {
	stats := &domain.AuditStats{ByAction: map[string]int{}}

	err := r.db.GetContext(ctx, &stats.Total, "SELECT COUNT(*) FROM audit_logs")
	if err != nil {
		return nil, fmt.Errorf("auditLogRepo.Stats total: %w", err)
	}

	var actionRows []struct {
		Action string `db:"action"`
		Count  int    `db:"count"`
	}
	err = r.db.SelectContext(ctx, &actionRows,
		"SELECT action, COUNT(*) AS count FROM audit_logs GROUP BY action ORDER BY count DESC")
	if err != nil {
		return nil, fmt.Errorf("auditLogRepo.Stats actions: %w", err)
	}
	for _, row := range actionRows {
		stats.ByAction[row.Action] = row.Count
	}

	err = r.db.SelectContext(ctx, &stats.TopUsers, `
		SELECT a.performed_by AS user_id, u.name AS name, COUNT(*) AS count
		FROM audit_logs a
		JOIN users u ON u.id = a.performed_by
		GROUP BY a.performed_by, u.name
		ORDER BY count DESC
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("auditLogRepo.Stats top users: %w", err)
	}

	err = r.db.SelectContext(ctx, &stats.RecentActivity,
		"SELECT * FROM audit_logs ORDER BY timestamp DESC LIMIT 10")
	if err != nil {
		return nil, fmt.Errorf("auditLogRepo.Stats recent: %w", err)
	}
	return stats, nil
}

func buildAuditWhere(f domain.AuditFilters) (string, []interface{}, int) {
	where := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if f.ReportID != nil {
		where = append(where, fmt.Sprintf("report_id = $%d", idx))
		args = append(args, *f.ReportID)
		idx++
	}
	if f.UserID != nil {
		where = append(where, fmt.Sprintf("performed_by = $%d", idx))
		args = append(args, *f.UserID)
		idx++
	}
	if f.Action != "" {
		where = append(where, fmt.Sprintf("action = $%d", idx))
		args = append(args, f.Action)
		idx++
	}
	if f.StartDate != nil {
		where = append(where, fmt.Sprintf("timestamp >= $%d", idx))
		args = append(args, *f.StartDate)
		idx++
	}
	if f.EndDate != nil {
		where = append(where, fmt.Sprintf("timestamp <= $%d", idx))
		args = append(args, *f.EndDate)
		idx++
	}
	return strings.Join(where, " AND "), args, idx
}
