package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{
		Users: domain.UserStats{ByRole: map[string]int{}},
		Bills: domain.BillStats{ByStatus: map[string]int{}},
	}

	var userCounts struct {
		Total  int `db:"total"`
		Active int `db:"active"`
	}
	err := r.db.GetContext(ctx, &userCounts, `
		SELECT COUNT(*) AS total,
			COUNT(CASE WHEN is_active THEN 1 END) AS active
		FROM users`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats users: %w", err)
	}
	stats.Users.Total = userCounts.Total
	stats.Users.Active = userCounts.Active

	var roleRows []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}
	err = r.db.SelectContext(ctx, &roleRows,
		"SELECT role, COUNT(*) AS count FROM users GROUP BY role")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats roles: %w", err)
	}
	for _, row := range roleRows {
		stats.Users.ByRole[row.Role] = row.Count
	}

	err = r.db.SelectContext(ctx, &stats.Users.Recent,
		"SELECT * FROM users ORDER BY created_at DESC LIMIT 5")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats recent users: %w", err)
	}

	var reportCounts struct {
		Total  int `db:"total"`
		Active int `db:"active"`
	}
	err = r.db.GetContext(ctx, &reportCounts, `
		SELECT COUNT(*) AS total,
			COUNT(CASE WHEN deletion_state = 'none' THEN 1 END) AS active
		FROM reports`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats reports: %w", err)
	}
	stats.Reports.Total = reportCounts.Total
	stats.Reports.Active = reportCounts.Active

	err = r.db.GetContext(ctx, &stats.Bills.Total, "SELECT COUNT(*) FROM bills")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats bills: %w", err)
	}

	var statusRows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err = r.db.SelectContext(ctx, &statusRows,
		"SELECT status, COUNT(*) AS count FROM bills GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats bill statuses: %w", err)
	}
	for _, row := range statusRows {
		stats.Bills.ByStatus[row.Status] = row.Count
	}

	err = r.db.SelectContext(ctx, &stats.Bills.Recent,
		"SELECT * FROM bills ORDER BY created_at DESC LIMIT 5")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats recent bills: %w", err)
	}

	err = r.db.SelectContext(ctx, &stats.Trends.MonthlyUsers, `
		SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COUNT(*) AS count
		FROM users
		WHERE created_at >= NOW() - INTERVAL '6 months'
		GROUP BY month ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats monthly users: %w", err)
	}

	err = r.db.SelectContext(ctx, &stats.Trends.MonthlyBills, `
		SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COUNT(*) AS count
		FROM bills
		WHERE created_at >= NOW() - INTERVAL '6 months'
		GROUP BY month ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAdminStats monthly bills: %w", err)
	}

	return stats, nil
}

func (r *statsRepo) GetAnalytics(ctx context.Context, periodDays int) (*domain.Analytics, error) {
	if periodDays < 1 {
		periodDays = 30
	}
	analytics := &domain.Analytics{
		PeriodDays:        periodDays,
		CategoryBreakdown: map[string]int{},
		StatusBreakdown:   map[string]int{},
	}

	err := r.db.SelectContext(ctx, &analytics.DailyUsers, `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM users
		WHERE created_at >= NOW() - make_interval(days => $1)
		GROUP BY day ORDER BY day`, periodDays)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAnalytics daily users: %w", err)
	}

	err = r.db.SelectContext(ctx, &analytics.DailyBills, `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM bills
		WHERE created_at >= NOW() - make_interval(days => $1)
		GROUP BY day ORDER BY day`, periodDays)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAnalytics daily bills: %w", err)
	}

	var categoryRows []struct {
		Category string `db:"category"`
		Count    int    `db:"count"`
	}
	err = r.db.SelectContext(ctx, &categoryRows, `
		SELECT category, COUNT(*) AS count FROM bills
		WHERE created_at >= NOW() - make_interval(days => $1)
		GROUP BY category`, periodDays)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAnalytics categories: %w", err)
	}
	for _, row := range categoryRows {
		analytics.CategoryBreakdown[row.Category] = row.Count
	}

	var statusRows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err = r.db.SelectContext(ctx, &statusRows, `
		SELECT status, COUNT(*) AS count FROM bills
		WHERE created_at >= NOW() - make_interval(days => $1)
		GROUP BY status`, periodDays)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetAnalytics statuses: %w", err)
	}
	for _, row := range statusRows {
		analytics.StatusBreakdown[row.Status] = row.Count
	}

	return analytics, nil
}

func (r *statsRepo) GetBillAnalytics(ctx context.Context, userID uuid.UUID) (*domain.BillAnalytics, error) {
	analytics := &domain.BillAnalytics{
		CategoryBreakdown: map[string]int{},
		StatusBreakdown:   map[string]int{},
		AmountByCategory:  map[string]float64{},
	}
	visible := fmt.Sprintf(`["%s"]`, userID.String())

	var totals struct {
		Total   int     `db:"total"`
		Amount  float64 `db:"amount"`
		Average float64 `db:"average"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT COUNT(*) AS total,
			COALESCE(SUM(amount), 0) AS amount,
			COALESCE(AVG(amount), 0) AS average
		FROM bills
		WHERE created_by = $1 OR assigned_users @> $2::jsonb`, userID, visible)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetBillAnalytics totals: %w", err)
	}
	analytics.TotalBills = totals.Total
	analytics.TotalAmount = totals.Amount
	analytics.AverageAmount = totals.Average

	var categoryRows []struct {
		Category string  `db:"category"`
		Count    int     `db:"count"`
		Amount   float64 `db:"amount"`
	}
	err = r.db.SelectContext(ctx, &categoryRows, `
		SELECT category, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount
		FROM bills
		WHERE created_by = $1 OR assigned_users @> $2::jsonb
		GROUP BY category`, userID, visible)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetBillAnalytics categories: %w", err)
	}
	for _, row := range categoryRows {
		analytics.CategoryBreakdown[row.Category] = row.Count
		analytics.AmountByCategory[row.Category] = row.Amount
	}

	var statusRows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err = r.db.SelectContext(ctx, &statusRows, `
		SELECT status, COUNT(*) AS count
		FROM bills
		WHERE created_by = $1 OR assigned_users @> $2::jsonb
		GROUP BY status`, userID, visible)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetBillAnalytics statuses: %w", err)
	}
	for _, row := range statusRows {
		analytics.StatusBreakdown[row.Status] = row.Count
	}

	err = r.db.SelectContext(ctx, &analytics.MonthlyTrend, `
		SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COUNT(*) AS count,
			COALESCE(SUM(amount), 0) AS amount
		FROM bills
		WHERE (created_by = $1 OR assigned_users @> $2::jsonb)
		  AND created_at >= NOW() - INTERVAL '6 months'
		GROUP BY month ORDER BY month`, userID, visible)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetBillAnalytics trend: %w", err)
	}

	return analytics, nil
}
