package port

import (
	"context"

	"github.com/google/uuid"

	"billdesk/internal/domain"
)

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	GetAdminStats(ctx context.Context) (*domain.AdminStats, error)
	GetAnalytics(ctx context.Context, periodDays int) (*domain.Analytics, error)
	GetBillAnalytics(ctx context.Context, userID uuid.UUID) (*domain.BillAnalytics, error)
}
