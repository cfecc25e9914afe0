package service

import (
	"context"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

// StatsService serves the admin dashboard aggregates.
type StatsService interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	Analytics(ctx context.Context, periodDays int) (*domain.Analytics, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	return s.statsRepo.GetAdminStats(ctx)
}

func (s *statsService) Analytics(ctx context.Context, periodDays int) (*domain.Analytics, error) {
	return s.statsRepo.GetAnalytics(ctx, periodDays)
}
