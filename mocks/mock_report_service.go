package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Create(ctx context.Context, actor *service.Claims, input service.CreateReportInput, meta service.RequestMeta) (*domain.Report, error) {
	args := m.Called(ctx, actor, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, actor *service.Claims, ref string) (*domain.Report, error) {
	args := m.Called(ctx, actor, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, filters domain.ReportFilters) ([]domain.Report, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *MockReportService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Report, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *MockReportService) Update(ctx context.Context, actor *service.Claims, ref string, input service.UpdateReportInput, meta service.RequestMeta) (*domain.Report, error) {
	args := m.Called(ctx, actor, ref, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) Approve(ctx context.Context, actor *service.Claims, ref string, meta service.RequestMeta) (*domain.Report, error) {
	args := m.Called(ctx, actor, ref, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) Reject(ctx context.Context, actor *service.Claims, ref string, reason string, meta service.RequestMeta) (*domain.Report, error) {
	args := m.Called(ctx, actor, ref, reason, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) RequestDeletion(ctx context.Context, actor *service.Claims, ref string, meta service.RequestMeta) error {
	args := m.Called(ctx, actor, ref, meta)
	return args.Error(0)
}

func (m *MockReportService) ApproveDeletion(ctx context.Context, actor *service.Claims, ref string, meta service.RequestMeta) error {
	args := m.Called(ctx, actor, ref, meta)
	return args.Error(0)
}

func (m *MockReportService) RejectDeletion(ctx context.Context, actor *service.Claims, ref string, meta service.RequestMeta) (*domain.Report, error) {
	args := m.Called(ctx, actor, ref, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
