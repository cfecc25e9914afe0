package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/service"
)

// MockBillService is a mock implementation of service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Create(ctx context.Context, actor *service.Claims, input service.CreateBillInput, meta service.RequestMeta) (*domain.Bill, error) {
	args := m.Called(ctx, actor, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Get(ctx context.Context, actor *service.Claims, ref string) (*domain.Bill, error) {
	args := m.Called(ctx, actor, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) List(ctx context.Context, filters domain.BillFilters) ([]domain.Bill, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillService) UpdateStatus(ctx context.Context, actor *service.Claims, ref string, input service.UpdateBillStatusInput, meta service.RequestMeta) (*domain.Bill, error) {
	args := m.Called(ctx, actor, ref, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Approve(ctx context.Context, actor *service.Claims, ref string, meta service.RequestMeta) (*domain.Bill, error) {
	args := m.Called(ctx, actor, ref, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Reject(ctx context.Context, actor *service.Claims, ref string, reason string, meta service.RequestMeta) (*domain.Bill, error) {
	args := m.Called(ctx, actor, ref, reason, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Delete(ctx context.Context, actor *service.Claims, ref string, meta service.RequestMeta) error {
	args := m.Called(ctx, actor, ref, meta)
	return args.Error(0)
}

func (m *MockBillService) Analytics(ctx context.Context, userID uuid.UUID) (*domain.BillAnalytics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillAnalytics), args.Error(1)
}
