package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/service"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, actor *service.Claims, ownerType domain.FileOwnerType, ownerID uuid.UUID, items []service.UploadItem, meta service.RequestMeta) ([]domain.FileMeta, error) {
	args := m.Called(ctx, actor, ownerType, ownerID, items, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileMeta), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, fileID string) (*domain.FileMeta, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileMeta), args.Error(1)
}

func (m *MockFileService) ListByOwner(ctx context.Context, ownerType domain.FileOwnerType, ownerID uuid.UUID) ([]domain.FileMeta, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileMeta), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, actor *service.Claims, fileID string, meta service.RequestMeta) (*service.DownloadResult, error) {
	args := m.Called(ctx, actor, fileID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadResult), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, actor *service.Claims, fileID string, meta service.RequestMeta) error {
	args := m.Called(ctx, actor, fileID, meta)
	return args.Error(0)
}
