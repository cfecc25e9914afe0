package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/service"
	"billdesk/mocks"
)

func TestAuditService_Record_WritesEntry(t *testing.T) {
	repo := new(mocks.MockAuditLogRepo)
	svc := service.NewAuditService(repo)

	actor := uuid.New()
	reportID := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.AuditLog) bool {
		return e.Action == domain.AuditApproveReport &&
			e.PerformedBy == actor &&
			e.ReportID != nil && *e.ReportID == reportID &&
			e.IPAddress == "10.0.0.7"
	})).Return(nil)

	svc.Record(context.Background(), domain.AuditApproveReport, actor, &reportID, nil, service.RequestMeta{
		IPAddress: "10.0.0.7",
		UserAgent: "curl/8.5.0",
		Method:    "PUT",
		URL:       "/api/reports/abc/approve",
	})

	repo.AssertExpectations(t)
}

func TestAuditService_Record_SwallowsRepoFailure(t *testing.T) {
	repo := new(mocks.MockAuditLogRepo)
	svc := service.NewAuditService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	// Must not panic or propagate; auditing never fails the operation.
	svc.Record(context.Background(), domain.AuditCreateReport, uuid.New(), nil, nil, service.RequestMeta{})

	repo.AssertExpectations(t)
}

func TestAuditService_Get_ResolvesPublicID(t *testing.T) {
	repo := new(mocks.MockAuditLogRepo)
	svc := service.NewAuditService(repo)

	entry := &domain.AuditLog{LogID: "log_1741617000000_abc123def"}
	repo.On("GetByLogID", mock.Anything, entry.LogID).Return(entry, nil)

	got, err := svc.Get(context.Background(), entry.LogID)

	assert.NoError(t, err)
	assert.Equal(t, entry.LogID, got.LogID)
}

func TestAuditService_Export_IgnoresPagination(t *testing.T) {
	repo := new(mocks.MockAuditLogRepo)
	svc := service.NewAuditService(repo)

	filters := domain.AuditFilters{Action: domain.AuditDownloadFile}
	repo.On("ListForExport", mock.Anything, filters).
		Return([]domain.AuditLog{{}, {}, {}}, nil)

	entries, err := svc.Export(context.Background(), filters)

	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}
