package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/service"
	"billdesk/mocks"
)

type reportFixture struct {
	reportRepo *mocks.MockReportRepo
	userRepo   *mocks.MockUserRepo
	fileRepo   *mocks.MockFileMetaRepo
	storage    *mocks.MockFileStorage
	email      *mocks.MockEmailSender
	audit      *mocks.MockAuditService
	svc        service.ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		reportRepo: new(mocks.MockReportRepo),
		userRepo:   new(mocks.MockUserRepo),
		fileRepo:   new(mocks.MockFileMetaRepo),
		storage:    new(mocks.MockFileStorage),
		email:      new(mocks.MockEmailSender),
		audit:      new(mocks.MockAuditService),
	}
	f.svc = service.NewReportService(f.reportRepo, f.userRepo, f.fileRepo, f.storage, f.email, f.audit)
	f.audit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	// Notification runs on a background goroutine; tolerate it firing or not.
	f.userRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.User{}, nil).Maybe()
	return f
}

func managerClaims() *service.Claims {
	return &service.Claims{UserID: uuid.New(), Email: "mgr@test.com", Role: domain.RoleOperationsManager}
}

func adminClaims() *service.Claims {
	return &service.Claims{UserID: uuid.New(), Email: "admin@test.com", Role: domain.RoleAdmin}
}

func userClaims() *service.Claims {
	return &service.Claims{UserID: uuid.New(), Email: "user@test.com", Role: domain.RoleUser}
}

func TestReportService_Create_ManagerStartsPending(t *testing.T) {
	f := newReportFixture()
	f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

	report, err := f.svc.Create(context.Background(), managerClaims(), service.CreateReportInput{
		Title:    "Q1 expenses",
		Category: domain.CategoryRent,
	}, service.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, report.ApprovalStatus)
	assert.Nil(t, report.ApprovedBy)
	assert.Nil(t, report.ApprovedAt)
	assert.Equal(t, domain.DeletionNone, report.DeletionState)
	assert.Equal(t, domain.PriorityMedium, report.Priority)
}

func TestReportService_Create_AdminAutoApproved(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

	report, err := f.svc.Create(context.Background(), actor, service.CreateReportInput{
		Title:    "Audit summary",
		Category: domain.CategoryInternet,
	}, service.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, report.ApprovalStatus)
	assert.NotNil(t, report.ApprovedBy)
	assert.Equal(t, actor.UserID, *report.ApprovedBy)
	assert.NotNil(t, report.ApprovedAt)
}

func TestReportService_Create_DefaultsAssignedToCreator(t *testing.T) {
	f := newReportFixture()
	actor := managerClaims()
	f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

	report, err := f.svc.Create(context.Background(), actor, service.CreateReportInput{
		Title:    "Unassigned",
		Category: domain.CategoryElectricity,
	}, service.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, domain.UUIDList{actor.UserID}, report.AssignedUsers)
}

func TestReportService_Create_InvalidCategory(t *testing.T) {
	f := newReportFixture()

	_, err := f.svc.Create(context.Background(), managerClaims(), service.CreateReportInput{
		Title:    "Bad",
		Category: "snacks",
	}, service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestReportService_Approve_NotPendingPropagates(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	report := &domain.Report{ID: uuid.New(), ApprovalStatus: domain.ApprovalApproved}

	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	f.reportRepo.On("Approve", mock.Anything, report.ID, actor.UserID).Return(domain.ErrNotPending)

	_, err := f.svc.Approve(context.Background(), actor, report.ID.String(), service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrNotPending)
}

func TestReportService_Get_UserCannotSeePendingReport(t *testing.T) {
	f := newReportFixture()
	actor := userClaims()
	report := &domain.Report{
		ID:             uuid.New(),
		ApprovalStatus: domain.ApprovalPending,
		CreatedBy:      actor.UserID,
		DeletionState:  domain.DeletionNone,
	}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	_, err := f.svc.Get(context.Background(), actor, report.ID.String())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReportService_Get_UserCannotSeeDeletionRequestedReport(t *testing.T) {
	f := newReportFixture()
	actor := userClaims()
	report := &domain.Report{
		ID:             uuid.New(),
		ApprovalStatus: domain.ApprovalApproved,
		CreatedBy:      actor.UserID,
		DeletionState:  domain.DeletionRequested,
	}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	_, err := f.svc.Get(context.Background(), actor, report.ID.String())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReportService_Get_AssignedUserSeesApprovedReport(t *testing.T) {
	f := newReportFixture()
	actor := userClaims()
	report := &domain.Report{
		ID:             uuid.New(),
		ApprovalStatus: domain.ApprovalApproved,
		CreatedBy:      uuid.New(),
		AssignedUsers:  domain.UUIDList{actor.UserID},
		DeletionState:  domain.DeletionNone,
	}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	got, err := f.svc.Get(context.Background(), actor, report.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestReportService_Get_ResolvesPublicID(t *testing.T) {
	f := newReportFixture()
	report := &domain.Report{
		ID:       uuid.New(),
		ReportID: "report_1741617000000_abc123def",
	}
	f.reportRepo.On("GetByReportID", mock.Anything, report.ReportID).Return(report, nil)

	got, err := f.svc.Get(context.Background(), adminClaims(), report.ReportID)

	assert.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestReportService_RequestDeletion_OnlyCreatorOrAdmin(t *testing.T) {
	f := newReportFixture()
	actor := managerClaims()
	report := &domain.Report{ID: uuid.New(), CreatedBy: uuid.New()}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	err := f.svc.RequestDeletion(context.Background(), actor, report.ID.String(), service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.reportRepo.AssertNotCalled(t, "RequestDeletion", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_RequestDeletion_AlreadyRequestedPropagates(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	report := &domain.Report{ID: uuid.New(), CreatedBy: actor.UserID}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	f.reportRepo.On("RequestDeletion", mock.Anything, report.ID, actor.UserID).Return(domain.ErrDeletionRequested)

	err := f.svc.RequestDeletion(context.Background(), actor, report.ID.String(), service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrDeletionRequested)
}

func TestReportService_ApproveDeletion_RemovesFilesThenRecord(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	report := &domain.Report{
		ID:            uuid.New(),
		DeletionState: domain.DeletionRequested,
	}
	files := []domain.FileMeta{
		{ID: uuid.New(), StoragePath: "uploads/a.pdf"},
		{ID: uuid.New(), StoragePath: "uploads/b.pdf"},
	}

	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	f.fileRepo.On("ListByOwner", mock.Anything, domain.FileOwnerReport, report.ID).Return(files, nil)
	f.storage.On("Delete", mock.Anything, "uploads/a.pdf").Return(nil)
	f.storage.On("Delete", mock.Anything, "uploads/b.pdf").Return(nil)
	f.fileRepo.On("Delete", mock.Anything, files[0].ID).Return(nil)
	f.fileRepo.On("Delete", mock.Anything, files[1].ID).Return(nil)
	f.reportRepo.On("Delete", mock.Anything, report.ID).Return(nil)

	err := f.svc.ApproveDeletion(context.Background(), actor, report.ID.String(), service.RequestMeta{})

	assert.NoError(t, err)
	f.storage.AssertExpectations(t)
	f.fileRepo.AssertExpectations(t)
	f.reportRepo.AssertExpectations(t)
}

func TestReportService_ApproveDeletion_WithoutOpenRequest(t *testing.T) {
	f := newReportFixture()
	report := &domain.Report{ID: uuid.New(), DeletionState: domain.DeletionNone}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	err := f.svc.ApproveDeletion(context.Background(), adminClaims(), report.ID.String(), service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrNoDeletionRequest)
	f.reportRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReportService_RejectDeletion_RestoresReport(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	id := uuid.New()
	requested := &domain.Report{ID: id, DeletionState: domain.DeletionRequested}
	restored := &domain.Report{
		ID:             id,
		DeletionState:  domain.DeletionNone,
		ApprovalStatus: domain.ApprovalApproved,
	}

	f.reportRepo.On("GetByID", mock.Anything, id).Return(requested, nil).Once()
	f.reportRepo.On("RejectDeletion", mock.Anything, id).Return(nil)
	f.reportRepo.On("GetByID", mock.Anything, id).Return(restored, nil).Once()

	got, err := f.svc.RejectDeletion(context.Background(), actor, id.String(), service.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, domain.DeletionNone, got.DeletionState)
	assert.Equal(t, domain.ApprovalApproved, got.ApprovalStatus)
}

func TestReportService_Update_NonCreatorManagerForbidden(t *testing.T) {
	f := newReportFixture()
	actor := managerClaims()
	report := &domain.Report{ID: uuid.New(), CreatedBy: uuid.New()}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	title := "renamed"
	_, err := f.svc.Update(context.Background(), actor, report.ID.String(), service.UpdateReportInput{Title: &title}, service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReportService_Update_AppliesPartialFields(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	report := &domain.Report{
		ID:        uuid.New(),
		CreatedBy: uuid.New(),
		Title:     "old",
		Priority:  domain.PriorityLow,
		Status:    domain.StatusDraft,
	}
	f.reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	f.reportRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

	title := "new title"
	status := domain.StatusPending
	got, err := f.svc.Update(context.Background(), actor, report.ID.String(), service.UpdateReportInput{
		Title:  &title,
		Status: &status,
	}, service.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, domain.PriorityLow, got.Priority)
}

func TestReportService_ListMine_AppliesVisibilityFilter(t *testing.T) {
	f := newReportFixture()
	userID := uuid.New()

	f.reportRepo.On("List", mock.Anything, mock.MatchedBy(func(filters domain.ReportFilters) bool {
		return filters.VisibleToUser != nil && *filters.VisibleToUser == userID
	})).Return([]domain.Report{}, 0, nil)

	_, _, err := f.svc.ListMine(context.Background(), userID, 1, 10)

	assert.NoError(t, err)
	f.reportRepo.AssertExpectations(t)
}

func TestReportService_Approve_NotifiesAssignedUsers(t *testing.T) {
	f := newReportFixture()
	actor := adminClaims()
	assigned := uuid.New()
	id := uuid.New()
	report := &domain.Report{
		ID:             id,
		Title:          "Travel claims",
		ApprovalStatus: domain.ApprovalPending,
		AssignedUsers:  domain.UUIDList{assigned},
	}
	approvedAt := time.Now().UTC()
	approved := &domain.Report{
		ID:             id,
		ApprovalStatus: domain.ApprovalApproved,
		ApprovedBy:     &actor.UserID,
		ApprovedAt:     &approvedAt,
	}

	notified := make(chan string, 1)
	f.reportRepo.On("GetByID", mock.Anything, id).Return(report, nil).Once()
	f.reportRepo.On("Approve", mock.Anything, id, actor.UserID).Return(nil)
	f.reportRepo.On("GetByID", mock.Anything, id).Return(approved, nil).Once()
	f.userRepo.ExpectedCalls = nil
	f.userRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.User{
		{ID: assigned, Email: "assigned@test.com", Name: "Assignee"},
	}, nil)
	f.email.On("SendApprovalNotice", mock.Anything, "assigned@test.com", "Assignee", "Travel claims").
		Run(func(args mock.Arguments) { notified <- args.String(1) }).
		Return(nil)

	got, err := f.svc.Approve(context.Background(), actor, id.String(), service.RequestMeta{})

	assert.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, got.ApprovalStatus)

	select {
	case email := <-notified:
		assert.Equal(t, "assigned@test.com", email)
	case <-time.After(2 * time.Second):
		t.Fatal("expected approval notification")
	}
}
