package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billdesk/internal/domain"
	"billdesk/internal/service"
	"billdesk/mocks"
)

type fileFixture struct {
	fileRepo *mocks.MockFileMetaRepo
	storage  *mocks.MockFileStorage
	audit    *mocks.MockAuditService
	svc      service.FileService
}

func newFileFixture() *fileFixture {
	f := &fileFixture{
		fileRepo: new(mocks.MockFileMetaRepo),
		storage:  new(mocks.MockFileStorage),
		audit:    new(mocks.MockAuditService),
	}
	f.svc = service.NewFileService(f.fileRepo, f.storage, f.audit)
	f.audit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	return f
}

func pdfItem(name string, size int64) service.UploadItem {
	return service.UploadItem{
		OriginalName: name,
		MimeType:     "application/pdf",
		Size:         size,
		Body:         strings.NewReader("pdf bytes"),
	}
}

func TestFileService_Upload_Success(t *testing.T) {
	f := newFileFixture()
	actor := managerClaims()
	ownerID := uuid.New()

	f.storage.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(1024), "application/pdf").
		Return("uploads/stored.pdf", nil)
	f.fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)

	saved, err := f.svc.Upload(context.Background(), actor, domain.FileOwnerReport, ownerID, []service.UploadItem{
		pdfItem("invoice.pdf", 1024),
	}, service.RequestMeta{})

	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "invoice.pdf", saved[0].OriginalName)
	assert.Equal(t, "uploads/stored.pdf", saved[0].StoragePath)
	assert.Equal(t, ownerID, saved[0].OwnerID)
	assert.Equal(t, actor.UserID, saved[0].UploadedBy)
	// Stored name embeds the original name with a unique prefix.
	assert.Contains(t, saved[0].FileName, "invoice.pdf")
	assert.NotEqual(t, "invoice.pdf", saved[0].FileName)
}

func TestFileService_Upload_RejectsUnsupportedType(t *testing.T) {
	f := newFileFixture()

	_, err := f.svc.Upload(context.Background(), managerClaims(), domain.FileOwnerReport, uuid.New(), []service.UploadItem{
		{OriginalName: "payload.exe", MimeType: "application/x-msdownload", Size: 100, Body: strings.NewReader("x")},
	}, service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Upload_RejectsOversizeFile(t *testing.T) {
	f := newFileFixture()

	_, err := f.svc.Upload(context.Background(), managerClaims(), domain.FileOwnerReport, uuid.New(), []service.UploadItem{
		pdfItem("huge.pdf", domain.MaxFileSizeBytes+1),
	}, service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFileService_Upload_RejectsTooManyFiles(t *testing.T) {
	f := newFileFixture()

	items := make([]service.UploadItem, domain.MaxFilesPerUpload+1)
	for i := range items {
		items[i] = pdfItem("doc.pdf", 100)
	}

	_, err := f.svc.Upload(context.Background(), managerClaims(), domain.FileOwnerReport, uuid.New(), items, service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrTooManyFiles)
}

func TestFileService_Upload_ValidatesBatchBeforeStoring(t *testing.T) {
	f := newFileFixture()

	// Second item is invalid; nothing at all should be stored.
	_, err := f.svc.Upload(context.Background(), managerClaims(), domain.FileOwnerReport, uuid.New(), []service.UploadItem{
		pdfItem("good.pdf", 100),
		{OriginalName: "bad.bin", MimeType: "application/octet-stream", Size: 100, Body: strings.NewReader("x")},
	}, service.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Upload_CleansUpOrphanOnMetadataFailure(t *testing.T) {
	f := newFileFixture()

	f.storage.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("uploads/orphan.pdf", nil)
	f.fileRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	f.storage.On("Delete", mock.Anything, "uploads/orphan.pdf").Return(nil)

	_, err := f.svc.Upload(context.Background(), managerClaims(), domain.FileOwnerReport, uuid.New(), []service.UploadItem{
		pdfItem("doc.pdf", 100),
	}, service.RequestMeta{})

	assert.Error(t, err)
	f.storage.AssertCalled(t, "Delete", mock.Anything, "uploads/orphan.pdf")
}

func TestFileService_Download_RoundTripAndCount(t *testing.T) {
	f := newFileFixture()
	actor := userClaims()
	content := []byte("original file bytes")
	meta := &domain.FileMeta{
		ID:            uuid.New(),
		FileID:        "file_1741617000000_abc123def",
		OwnerType:     domain.FileOwnerReport,
		OwnerID:       uuid.New(),
		OriginalName:  "invoice.pdf",
		StoragePath:   "uploads/stored.pdf",
		DownloadCount: 3,
	}

	f.fileRepo.On("GetByID", mock.Anything, meta.ID).Return(meta, nil)
	f.storage.On("Open", mock.Anything, "uploads/stored.pdf").
		Return(io.NopCloser(bytes.NewReader(content)), nil)
	f.fileRepo.On("IncrementDownloadCount", mock.Anything, meta.ID).Return(nil)

	result, err := f.svc.Download(context.Background(), actor, meta.ID.String(), service.RequestMeta{})

	require.NoError(t, err)
	defer result.Body.Close()

	got, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, int64(4), result.Meta.DownloadCount)
}

func TestFileService_Download_CountFailureDoesNotBlock(t *testing.T) {
	f := newFileFixture()
	meta := &domain.FileMeta{
		ID:            uuid.New(),
		StoragePath:   "uploads/stored.pdf",
		DownloadCount: 1,
	}

	f.fileRepo.On("GetByID", mock.Anything, meta.ID).Return(meta, nil)
	f.storage.On("Open", mock.Anything, "uploads/stored.pdf").
		Return(io.NopCloser(strings.NewReader("x")), nil)
	f.fileRepo.On("IncrementDownloadCount", mock.Anything, meta.ID).Return(assert.AnError)

	result, err := f.svc.Download(context.Background(), userClaims(), meta.ID.String(), service.RequestMeta{})

	require.NoError(t, err)
	result.Body.Close()
	assert.Equal(t, int64(1), result.Meta.DownloadCount)
}

func TestFileService_Delete_RemovesBytesAndMetadata(t *testing.T) {
	f := newFileFixture()
	meta := &domain.FileMeta{ID: uuid.New(), StoragePath: "uploads/old.pdf"}

	f.fileRepo.On("GetByID", mock.Anything, meta.ID).Return(meta, nil)
	f.storage.On("Delete", mock.Anything, "uploads/old.pdf").Return(nil)
	f.fileRepo.On("Delete", mock.Anything, meta.ID).Return(nil)

	err := f.svc.Delete(context.Background(), adminClaims(), meta.ID.String(), service.RequestMeta{})

	assert.NoError(t, err)
	f.fileRepo.AssertExpectations(t)
}

func TestFileService_Get_ResolvesPublicID(t *testing.T) {
	f := newFileFixture()
	meta := &domain.FileMeta{ID: uuid.New(), FileID: "file_1741617000000_zzz999aaa"}

	f.fileRepo.On("GetByFileID", mock.Anything, meta.FileID).Return(meta, nil)

	got, err := f.svc.Get(context.Background(), meta.FileID)

	assert.NoError(t, err)
	assert.Equal(t, meta.ID, got.ID)
}
