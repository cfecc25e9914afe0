package service

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

// UploadItem is one file in an upload batch.
type UploadItem struct {
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// DownloadResult couples the metadata with an open stream. The caller
// owns Body and must close it.
type DownloadResult struct {
	Meta *domain.FileMeta
	Body io.ReadCloser
}

// FileService handles upload validation, storage, metadata, and downloads.
type FileService interface {
	// Upload validates and stores a batch of files for a report or bill.
	// Limits: at most 5 files, 10MB each, MIME allow-list.
	Upload(ctx context.Context, actor *Claims, ownerType domain.FileOwnerType, ownerID uuid.UUID, items []UploadItem, meta RequestMeta) ([]domain.FileMeta, error)
	Get(ctx context.Context, fileID string) (*domain.FileMeta, error)
	ListByOwner(ctx context.Context, ownerType domain.FileOwnerType, ownerID uuid.UUID) ([]domain.FileMeta, error)
	// Download opens the stored bytes and bumps the download counter.
	Download(ctx context.Context, actor *Claims, fileID string, meta RequestMeta) (*DownloadResult, error)
	Delete(ctx context.Context, actor *Claims, fileID string, meta RequestMeta) error
}

type fileService struct {
	fileRepo port.FileMetaRepository
	storage  port.FileStorage
	audit    AuditService
}

// NewFileService creates a new FileService implementation.
func NewFileService(fileRepo port.FileMetaRepository, storage port.FileStorage, audit AuditService) FileService {
	return &fileService{
		fileRepo: fileRepo,
		storage:  storage,
		audit:    audit,
	}
}

func (s *fileService) Upload(ctx context.Context, actor *Claims, ownerType domain.FileOwnerType, ownerID uuid.UUID, items []UploadItem, meta RequestMeta) ([]domain.FileMeta, error) {
	if len(items) == 0 {
		return nil, domain.ErrUnsupportedFileType
	}
	if len(items) > domain.MaxFilesPerUpload {
		return nil, domain.ErrTooManyFiles
	}
	// Validate the whole batch before storing anything.
	for i := range items {
		if !domain.AllowedMimeTypes[items[i].MimeType] {
			return nil, domain.ErrUnsupportedFileType
		}
		if items[i].Size > domain.MaxFileSizeBytes {
			return nil, domain.ErrFileTooLarge
		}
	}

	var saved []domain.FileMeta
	for i := range items {
		item := &items[i]
		storedName := domain.NewStoredFileName(item.OriginalName)

		storagePath, err := s.storage.Save(ctx, storedName, item.Body, item.Size, item.MimeType)
		if err != nil {
			return nil, domain.ErrUploadFailed
		}

		fm := domain.FileMeta{
			OwnerType:    ownerType,
			OwnerID:      ownerID,
			FileName:     storedName,
			OriginalName: item.OriginalName,
			MimeType:     item.MimeType,
			FileSize:     item.Size,
			StoragePath:  storagePath,
			UploadedBy:   actor.UserID,
		}
		if err := s.fileRepo.Create(ctx, &fm); err != nil {
			// Metadata failed after the bytes landed; clean up the object.
			if derr := s.storage.Delete(ctx, storagePath); derr != nil {
				log.Printf("file.Upload: orphan cleanup of %s: %v", storagePath, derr)
			}
			return nil, err
		}
		saved = append(saved, fm)

		var reportID *uuid.UUID
		if ownerType == domain.FileOwnerReport {
			reportID = &ownerID
		}
		s.audit.Record(ctx, domain.AuditUploadFile, actor.UserID, reportID, &fm.ID, meta)
	}
	return saved, nil
}

func (s *fileService) Get(ctx context.Context, fileID string) (*domain.FileMeta, error) {
	if id, err := uuid.Parse(fileID); err == nil {
		return s.fileRepo.GetByID(ctx, id)
	}
	return s.fileRepo.GetByFileID(ctx, fileID)
}

func (s *fileService) ListByOwner(ctx context.Context, ownerType domain.FileOwnerType, ownerID uuid.UUID) ([]domain.FileMeta, error) {
	return s.fileRepo.ListByOwner(ctx, ownerType, ownerID)
}

func (s *fileService) Download(ctx context.Context, actor *Claims, fileID string, meta RequestMeta) (*DownloadResult, error) {
	fm, err := s.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}

	body, err := s.storage.Open(ctx, fm.StoragePath)
	if err != nil {
		return nil, err
	}

	if err := s.fileRepo.IncrementDownloadCount(ctx, fm.ID); err != nil {
		log.Printf("file.Download: counting download of %s: %v", fm.FileID, err)
	} else {
		fm.DownloadCount++
	}

	var reportID *uuid.UUID
	if fm.OwnerType == domain.FileOwnerReport {
		reportID = &fm.OwnerID
	}
	s.audit.Record(ctx, domain.AuditDownloadFile, actor.UserID, reportID, &fm.ID, meta)

	return &DownloadResult{Meta: fm, Body: body}, nil
}

func (s *fileService) Delete(ctx context.Context, actor *Claims, fileID string, meta RequestMeta) error {
	fm, err := s.Get(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, fm.StoragePath); err != nil {
		log.Printf("file.Delete: removing %s from storage: %v", fm.FileID, err)
	}
	if err := s.fileRepo.Delete(ctx, fm.ID); err != nil {
		return err
	}

	var reportID *uuid.UUID
	if fm.OwnerType == domain.FileOwnerReport {
		reportID = &fm.OwnerID
	}
	s.audit.Record(ctx, domain.AuditDeleteFile, actor.UserID, reportID, &fm.ID, meta)
	return nil
}
