package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

type fileMetaRepo struct {
	db *sqlx.DB
}

// NewFileMetaRepo creates a new PostgreSQL-backed FileMetaRepository.
func NewFileMetaRepo(db *sqlx.DB) port.FileMetaRepository {
	return &fileMetaRepo{db: db}
}

func (r *fileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	meta.ID = uuid.New()
	if meta.FileID == "" {
		meta.FileID = domain.NewEntityID("file")
	}
	meta.UploadedAt = time.Now().UTC()

	query := `INSERT INTO files (id, file_id, owner_type, owner_id, file_name, original_name,
		mime_type, file_size, storage_path, uploaded_by, is_public, download_count, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.FileID, meta.OwnerType, meta.OwnerID, meta.FileName,
		meta.OriginalName, meta.MimeType, meta.FileSize, meta.StoragePath,
		meta.UploadedBy, meta.IsPublic, meta.DownloadCount, meta.UploadedAt)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Create: %w", err)
	}
	return nil
}

func (r *fileMetaRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error) {
	var meta domain.FileMeta
	err := r.db.GetContext(ctx, &meta, "SELECT * FROM files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fileMetaRepo.GetByID: %w", err)
	}
	return &meta, nil
}

func (r *fileMetaRepo) GetByFileID(ctx context.Context, fileID string) (*domain.FileMeta, error) {
	var meta domain.FileMeta
	err := r.db.GetContext(ctx, &meta, "SELECT * FROM files WHERE file_id = $1", fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fileMetaRepo.GetByFileID: %w", err)
	}
	return &meta, nil
}

func (r *fileMetaRepo) ListByOwner(ctx context.Context, ownerType domain.FileOwnerType, ownerID uuid.UUID) ([]domain.FileMeta, error) {
	var metas []domain.FileMeta
	err := r.db.SelectContext(ctx, &metas,
		"SELECT * FROM files WHERE owner_type = $1 AND owner_id = $2 ORDER BY uploaded_at DESC",
		ownerType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fileMetaRepo.ListByOwner: %w", err)
	}
	return metas, nil
}

// IncrementDownloadCount relies on the database to serialize concurrent
// downloads; no read-modify-write in application code.
func (r *fileMetaRepo) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE files SET download_count = download_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.IncrementDownloadCount: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fileMetaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
