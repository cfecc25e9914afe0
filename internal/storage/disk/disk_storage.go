package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"billdesk/internal/domain"
	"billdesk/internal/port"
)

type diskStorage struct {
	dir string
}

// NewDiskStorage creates a FileStorage rooted at dir, creating the
// directory if needed. All files live flat under dir; storage paths are
// the bare file names.
func NewDiskStorage(dir string) (port.FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &diskStorage{dir: dir}, nil
}

func (s *diskStorage) Save(_ context.Context, fileName string, body io.Reader, size int64, _ string) (string, error) {
	name := filepath.Base(fileName)
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("writing file: %w", err)
	}
	if size > 0 && written != size {
		os.Remove(dst)
		return "", fmt.Errorf("short write: expected %d bytes, wrote %d", size, written)
	}
	return name, nil
}

func (s *diskStorage) Open(_ context.Context, storagePath string) (io.ReadCloser, error) {
	// Storage paths are flat names; reject anything trying to climb out.
	if strings.Contains(storagePath, "..") {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(storagePath)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("opening file: %w", err)
	}
	return f, nil
}

func (s *diskStorage) Delete(_ context.Context, storagePath string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storagePath)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}
