package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/google/uuid"
)

// maxUploadSize caps accepted files at 10 MiB.
const maxUploadSize = 10 << 20

// UploadService stores file bytes on local disk and a metadata document in
// the uploads collection.
type UploadService struct {
	repo domain.UploadRepository
	dir  string
}

func NewUploadService(repo domain.UploadRepository, dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{repo: repo, dir: dir}, nil
}

func (s *UploadService) Store(ctx context.Context, uploader *domain.User, fileName, contentType string, size int64, r io.Reader) (*domain.Upload, error) {
	if size > maxUploadSize {
		return nil, serrors.NewInvalidRequest("file too large")
	}

	id := uuid.NewString()
	storedPath := filepath.Join(s.dir, id+filepath.Ext(fileName))

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, serrors.NewStorageError("create upload file", err)
	}
	written, err := io.Copy(dst, io.LimitReader(r, maxUploadSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, serrors.NewStorageError("write upload file", err)
	}
	if written > maxUploadSize {
		_ = os.Remove(storedPath)
		return nil, serrors.NewInvalidRequest("file too large")
	}

	u := &domain.Upload{
		ID:          id,
		FileName:    filepath.Base(fileName),
		StoredPath:  storedPath,
		ContentType: contentType,
		Size:        written,
		UploaderID:  uploader.ID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}
	return u, nil
}

func (s *UploadService) Get(ctx context.Context, id string) (*domain.Upload, error) {
	return s.repo.GetByID(ctx, id)
}

// Open returns a reader over the stored bytes. Caller closes it.
func (s *UploadService) Open(ctx context.Context, id string) (*domain.Upload, io.ReadCloser, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(u.StoredPath)
	if err != nil {
		return nil, nil, serrors.NewStorageError("open upload file", err)
	}
	return u, f, nil
}
