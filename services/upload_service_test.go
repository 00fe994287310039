package services

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, u *domain.Upload) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}

func (m *MockUploadRepository) ListByUploader(ctx context.Context, uploaderID string) ([]*domain.Upload, error) {
	args := m.Called(ctx, uploaderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Upload), args.Error(1)
}

func TestUploadService_Store(t *testing.T) {
	ctx := context.Background()
	uploader := &domain.User{ID: "user-1", Role: domain.RoleCitizen}

	t.Run("writes bytes and metadata", func(t *testing.T) {
		repo := new(MockUploadRepository)
		svc, err := NewUploadService(repo, t.TempDir())
		require.NoError(t, err)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Upload")).Return(nil)

		content := "land title scan"
		u, err := svc.Store(ctx, uploader, "title.pdf", "application/pdf", int64(len(content)), strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "title.pdf", u.FileName)
		assert.EqualValues(t, len(content), u.Size)
		assert.Equal(t, uploader.ID, u.UploaderID)

		data, err := os.ReadFile(u.StoredPath)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("declared size over the cap is rejected", func(t *testing.T) {
		repo := new(MockUploadRepository)
		svc, err := NewUploadService(repo, t.TempDir())
		require.NoError(t, err)

		_, err = svc.Store(ctx, uploader, "huge.bin", "", maxUploadSize+1, strings.NewReader("x"))
		require.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("path traversal in the filename is neutralized", func(t *testing.T) {
		repo := new(MockUploadRepository)
		dir := t.TempDir()
		svc, err := NewUploadService(repo, dir)
		require.NoError(t, err)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Upload")).Return(nil)

		u, err := svc.Store(ctx, uploader, "../../etc/passwd", "", 4, strings.NewReader("oops"))
		require.NoError(t, err)
		assert.Equal(t, "passwd", u.FileName)
		assert.True(t, strings.HasPrefix(u.StoredPath, dir))
	})
}

func TestUploadService_Open(t *testing.T) {
	ctx := context.Background()
	uploader := &domain.User{ID: "user-1"}

	repo := new(MockUploadRepository)
	svc, err := NewUploadService(repo, t.TempDir())
	require.NoError(t, err)

	var stored *domain.Upload
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Upload")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Upload) }).Return(nil)

	_, err = svc.Store(ctx, uploader, "note.txt", "text/plain", 5, strings.NewReader("hello"))
	require.NoError(t, err)

	repo.On("GetByID", ctx, stored.ID).Return(stored, nil)

	u, rc, err := svc.Open(ctx, stored.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "note.txt", u.FileName)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
