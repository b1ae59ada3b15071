package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"tourit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func makeFileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("imageFile", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["imageFile"][0]
}

func TestUploadPostImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success writes file then records URL", func(t *testing.T) {
		dir := t.TempDir()
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(42)).
			Return(&models.Post{ID: 42, UserID: ptrUint(7)}, nil)

		var recordedURL string
		postRepo.On("SetImageURL", mock.Anything, uint(42), mock.Anything).
			Run(func(args mock.Arguments) {
				recordedURL = args.Get(2).(string)
			}).Return(nil)

		svc := NewImageService(postRepo, dir)
		url, err := svc.UploadPostImage(ctx, 7, 42, makeFileHeader(t, "photo.png", tinyPNG(t)))
		require.NoError(t, err)
		assert.Equal(t, recordedURL, url)
		assert.Regexp(t, `^uploads/post_42/[0-9a-f-]{36}\.png$`, url)

		// The stored file exists under the per-post directory
		entries, err := os.ReadDir(filepath.Join(dir, "post_42"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(42)).
			Return(&models.Post{ID: 42, UserID: ptrUint(7)}, nil)
		svc := NewImageService(postRepo, t.TempDir())

		_, err := svc.UploadPostImage(ctx, 8, 42, makeFileHeader(t, "photo.png", tinyPNG(t)))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		postRepo.AssertNotCalled(t, "SetImageURL")
	})

	t.Run("Disallowed extension", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(42)).
			Return(&models.Post{ID: 42, UserID: ptrUint(7)}, nil)
		svc := NewImageService(postRepo, t.TempDir())

		_, err := svc.UploadPostImage(ctx, 7, 42, makeFileHeader(t, "notes.txt", []byte("hello")))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("Image extension with non-image content", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(42)).
			Return(&models.Post{ID: 42, UserID: ptrUint(7)}, nil)
		svc := NewImageService(postRepo, t.TempDir())

		_, err := svc.UploadPostImage(ctx, 7, 42, makeFileHeader(t, "fake.png", []byte("definitely not a png")))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		postRepo.AssertNotCalled(t, "SetImageURL")
	})

	t.Run("Oversized upload rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(42)).
			Return(&models.Post{ID: 42, UserID: ptrUint(7)}, nil)
		svc := NewImageService(postRepo, t.TempDir())

		big := make([]byte, maxImageSize+1)
		_, err := svc.UploadPostImage(ctx, 7, 42, makeFileHeader(t, "big.jpg", big))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestRemovePostFiles(t *testing.T) {
	dir := t.TempDir()
	postDir := filepath.Join(dir, fmt.Sprintf("post_%d", 42))
	require.NoError(t, os.MkdirAll(postDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(postDir, "img.png"), []byte("x"), 0o644))

	svc := NewImageService(new(MockPostRepository), dir)
	require.NoError(t, svc.RemovePostFiles(42))

	_, err := os.Stat(postDir)
	assert.True(t, os.IsNotExist(err))
}
