package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tourit/internal/models"
	"tourit/internal/repository"

	"github.com/google/uuid"

	// webp decode support for upload validation
	_ "golang.org/x/image/webp"
)

const maxImageSize = 5 * 1024 * 1024 // 5 MB

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// ImageService stores post images on local disk under a per-post directory
// with server-generated filenames, and records the resulting relative URL
// on the post.
type ImageService struct {
	postRepo  repository.PostRepository
	uploadDir string
}

// NewImageService creates a new ImageService rooted at uploadDir.
func NewImageService(postRepo repository.PostRepository, uploadDir string) *ImageService {
	return &ImageService{postRepo: postRepo, uploadDir: uploadDir}
}

// UploadPostImage validates and stores an uploaded image for the caller's
// post, then updates the post's image URL.
//
// The file write commits before the DB update. A crash between the two
// orphans a file on disk but never leaves a dangling image URL.
func (s *ImageService) UploadPostImage(ctx context.Context, userID, postID uint, fileHeader *multipart.FileHeader) (string, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if post.UserID == nil || *post.UserID != userID {
		return "", models.NewForbiddenError("You can only upload images to your own posts")
	}

	if fileHeader == nil || fileHeader.Size == 0 {
		return "", models.NewValidationError("imageFile is required")
	}
	if fileHeader.Size > maxImageSize {
		return "", models.NewValidationError("image must not exceed 5 MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", models.NewValidationError("image must be jpg, jpeg, png or webp")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(data) > maxImageSize {
		return "", models.NewValidationError("image must not exceed 5 MB")
	}

	// Sniff content and decode to reject files that merely carry an image
	// extension.
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", models.NewValidationError("file content is not an image")
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", models.NewValidationError("file content is not a valid image")
	}

	dir := filepath.Join(s.uploadDir, fmt.Sprintf("post_%d", postID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	imageURL := fmt.Sprintf("uploads/post_%d/%s", postID, filename)
	if err := s.postRepo.SetImageURL(ctx, postID, imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

// RemovePostFiles deletes the post's image directory. Best-effort; callers
// invoke this after a redaction commits.
func (s *ImageService) RemovePostFiles(postID uint) error {
	return os.RemoveAll(filepath.Join(s.uploadDir, fmt.Sprintf("post_%d", postID)))
}
