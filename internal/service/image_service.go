// Package service contains domain services that sit between handlers and repositories.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"artcanvas/internal/config"
	"artcanvas/internal/models"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/artcanvas/uploads"
	DefaultImageMaxUploadSizeMB = 10
)

// UploadImageInput carries a single multipart image file through validation and upload.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService validates incoming image files and delegates storage to the
// configured external image host. Only the resulting URL is persisted by the
// caller. When no host is configured the file lands in a local directory,
// which is a development-only fallback.
type ImageService struct {
	hostURL            string
	hostKey            string
	uploadDir          string
	baseURL            string
	maxUploadSizeBytes int64
	httpClient         *http.Client
}

// NewImageService creates an ImageService from application configuration.
func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	var hostURL, hostKey, baseURL string

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
		hostURL = cfg.ImageHostURL
		hostKey = cfg.ImageHostKey
		baseURL = cfg.ImageBaseURL
	}

	return &ImageService{
		hostURL:            hostURL,
		hostKey:            hostKey,
		uploadDir:          uploadDir,
		baseURL:            strings.TrimRight(baseURL, "/"),
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		httpClient:         &http.Client{Timeout: 30 * time.Second},
	}
}

// ReadMultipartFile reads a multipart file header into an UploadImageInput.
func ReadMultipartFile(fh *multipart.FileHeader) (UploadImageInput, error) {
	f, err := fh.Open()
	if err != nil {
		return UploadImageInput{}, models.NewValidationError("Unable to read uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return UploadImageInput{}, models.NewValidationError("Unable to read uploaded file")
	}

	return UploadImageInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// Upload validates the image and stores it, returning the public URL.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	_, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	name := uuid.New().String() + extensionForFormat(format)

	if s.hostURL != "" {
		return s.uploadToHost(ctx, name, in)
	}
	return s.uploadToLocalDir(name, in)
}

// uploadToHost forwards the file to the external image host and returns the
// URL reported back by the host.
func (s *ImageService) uploadToHost(ctx context.Context, name string, in UploadImageInput) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if _, err := part.Write(in.Content); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := writer.Close(); err != nil {
		return "", models.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.hostURL, &body)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.hostKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.hostKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("image host upload failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", models.NewInternalError(fmt.Errorf("image host returned status %d", resp.StatusCode))
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.URL == "" {
		return "", models.NewInternalError(fmt.Errorf("image host returned an unusable response"))
	}
	return result.URL, nil
}

func (s *ImageService) uploadToLocalDir(name string, in UploadImageInput) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), in.Content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return s.baseURL + "/" + name, nil
}

func isAllowedImageMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

func extensionForFormat(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	}
	return ".img"
}
