package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"artcanvas/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func localService(t *testing.T) (*ImageService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewImageService(&config.Config{
		ImageUploadDir:       dir,
		ImageBaseURL:         "http://localhost:8240/uploads",
		ImageMaxUploadSizeMB: 1,
	})
	return svc, dir
}

func TestUpload_Validation(t *testing.T) {
	svc, _ := localService(t)
	ctx := context.Background()

	t.Run("Empty content", func(t *testing.T) {
		_, err := svc.Upload(ctx, UploadImageInput{Filename: "empty.png"})
		assert.Error(t, err)
	})

	t.Run("Oversized content", func(t *testing.T) {
		big := make([]byte, 2*1024*1024)
		_, err := svc.Upload(ctx, UploadImageInput{Filename: "big.png", Content: big})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("Non-image MIME", func(t *testing.T) {
		_, err := svc.Upload(ctx, UploadImageInput{
			Filename: "notes.txt",
			Content:  []byte("plain text pretending to be art"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid image type")
	})

	t.Run("Corrupt image body", func(t *testing.T) {
		// Valid PNG magic bytes followed by garbage
		content := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...)
		_, err := svc.Upload(ctx, UploadImageInput{Filename: "broken.png", Content: content})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid image file")
	})
}

func TestUpload_LocalDir(t *testing.T) {
	svc, dir := localService(t)

	url, err := svc.Upload(context.Background(), UploadImageInput{
		Filename: "tiny.png",
		Content:  testPNG(t),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8240/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".png"))
}

func TestUpload_ExternalHost(t *testing.T) {
	var gotAuth string
	var gotField bool
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if _, _, err := r.FormFile("image"); err == nil {
			gotField = true
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/abc.png"}`))
	}))
	defer host.Close()

	svc := NewImageService(&config.Config{
		ImageHostURL:         host.URL,
		ImageHostKey:         "host-key",
		ImageMaxUploadSizeMB: 1,
	})

	url, err := svc.Upload(context.Background(), UploadImageInput{
		Filename: "hosted.png",
		Content:  testPNG(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/abc.png", url)
	assert.Equal(t, "Bearer host-key", gotAuth)
	assert.True(t, gotField, "file must be sent in the image form field")
}

func TestUpload_ExternalHostFailure(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer host.Close()

	svc := NewImageService(&config.Config{
		ImageHostURL:         host.URL,
		ImageMaxUploadSizeMB: 1,
	})

	_, err := svc.Upload(context.Background(), UploadImageInput{
		Filename: "hosted.png",
		Content:  testPNG(t),
	})
	assert.Error(t, err)
}
