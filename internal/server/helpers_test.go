package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"artcanvas/internal/config"
	"artcanvas/internal/database"
	"artcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:            "test-secret",
		Port:                 "0",
		Env:                  "test",
		ImageUploadDir:       t.TempDir(),
		ImageBaseURL:         "http://localhost:8240/uploads",
		ImageMaxUploadSizeMB: 10,
	}
}

// newTestApp wires a full application against an in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	s := NewServerWithDB(testConfig(t), db, nil)
	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Avatar:   models.DefaultAvatarURL,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPainting(t *testing.T, db *gorm.DB, artistID uint, title string) *models.Painting {
	t.Helper()
	painting := &models.Painting{
		Title:       title,
		Description: "a test painting",
		Categories:  "abstract",
		ImageURL:    "https://img.example.com/" + title + ".png",
		ArtistID:    artistID,
	}
	require.NoError(t, db.Create(painting).Error)
	return painting
}

// authCookie mints a session token for the given user and returns it as a
// cookie ready to attach to a request.
func authCookie(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: tokenCookieName, Value: token}
}

func decodeEnvelope(t *testing.T, resp *http.Response) models.ApiResponse {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env models.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func decodeErrorEnvelope(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// pngBytes produces a small valid PNG for upload tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody builds a multipart form with the given fields and an
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
