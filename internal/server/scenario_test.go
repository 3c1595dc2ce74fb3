package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"artcanvas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullUserJourney walks the happy path end to end: register, login with
// the issued cookie, upload a painting, like it, then unlike it, checking
// visible state after every step.
func TestFullUserJourney(t *testing.T) {
	app, _, db := newTestApp(t)

	// Register
	registerReq := jsonRequest(t, http.MethodPost, "/api/v1/user/register", map[string]string{
		"username": "journey",
		"email":    "journey@example.com",
		"password": "Password123!",
	})
	resp, err := app.Test(registerReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Login and capture the session cookie
	loginReq := jsonRequest(t, http.MethodGet, "/api/v1/user/login", map[string]string{
		"email":    "journey@example.com",
		"password": "Password123!",
	})
	resp, err = app.Test(loginReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == tokenCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	_ = resp.Body.Close()

	// Upload a painting
	body, contentType := multipartBody(t, map[string]string{
		"title":       "Journey",
		"description": "One painting to rule the flow",
		"categories":  "abstract",
	}, "image", "journey.png", pngBytes(t))
	uploadReq := httptest.NewRequest(http.MethodPost, "/api/v1/painting/create-painting", body)
	uploadReq.Header.Set("Content-Type", contentType)
	uploadReq.AddCookie(session)
	resp, err = app.Test(uploadReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	var painting models.Painting
	require.NoError(t, db.Where("title = ?", "Journey").First(&painting).Error)

	// Like
	likeReq := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/painting/%d", painting.ID), nil)
	likeReq.AddCookie(session)
	resp, err = app.Test(likeReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	got := decodePainting(t, env.Data)
	assert.True(t, got.Liked)
	assert.Equal(t, 1, got.LikesCount)

	// Unlike restores the original state
	unlikeReq := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/painting/%d", painting.ID), nil)
	unlikeReq.AddCookie(session)
	resp, err = app.Test(unlikeReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	got = decodePainting(t, env.Data)
	assert.False(t, got.Liked)
	assert.Equal(t, 0, got.LikesCount)
}

func decodePainting(t *testing.T, data any) models.Painting {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var painting models.Painting
	require.NoError(t, json.Unmarshal(raw, &painting))
	return painting
}

func TestHealthCheck(t *testing.T) {
	app, _, db := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
		} `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)

	// Closing the database makes the ping fail and the report degrade
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks.Database)
}
