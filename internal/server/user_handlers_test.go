package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"artcanvas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	app, s, db := newTestApp(t)
	user := createTestUser(t, db, "profiled", "profiled@example.com", "pw")
	artist := createTestUser(t, db, "artist", "artist@example.com", "pw")
	painting := createTestPainting(t, db, artist.ID, "Saved One")

	require.NoError(t, db.Create(&models.Board{Name: "Shelf", UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.SavedPainting{UserID: user.ID, PaintingID: painting.ID}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.AddCookie(authCookie(t, s, user.ID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var got models.User
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "profiled", got.Username)
	require.Len(t, got.Boards, 1)
	assert.Equal(t, "Shelf", got.Boards[0].Name)
	require.Len(t, got.SavedPaintings, 1)
	assert.Equal(t, "Saved One", got.SavedPaintings[0].Title)

	// Password must never leak through the profile endpoint
	body, err := json.Marshal(env.Data)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
}

func TestUpdateProfile(t *testing.T) {
	app, s, db := newTestApp(t)
	user := createTestUser(t, db, "updatable", "updatable@example.com", "pw")
	createTestUser(t, db, "taken", "taken@example.com", "pw")

	t.Run("Partial update only touches supplied fields", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/api/v1/user/update",
			map[string]string{"bio": "painter of light"})
		req.AddCookie(authCookie(t, s, user.ID))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		var updated models.User
		require.NoError(t, db.First(&updated, user.ID).Error)
		assert.Equal(t, "painter of light", updated.Bio)
		assert.Equal(t, "updatable", updated.Username)
		assert.Equal(t, "updatable@example.com", updated.Email)
	})

	t.Run("Email conflict", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/api/v1/user/update",
			map[string]string{"email": "taken@example.com"})
		req.AddCookie(authCookie(t, s, user.ID))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Email change to a free address", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/api/v1/user/update",
			map[string]string{"email": "fresh@example.com"})
		req.AddCookie(authCookie(t, s, user.ID))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		var updated models.User
		require.NoError(t, db.First(&updated, user.ID).Error)
		assert.Equal(t, "fresh@example.com", updated.Email)
	})
}
