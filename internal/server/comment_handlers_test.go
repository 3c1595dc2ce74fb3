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

func TestAddComment(t *testing.T) {
	app, s, db := newTestApp(t)
	artist := createTestUser(t, db, "artist", "artist@example.com", "pw")
	viewer := createTestUser(t, db, "viewer", "viewer@example.com", "pw")
	painting := createTestPainting(t, db, artist.ID, "Commented")

	t.Run("Success returns comment with author", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/v1/comment/%d/comment", painting.ID),
			map[string]string{"text": "Wonderful brushwork"})
		req.AddCookie(authCookie(t, s, viewer.ID))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var got models.Comment
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "Wonderful brushwork", got.Text)
		assert.Equal(t, "viewer", got.User.Username)
	})

	t.Run("Whitespace-only text rejected", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/v1/comment/%d/comment", painting.ID),
			map[string]string{"text": "   "})
		req.AddCookie(authCookie(t, s, viewer.ID))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Unknown painting", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/v1/comment/9999/comment",
			map[string]string{"text": "hello?"})
		req.AddCookie(authCookie(t, s, viewer.ID))

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestGetComments_PublicNewestFirst(t *testing.T) {
	app, _, db := newTestApp(t)
	artist := createTestUser(t, db, "artist", "artist@example.com", "pw")
	painting := createTestPainting(t, db, artist.ID, "Discussed")

	require.NoError(t, db.Create(&models.Comment{UserID: artist.ID, PaintingID: painting.ID, Text: "first"}).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: artist.ID, PaintingID: painting.ID, Text: "second"}).Error)

	// no auth cookie: listing is public
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/comment/%d/comment", painting.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(raw, &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "artist", comments[0].User.Username)
}

func TestDeleteComment(t *testing.T) {
	app, s, db := newTestApp(t)
	artist := createTestUser(t, db, "artist", "artist@example.com", "pw")
	author := createTestUser(t, db, "author", "author@example.com", "pw")
	stranger := createTestUser(t, db, "stranger", "stranger@example.com", "pw")
	painting := createTestPainting(t, db, artist.ID, "Moderated")

	comment := &models.Comment{UserID: author.ID, PaintingID: painting.ID, Text: "delete me"}
	require.NoError(t, db.Create(comment).Error)

	t.Run("Stranger forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/comment/%d", comment.ID), nil)
		req.AddCookie(authCookie(t, s, stranger.ID))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Author can delete and comment leaves the listing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/comment/%d", comment.ID), nil)
		req.AddCookie(authCookie(t, s, author.ID))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		listReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/comment/%d/comment", painting.ID), nil)
		listResp, err := app.Test(listReq, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, listResp.StatusCode)

		env := decodeEnvelope(t, listResp)
		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var comments []models.Comment
		require.NoError(t, json.Unmarshal(raw, &comments))
		assert.Empty(t, comments)
	})

	t.Run("Unknown comment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/comment/424242", nil)
		req.AddCookie(authCookie(t, s, author.ID))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
