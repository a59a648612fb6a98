package httpapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpis/notevault/internal/common"
	"github.com/mkarpis/notevault/internal/server/models"
)

func doAuthed(s *Server, method, path string, body *bytes.Buffer, contentType string, t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	req.AddCookie(accessCookie(t, "user-1"))
	s.engine.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestListNotes(t *testing.T) {
	notes := &fakeNoteService{listNotes: []*models.Note{
		{ID: "n-1", Title: "first", Slug: "first", UserID: "user-1"},
		{ID: "n-2", Title: "second", Slug: "second", UserID: "user-1"},
	}}
	s := newTestServer(t, &fakeAuthService{}, notes)

	w := doAuthed(s, http.MethodGet, "/api/v1/notes?page=2&limit=10", nil, "", t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, notes.listPage)
	assert.Equal(t, 10, notes.listLimit)
	assert.Contains(t, w.Body.String(), `"total":2`)
	assert.Contains(t, w.Body.String(), `"page":2`)
}

func TestListNotes_DefaultsOnGarbage(t *testing.T) {
	notes := &fakeNoteService{listNotes: []*models.Note{}}
	s := newTestServer(t, &fakeAuthService{}, notes)

	w := doAuthed(s, http.MethodGet, "/api/v1/notes?page=abc&limit=-5", nil, "", t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, notes.listPage)
	assert.Equal(t, 4, notes.listLimit)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestGetNote(t *testing.T) {
	notes := &fakeNoteService{note: &models.Note{ID: "n-1", Title: "first", Slug: "first", UserID: "user-1"}}
	s := newTestServer(t, &fakeAuthService{}, notes)

	w := doAuthed(s, http.MethodGet, "/api/v1/notes/n-1", nil, "", t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n-1", notes.id)
	assert.Contains(t, w.Body.String(), `"title":"first"`)
}

func TestGetNote_NotFound(t *testing.T) {
	notes := &fakeNoteService{err: common.NotFound("no note for this id: n-x")}
	s := newTestServer(t, &fakeAuthService{}, notes)

	w := doAuthed(s, http.MethodGet, "/api/v1/notes/n-x", nil, "", t)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"no note for this id: n-x"}`, w.Body.String())
}

func TestCreateNote(t *testing.T) {
	notes := &fakeNoteService{note: &models.Note{ID: "n-1", Title: "my note", Slug: "my-note", UserID: "user-1"}}
	s := newTestServer(t, &fakeAuthService{}, notes)

	body, ct := multipartBody(t, map[string]string{"title": "my note"}, "", "")
	w := doAuthed(s, http.MethodPost, "/api/v1/notes", body, ct, t)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "my note", notes.title)
	assert.Empty(t, notes.imagePath)
	assert.Contains(t, w.Body.String(), "note created successfully")
}

func TestCreateNote_WithImage(t *testing.T) {
	notes := &fakeNoteService{note: &models.Note{ID: "n-1", Title: "my note", Slug: "my-note", UserID: "user-1"}}
	s := newTestServer(t, &fakeAuthService{}, notes)

	body, ct := multipartBody(t, map[string]string{"title": "my note"}, "image", "pic.PNG")
	w := doAuthed(s, http.MethodPost, "/api/v1/notes", body, ct, t)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, notes.imagePath)
	assert.True(t, strings.HasPrefix(notes.imagePath, "uploads/notes/"), "got %q", notes.imagePath)
	assert.True(t, strings.HasSuffix(notes.imagePath, ".png"), "got %q", notes.imagePath)

	_, err := os.Stat(notes.imagePath)
	assert.NoError(t, err)
}

func TestCreateNote_InvalidTitle(t *testing.T) {
	notes := &fakeNoteService{err: common.Validation("title is too short")}
	s := newTestServer(t, &fakeAuthService{}, notes)

	body, ct := multipartBody(t, map[string]string{"title": "ab"}, "", "")
	w := doAuthed(s, http.MethodPost, "/api/v1/notes", body, ct, t)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"title is too short"}`, w.Body.String())
}

func TestCreateNote_DuplicateTitle(t *testing.T) {
	notes := &fakeNoteService{err: common.Conflict("title already exists")}
	s := newTestServer(t, &fakeAuthService{}, notes)

	body, ct := multipartBody(t, map[string]string{"title": "my note"}, "", "")
	w := doAuthed(s, http.MethodPost, "/api/v1/notes", body, ct, t)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateNote(t *testing.T) {
	notes := &fakeNoteService{note: &models.Note{ID: "n-1", Title: "renamed", Slug: "renamed", UserID: "user-1"}}
	s := newTestServer(t, &fakeAuthService{}, notes)

	body, ct := multipartBody(t, map[string]string{"title": "renamed"}, "", "")
	w := doAuthed(s, http.MethodPut, "/api/v1/notes/n-1", body, ct, t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n-1", notes.id)
	assert.Equal(t, "renamed", notes.title)
	assert.Contains(t, w.Body.String(), `"slug":"renamed"`)
}

func TestUpdateNote_NotFound(t *testing.T) {
	notes := &fakeNoteService{err: common.NotFound("no note for this id: n-x")}
	s := newTestServer(t, &fakeAuthService{}, notes)

	body, ct := multipartBody(t, map[string]string{"title": "renamed"}, "", "")
	w := doAuthed(s, http.MethodPut, "/api/v1/notes/n-x", body, ct, t)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteNote(t *testing.T) {
	notes := &fakeNoteService{}
	s := newTestServer(t, &fakeAuthService{}, notes)

	w := doAuthed(s, http.MethodDelete, "/api/v1/notes/n-1", nil, "", t)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, notes.deleted)
	assert.Equal(t, "n-1", notes.id)
	assert.Empty(t, w.Body.String())
}

func TestDeleteNote_NotFound(t *testing.T) {
	notes := &fakeNoteService{err: common.NotFound("no note for this id: n-x")}
	s := newTestServer(t, &fakeAuthService{}, notes)

	w := doAuthed(s, http.MethodDelete, "/api/v1/notes/n-x", nil, "", t)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
