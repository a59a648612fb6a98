package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkarpis/notevault/internal/common"
	"github.com/mkarpis/notevault/internal/server/models"
	"github.com/mkarpis/notevault/internal/server/services"
)

func postJSON(s *Server, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	s.engine.ServeHTTP(w, req)
	return w
}

func cookieValue(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	t.Fatalf("cookie %q not set", name)
	return ""
}

func TestRegister(t *testing.T) {
	authSvc := &fakeAuthService{registerUser: &models.User{ID: "u-1", Email: "a@b.c"}}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/register", `{"email":"a@b.c","password":"secret"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"u-1"}`, w.Body.String())
}

func TestRegister_BadBody(t *testing.T) {
	s := newTestServer(t, &fakeAuthService{}, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/register", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	authSvc := &fakeAuthService{registerErr: common.Validation("email and password are required")}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/register", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"email and password are required"}`, w.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authSvc := &fakeAuthService{registerErr: common.Conflict("email already exists")}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/register", `{"email":"a@b.c","password":"secret"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email already exists"}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	authSvc := &fakeAuthService{loginPair: &services.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/login", `{"email":"a@b.c","password":"secret"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accessToken":"acc"}`, w.Body.String())
	assert.Equal(t, "acc", cookieValue(t, w, accessTokenCookie))
	assert.Equal(t, "ref", cookieValue(t, w, refreshTokenCookie))
}

func TestLogin_WrongCredentials(t *testing.T) {
	authSvc := &fakeAuthService{loginErr: common.Unauthorized("incorrect email or password")}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/login", `{"email":"a@b.c","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"incorrect email or password"}`, w.Body.String())
}

func TestRefresh(t *testing.T) {
	authSvc := &fakeAuthService{refreshPair: &services.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/refresh", "", &http.Cookie{Name: refreshTokenCookie, Value: "old-ref"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accessToken":"acc2"}`, w.Body.String())
	assert.Equal(t, "old-ref", authSvc.refreshToken)
	assert.Equal(t, "ref2", cookieValue(t, w, refreshTokenCookie))
}

func TestRefresh_NoCookie(t *testing.T) {
	s := newTestServer(t, &fakeAuthService{}, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/refresh", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid refresh token"}`, w.Body.String())
}

func TestRefresh_InvalidToken(t *testing.T) {
	authSvc := &fakeAuthService{refreshErr: common.Unauthorized("invalid refresh token")}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/refresh", "", &http.Cookie{Name: refreshTokenCookie, Value: "garbage"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid refresh token"}`, w.Body.String())
}

func TestLogout(t *testing.T) {
	authSvc := &fakeAuthService{}
	s := newTestServer(t, authSvc, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/logout", "", &http.Cookie{Name: refreshTokenCookie, Value: "ref"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"user logged out successfully"}`, w.Body.String())
	assert.Equal(t, "ref", authSvc.logoutToken)

	for _, c := range w.Result().Cookies() {
		assert.Empty(t, c.Value)
	}
}

func TestLogout_NoCookie(t *testing.T) {
	s := newTestServer(t, &fakeAuthService{}, &fakeNoteService{})

	w := postJSON(s, "/api/v1/auth/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"user logged out successfully"}`, w.Body.String())
}
