package fakeapi

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m["message"]
}

func TestUnsignedToken_Payload(t *testing.T) {
	parts := strings.Split(UnsignedToken(Identity{Name: "Ava", Email: "ava@x.io"}), ".")
	require.Len(t, parts, 3)

	b, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var claims map[string]any
	require.NoError(t, json.Unmarshal(b, &claims))
	assert.Equal(t, "Ava", claims["name"])
	assert.Equal(t, "ava@x.io", claims["email"])
	assert.Contains(t, claims, "iat")
}

func TestOTPFlow(t *testing.T) {
	s := New()
	s.IssueToken = func(Identity) string { return "t1" }
	h := s.Handler()

	rec := call(t, h, http.MethodPost, "/api/auth/verify-otp", "", `{"email":"ava@x.io","otp":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no pending otp")

	rec = call(t, h, http.MethodPost, "/api/auth/send-otp", "", `{"name":"Ava","email":"ava@x.io"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/auth/verify-otp", "", `{"email":"ava@x.io","otp":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"t1"}`, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/notes", "t1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, 1, s.Count(RouteSendOTP))
	assert.Equal(t, 2, s.Count(RouteVerifyOTP))
	assert.Equal(t, 1, s.Count(RouteListNotes))
}

func TestSendOTP_RequiresEmail(t *testing.T) {
	rec := call(t, New().Handler(), http.MethodPost, "/api/auth/send-otp", "", `{"name":"Ava"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", message(t, rec))
}

func TestNotes_Auth(t *testing.T) {
	s := New()
	s.AddSession("live", Identity{Email: "a@x.io"})
	s.AddSession("old", Identity{Email: "a@x.io"})
	s.Expire("old")
	h := s.Handler()

	rec := call(t, h, http.MethodGet, "/api/notes", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/notes", "unknown", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/notes", "old", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "jwt expired", message(t, rec))

	rec = call(t, h, http.MethodGet, "/api/notes", "live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotes_OwnedPerIdentity(t *testing.T) {
	s := New()
	s.AddSession("a", Identity{Email: "a@x.io"})
	s.AddSession("b", Identity{Email: "b@x.io"})
	h := s.Handler()

	rec := call(t, h, http.MethodPost, "/api/notes", "a", `{"content":"Buy milk"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, s.Notes("a@x.io"), 1)
	assert.Empty(t, s.Notes("b@x.io"))

	id := s.Notes("a@x.io")[0].ID
	rec = call(t, h, http.MethodDelete, "/api/notes/"+id, "b", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "b cannot delete a's note")

	rec = call(t, h, http.MethodDelete, "/api/notes/"+id, "a", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.Notes("a@x.io"))
	assert.Equal(t, 2, s.Count(RouteDeleteNote))
}

func TestCreateNote_RejectsBlank(t *testing.T) {
	s := New()
	s.AddSession("a", Identity{Email: "a@x.io"})

	rec := call(t, s.Handler(), http.MethodPost, "/api/notes", "a", `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFailNext(t *testing.T) {
	s := New()
	s.AddSession("a", Identity{Email: "a@x.io"})
	s.FailNext(RouteListNotes, http.StatusInternalServerError, "db down")
	s.FailNext(RouteListNotes, http.StatusBadGateway, "")
	h := s.Handler()

	rec := call(t, h, http.MethodGet, "/api/notes", "a", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "db down", message(t, rec))

	rec = call(t, h, http.MethodGet, "/api/notes", "a", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/notes", "a", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{RouteListNotes, RouteListNotes, RouteListNotes}, s.Calls())
}

func TestGoogleLogin(t *testing.T) {
	s := New()
	s.AddGoogleCredential("cred", Identity{Name: "Ava", Email: "ava@x.io"})
	h := s.Handler()

	rec := call(t, h, http.MethodPost, "/api/auth/google-login", "", `{"token":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/auth/google-login", "", `{"token":"cred"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	rec = call(t, h, http.MethodGet, "/api/notes", body["token"], "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
