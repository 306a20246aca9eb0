package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("s3cret")
	token, err := v.Issue(Profile{UserID: "u-1", FullName: "Asha Rao", Email: "asha@example.com"}, time.Hour)
	require.NoError(t, err)

	p, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Profile{UserID: "u-1", FullName: "Asha Rao", Email: "asha@example.com"}, p)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("s3cret")

	expired, err := v.Issue(Profile{UserID: "u-1"}, -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrUnauthorized)

	other, err := NewVerifier("different").Issue(Profile{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(other)
	assert.ErrorIs(t, err, ErrUnauthorized)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "x"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = v.Verify(noSubject)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func echoProfile(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(p.UserID))
	})
}

func TestMiddleware_Bearer(t *testing.T) {
	v := NewVerifier("s3cret")
	token, err := v.Issue(Profile{UserID: "u-42"}, time.Hour)
	require.NoError(t, err)
	h := Middleware(v)(echoProfile(t))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u-42", rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(HeaderUserID, "u-42")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "header fallback is disabled when a secret is set")
}

func TestMiddleware_HeaderFallback(t *testing.T) {
	h := Middleware(nil)(echoProfile(t))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(HeaderUserID, " u-7 ")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u-7", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "X-User-Id")
}
