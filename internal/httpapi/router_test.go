package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaydenbeard/gotham-ecdsa/internal/auth"
	"github.com/jaydenbeard/gotham-ecdsa/internal/ecdsaproto"
	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

const testJWTSecret = "a-test-secret-with-enough-entropy-1234567890"

func bearerToken(t *testing.T, subject string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	verifier, err := auth.NewVerifier(testJWTSecret)
	require.NoError(t, err)
	orch := ecdsaproto.New(storage.NewLocal(), false)
	return NewRouter(orch, verifier)
}

func TestHealthCheckIsPublic(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEcdsaRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/ecdsa/keygen/first", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEcdsaRoutesRejectBadToken(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/ecdsa/keygen/first", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestKeygenFirstRoundTripOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/ecdsa/keygen/first", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "alice"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)

	var sessionID string
	require.NoError(t, json.Unmarshal(body[0], &sessionID))
	assert.NotEmpty(t, sessionID)
}

func TestRecoverForUnknownSessionReturnsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/ecdsa/no-such-session/recover", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "alice"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKeygenSecondMalformedBodyReturnsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/ecdsa/keygen/some-session/second", bytes.NewBufferString("not json"))
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "alice"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
