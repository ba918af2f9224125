package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"barhop/internal/auth"
	"barhop/internal/kv"
	"barhop/internal/ratelimiter"
	"barhop/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "test-secret"
	testIss    = "barhop-identity"
	testAud    = "barhop"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	return &application{
		config: config{
			addr: ":0",
			env:  "test",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "admin"},
				token: tokenConfig{secret: testSecret, iss: testIss, aud: testAud},
			},
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		store:         store.NewStorage(kv.NewMemory()),
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator(testSecret, testAud, testIss),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, 5*time.Second),
	}
}

func newAuthenticatorWithSecret(secret string) auth.Authenticator {
	return auth.NewJWTAuthenticator(secret, testAud, testIss)
}

// bearerToken mints a provider-style token for tests.
func bearerToken(t *testing.T, app *application, sub, email, name, avatar string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"name":  name,
		"exp":   now.Add(time.Hour).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"iss":   testIss,
		"aud":   testAud,
	}
	if avatar != "" {
		claims["avatar_url"] = avatar
	}

	token, err := app.authenticator.GenerateToken(claims)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst))
}

func validVenuePayload() map[string]any {
	return map[string]any{
		"name":           "Le Zinc",
		"address":        "12 Rue Montorgueil, 75001 Paris",
		"category":       "Bar de quartier",
		"latitude":       48.8634,
		"longitude":      2.3467,
		"photoUrl":       "https://example.com/photo.jpg",
		"happyHourStart": "17:00",
		"happyHourEnd":   "19:00",
		"prices":         map[string]any{"beer": 2.5, "cocktail": 5.0},
	}
}
