package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barhop/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockProvider(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignupDelegatesToProvider(t *testing.T) {
	app := newTestApplication(t)

	provider := newMockProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/users", r.URL.Path)
		require.Equal(t, "Bearer svc-key", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "camille@example.com", payload["email"])
		assert.Equal(t, true, payload["email_confirm"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id":    "uid-1",
				"email": "camille@example.com",
				"name":  "Camille",
			},
		})
	})
	app.identity = identity.NewClient(provider.URL, "svc-key")
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPost, "/v1/signup", map[string]any{
		"email":    "camille@example.com",
		"password": "s3cret-pass",
		"name":     "Camille",
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var body userEnvelope
	decodeBody(t, rr, &body)
	assert.Equal(t, "uid-1", body.User.ID)
	assert.Equal(t, "Camille", body.User.Name)
}

func TestSignupValidation(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	// Missing fields never reach the provider.
	for _, payload := range []map[string]any{
		{"password": "s3cret-pass", "name": "Camille"},
		{"email": "camille@example.com", "name": "Camille"},
		{"email": "camille@example.com", "password": "s3cret-pass"},
		{"email": "not-an-email", "password": "s3cret-pass", "name": "Camille"},
		{"email": "camille@example.com", "password": "short", "name": "Camille"},
	} {
		rr := doRequest(t, mux, http.MethodPost, "/v1/signup", payload, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}
}

func TestSignupProviderRejection(t *testing.T) {
	app := newTestApplication(t)

	provider := newMockProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "a user with this email already exists"})
	})
	app.identity = identity.NewClient(provider.URL, "svc-key")
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPost, "/v1/signup", map[string]any{
		"email":    "camille@example.com",
		"password": "s3cret-pass",
		"name":     "Camille",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	decodeBody(t, rr, &body)
	assert.Equal(t, "a user with this email already exists", body["error"])
}
