package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetVenue(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPost, "/v1/venues", validVenuePayload(), nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created venueEnvelope
	decodeBody(t, rr, &created)
	assert.NotEmpty(t, created.Venue.ID)
	assert.Equal(t, "Le Zinc", created.Venue.Name)
	assert.Equal(t, 0.0, created.Venue.Rating)
	assert.Equal(t, 0, created.Venue.ReviewCount)
	assert.False(t, created.Venue.CreatedAt.IsZero())

	rr = doRequest(t, mux, http.MethodGet, "/v1/venues/"+created.Venue.ID, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got venueDetailEnvelope
	decodeBody(t, rr, &got)
	assert.Equal(t, created.Venue.ID, got.Venue.ID)
	assert.Equal(t, "17:00", got.Venue.HappyHourStart)
	assert.NotNil(t, got.Venue.Reviews)
	assert.Empty(t, got.Venue.Reviews)
}

func TestCreateVenueValidation(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	missingName := validVenuePayload()
	delete(missingName, "name")
	rr := doRequest(t, mux, http.MethodPost, "/v1/venues", missingName, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	badWindow := validVenuePayload()
	badWindow["happyHourStart"] = "25:00"
	rr = doRequest(t, mux, http.MethodPost, "/v1/venues", badWindow, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	decodeBody(t, rr, &body)
	assert.Contains(t, body, "error")
}

func TestGetVenueNotFound(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodGet, "/v1/venues/does-not-exist", nil, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	decodeBody(t, rr, &body)
	assert.Equal(t, "venue not found", body["error"])
}

func TestListVenues(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodGet, "/v1/venues", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var empty venuesEnvelope
	decodeBody(t, rr, &empty)
	assert.Empty(t, empty.Venues)

	for _, name := range []string{"Le Zinc", "Chez Marcel"} {
		payload := validVenuePayload()
		payload["name"] = name
		rr = doRequest(t, mux, http.MethodPost, "/v1/venues", payload, nil)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr = doRequest(t, mux, http.MethodGet, "/v1/venues", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed venuesEnvelope
	decodeBody(t, rr, &listed)
	assert.Len(t, listed.Venues, 2)
}

func TestUpdateVenueRestrictedFields(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPost, "/v1/venues", validVenuePayload(), nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created venueEnvelope
	decodeBody(t, rr, &created)

	update := map[string]any{
		"happyHourStart": "18:00",
		"prices":         map[string]any{"beer": 3.0, "cocktail": 6.0},
	}
	rr = doRequest(t, mux, http.MethodPut, "/v1/venues/"+created.Venue.ID, update, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated venueEnvelope
	decodeBody(t, rr, &updated)
	assert.Equal(t, "18:00", updated.Venue.HappyHourStart)
	assert.Equal(t, "19:00", updated.Venue.HappyHourEnd)
	assert.Equal(t, 3.0, updated.Venue.Prices.Beer)
	assert.Equal(t, "Le Zinc", updated.Venue.Name)
	assert.NotNil(t, updated.Venue.UpdatedAt)

	// Fields outside the whitelist are rejected outright.
	rr = doRequest(t, mux, http.MethodPut, "/v1/venues/"+created.Venue.ID, map[string]any{"name": "Hacked"}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Malformed window values are rejected too.
	rr = doRequest(t, mux, http.MethodPut, "/v1/venues/"+created.Venue.ID, map[string]any{"happyHourEnd": "9pm"}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateVenueNotFound(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodPut, "/v1/venues/missing", map[string]any{"happyHourStart": "18:00"}, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteVenueCascades(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()
	ctx := context.Background()

	rr := doRequest(t, mux, http.MethodPost, "/v1/venues", validVenuePayload(), nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created venueEnvelope
	decodeBody(t, rr, &created)
	venueID := created.Venue.ID

	token := bearerToken(t, app, "user-1", "camille@example.com", "Camille", "")
	review := map[string]any{"rating": 5, "comment": "Top !"}
	rr = doRequest(t, mux, http.MethodPost, "/v1/venues/"+venueID+"/reviews", review, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, mux, http.MethodDelete, "/v1/venues/"+venueID, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var result successEnvelope
	decodeBody(t, rr, &result)
	assert.True(t, result.Success)

	rr = doRequest(t, mux, http.MethodGet, "/v1/venues/"+venueID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	reviews, err := app.store.Reviews.ListByVenue(ctx, venueID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestHealthRequiresBasicAuth(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodGet, "/v1/health", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// admin:admin
	rr = doRequest(t, mux, http.MethodGet, "/v1/health", nil, map[string]string{
		"Authorization": "Basic YWRtaW46YWRtaW4=",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}
