package main

import (
	"errors"
	"net/http"
	"time"

	"barhop/internal/happyhour"
	"barhop/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// venueResponse decorates the stored record with the server-side
// happy-hour check so clients do not each reimplement the window logic.
type venueResponse struct {
	store.Venue
	HappyHourActive bool `json:"happyHourActive"`
}

func presentVenue(v store.Venue) venueResponse {
	return venueResponse{
		Venue:           v,
		HappyHourActive: happyhour.ActiveAt(v.HappyHourStart, v.HappyHourEnd, time.Now()),
	}
}

type venueEnvelope struct {
	Venue venueResponse `json:"venue"`
}

type venuesEnvelope struct {
	Venues []venueResponse `json:"venues"`
}

type venueDetailEnvelope struct {
	Venue venueDetail `json:"venue"`
}

type venueDetail struct {
	venueResponse
	Reviews []store.Review `json:"reviews"`
}

type CreateVenuePayload struct {
	Name           string        `json:"name" validate:"required,max=100"`
	Address        string        `json:"address" validate:"required,max=255"`
	Category       string        `json:"category" validate:"max=50"`
	Latitude       float64       `json:"latitude" validate:"latitude"`
	Longitude      float64       `json:"longitude" validate:"longitude"`
	PhotoURL       string        `json:"photoUrl" validate:"omitempty,url"`
	HappyHourStart string        `json:"happyHourStart" validate:"required,hhmm"`
	HappyHourEnd   string        `json:"happyHourEnd" validate:"required,hhmm"`
	Prices         PricesPayload `json:"prices"`
}

type PricesPayload struct {
	Beer     float64 `json:"beer" validate:"gte=0"`
	Cocktail float64 `json:"cocktail" validate:"gte=0"`
}

// ListVenues godoc
//
//	@Summary		List all venues
//	@Tags			Venue
//	@Produce		json
//	@Success		200	{object}	venuesEnvelope
//	@Failure		500	{object}	error
//	@Router			/venues [get]
func (app *application) listVenuesHandler(w http.ResponseWriter, r *http.Request) {
	venues, err := app.store.Venues.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	out := make([]venueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, presentVenue(v))
	}

	if err := writeJSON(w, http.StatusOK, venuesEnvelope{Venues: out}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetVenue godoc
//
//	@Summary		Get a venue with its reviews
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	venueDetailEnvelope
//	@Failure		404		{object}	error
//	@Router			/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	venue, err := app.store.Venues.GetByID(r.Context(), venueID)
	if err != nil {
		app.storeError(w, r, err, "venue not found")
		return
	}

	reviews, err := app.store.Reviews.ListByVenue(r.Context(), venueID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	detail := venueDetail{venueResponse: presentVenue(*venue), Reviews: reviews}
	if err := writeJSON(w, http.StatusOK, venueDetailEnvelope{Venue: detail}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// CreateVenue godoc
//
//	@Summary		Add a venue
//	@Description	No authentication required in the prototype posture; ids and derived fields are server-assigned.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			venue	body		CreateVenuePayload	true	"Venue details"
//	@Success		201		{object}	venueEnvelope
//	@Failure		400		{object}	error
//	@Router			/venues [post]
func (app *application) createVenueHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue := &store.Venue{
		ID:             uuid.NewString(),
		Name:           payload.Name,
		Address:        payload.Address,
		Category:       payload.Category,
		Latitude:       payload.Latitude,
		Longitude:      payload.Longitude,
		PhotoURL:       payload.PhotoURL,
		HappyHourStart: payload.HappyHourStart,
		HappyHourEnd:   payload.HappyHourEnd,
		Prices:         store.Prices(payload.Prices),
		Rating:         0,
		ReviewCount:    0,
		CreatedAt:      time.Now().UTC(),
	}

	if err := app.store.Venues.Create(r.Context(), venue); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, venueEnvelope{Venue: presentVenue(*venue)}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// Only the discount window and the discounted prices are mutable after
// creation; everything else is fixed or derived.
type UpdateVenuePayload struct {
	HappyHourStart *string        `json:"happyHourStart" validate:"omitempty,hhmm"`
	HappyHourEnd   *string        `json:"happyHourEnd" validate:"omitempty,hhmm"`
	Prices         *PricesPayload `json:"prices"`
}

// UpdateVenue godoc
//
//	@Summary		Update a venue's happy-hour window and prices
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		string				true	"Venue ID"
//	@Param			venue	body		UpdateVenuePayload	true	"Fields to update"
//	@Success		200		{object}	venueEnvelope
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Router			/venues/{venueID} [put]
func (app *application) updateVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	var payload UpdateVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue, err := app.store.Venues.GetByID(r.Context(), venueID)
	if err != nil {
		app.storeError(w, r, err, "venue not found")
		return
	}

	if payload.HappyHourStart != nil {
		venue.HappyHourStart = *payload.HappyHourStart
	}
	if payload.HappyHourEnd != nil {
		venue.HappyHourEnd = *payload.HappyHourEnd
	}
	if payload.Prices != nil {
		venue.Prices = store.Prices(*payload.Prices)
	}
	now := time.Now().UTC()
	venue.UpdatedAt = &now

	if err := app.store.Venues.Update(r.Context(), venue); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, venueEnvelope{Venue: presentVenue(*venue)}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type successEnvelope struct {
	Success bool `json:"success"`
}

// DeleteVenue godoc
//
//	@Summary		Delete a venue and all its reviews
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	successEnvelope
//	@Failure		500		{object}	error
//	@Router			/venues/{venueID} [delete]
func (app *application) deleteVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	if err := app.store.Venues.Delete(r.Context(), venueID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, successEnvelope{Success: true}); err != nil {
		app.internalServerError(w, r, err)
	}
}

var errVenueNotFound = errors.New("venue not found")
