package main

import (
	"net/http"
	"time"

	"barhop/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createReviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
	Photo   string `json:"photo" validate:"omitempty,url"`
}

type reviewEnvelope struct {
	Review store.Review `json:"review"`
}

type reviewsEnvelope struct {
	Reviews []store.Review `json:"reviews"`
}

// CreateReview godoc
//
//	@Summary		Post a review for a venue
//	@Description	Requires a bearer token from the identity provider; author fields come from the verified identity.
//	@Tags			Review
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		string				true	"Venue ID"
//	@Param			review	body		createReviewPayload	true	"Review"
//	@Success		201		{object}	reviewEnvelope
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/reviews [post]
func (app *application) createVenueReviewHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")
	user := getUserFromContext(r)

	var payload createReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The venue must exist before anything is persisted; a dangling
	// venueId would make the review unreachable by prefix scan anyway.
	if _, err := app.store.Venues.GetByID(r.Context(), venueID); err != nil {
		app.storeError(w, r, err, errVenueNotFound.Error())
		return
	}

	review := &store.Review{
		ID:                uuid.NewString(),
		VenueID:           venueID,
		AuthorID:          user.ID,
		AuthorDisplayName: user.Name,
		AuthorAvatarURL:   user.AvatarOrDefault(),
		Rating:            payload.Rating,
		Comment:           payload.Comment,
		PhotoURL:          payload.Photo,
		CreatedAt:         time.Now().UTC(),
	}

	if err := app.store.Reviews.Create(r.Context(), review); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Refresh the venue's cached aggregate from the full review set.
	// A concurrent delete of the venue makes this a silent no-op.
	if err := app.store.Ratings.Recompute(r.Context(), venueID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, reviewEnvelope{Review: *review}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetReviews godoc
//
//	@Summary		List a venue's reviews
//	@Tags			Review
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	reviewsEnvelope
//	@Failure		500		{object}	error
//	@Router			/venues/{venueID}/reviews [get]
func (app *application) getVenueReviewsHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	reviews, err := app.store.Reviews.ListByVenue(r.Context(), venueID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, reviewsEnvelope{Reviews: reviews}); err != nil {
		app.internalServerError(w, r, err)
	}
}
