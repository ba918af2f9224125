package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/go-chi/chi/v5"
)

// UploadVenuePhoto godoc
//
//	@Summary		Upload a venue photo
//	@Description	Uploads the image to Cloudinary and stores the resulting URL on the venue record.
//	@Tags			Venue
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Param			photo	formData	file	true	"Photo file"
//	@Success		200		{object}	venueEnvelope
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Router			/venues/{venueID}/photos [post]
func (app *application) uploadVenuePhotoHandler(w http.ResponseWriter, r *http.Request) {
	if app.cld == nil {
		app.internalServerError(w, r, errors.New("cloudinary is not configured"))
		return
	}

	venueID := chi.URLParam(r, "venueID")

	venue, err := app.store.Venues.GetByID(r.Context(), venueID)
	if err != nil {
		app.storeError(w, r, err, errVenueNotFound.Error())
		return
	}

	const maxBytes = 15 * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("photo file is required: %w", err))
		return
	}
	defer file.Close()

	url, err := app.uploadVenuePhoto(file, venueID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	venue.PhotoURL = url
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

// uploadVenuePhoto pushes the file to Cloudinary under a controlled
// public ID so re-uploads for the same venue do not collide.
func (app *application) uploadVenuePhoto(file io.Reader, venueID string) (string, error) {
	publicID := fmt.Sprintf("venue_%s_%d", venueID, time.Now().UnixNano())

	resp, err := app.cld.Upload.Upload(
		context.Background(), // background context for the external call
		file,
		uploader.UploadParams{
			Folder:    "venues",
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
