package main

import (
	"errors"
	"net/http"

	"barhop/internal/identity"
	"barhop/internal/mailer"
)

type SignupPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type userEnvelope struct {
	User identity.User `json:"user"`
}

// Signup godoc
//
//	@Summary		Register a new account
//	@Description	Account creation is delegated to the external identity provider; this service never stores credentials.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			signup	body		SignupPayload	true	"Signup details"
//	@Success		201		{object}	userEnvelope
//	@Failure		400		{object}	error
//	@Router			/signup [post]
func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.identity.CreateUser(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		var providerErr *identity.ProviderError
		if errors.As(err, &providerErr) {
			app.badRequestResponse(w, r, errors.New(providerErr.Message))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.sendWelcomeEmail(*user)

	if err := writeJSON(w, http.StatusCreated, userEnvelope{User: *user}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// sendWelcomeEmail is fire-and-forget; a mail failure never fails the
// signup that triggered it.
func (app *application) sendWelcomeEmail(user identity.User) {
	if app.mailer == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				app.logger.Errorw("welcome email panic", "recover", r)
			}
		}()

		vars := struct {
			Username string
		}{Username: user.Name}

		status, err := app.mailer.Send(mailer.UserWelcomeTemplate, user.Name, user.Email, vars)
		if err != nil {
			app.logger.Errorw("error sending welcome email", "email", user.Email, "error", err)
			return
		}
		app.logger.Infow("welcome email sent", "email", user.Email, "status", status)
	}()
}
