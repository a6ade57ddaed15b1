package main

import (
	"net/http"
)

type registerWebhookPayload struct {
	Event string `json:"event" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
}

func (app *application) registerWebhookHandler(w http.ResponseWriter, r *http.Request) {
	var payload registerWebhookPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.hooks.Register(payload.Event, payload.URL)

	if err := app.jsonResponse(w, http.StatusCreated, payload); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listWebhooksHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, app.hooks.Registrations()); err != nil {
		app.internalServerError(w, r, err)
	}
}
