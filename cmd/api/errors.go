package main

import (
	"net/http"

	"pago/internal/payments"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusNotFound, err.Error())
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err)
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

// paymentErrorResponse maps the gateway error taxonomy onto statuses.
func (app *application) paymentErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch payments.KindOf(err) {
	case payments.KindValidation:
		app.badRequestResponse(w, r, err)
	case payments.KindFraud:
		app.logger.Warnw("payment blocked", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	case payments.KindNotFound:
		app.notFoundResponse(w, r, err)
	case payments.KindProvider:
		app.logger.Errorw("provider failure", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadGateway, err.Error())
	default:
		app.internalServerError(w, r, err)
	}
}
