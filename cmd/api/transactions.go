package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) getTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionID")

	tx, err := app.gateway.GetTransaction(r.Context(), id)
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tx); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := app.gateway.ListTransactions(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, all); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) summaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := app.gateway.Summary(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}
