package main

import (
	"net/http"

	"pago/internal/payments"
)

type cardDetailsPayload struct {
	Number      string `json:"number" validate:"required,min=16"`
	HolderName  string `json:"holder_name" validate:"required"`
	ExpiryMonth int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required"`
	CVV         string `json:"cvv" validate:"required,min=3,max=4"`
}

type createPaymentPayload struct {
	Amount        float64             `json:"amount" validate:"required,gt=0"`
	Currency      string              `json:"currency" validate:"required,oneof=BRL USD EUR"`
	Provider      string              `json:"provider" validate:"required"`
	PaymentMethod string              `json:"payment_method" validate:"required,oneof=credit_card debit_card pix boleto paypal"`
	CustomerEmail string              `json:"customer_email" validate:"required,email,max=255"`
	CardDetails   *cardDetailsPayload `json:"card_details,omitempty"`
}

func (app *application) createPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payload createPaymentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	req := payments.PaymentRequest{
		Amount:        payload.Amount,
		Currency:      payments.Currency(payload.Currency),
		Provider:      payload.Provider,
		PaymentMethod: payments.Method(payload.PaymentMethod),
		CustomerEmail: payload.CustomerEmail,
	}
	if payload.CardDetails != nil {
		req.CardDetails = &payments.CardDetails{
			Number:      payload.CardDetails.Number,
			HolderName:  payload.CardDetails.HolderName,
			ExpiryMonth: payload.CardDetails.ExpiryMonth,
			ExpiryYear:  payload.CardDetails.ExpiryYear,
			CVV:         payload.CardDetails.CVV,
		}
	}

	tx, err := app.gateway.ProcessPayment(r.Context(), req)
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, tx); err != nil {
		app.internalServerError(w, r, err)
	}
}
