package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/backend"
	"github.com/Cheertaboi/maxreward-console/internal/calc"
	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/service"
)

// envelope is the {success, message, data} shape the admin screens expect.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, envelope{Success: true, Message: message, Data: data})
}

// writeError maps service, query and backend errors onto a status and an
// envelope. Backend rejections keep their message: 4xx statuses pass through
// and success=false on a 2xx becomes 422. Other upstream failures are 502.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var ve *service.ValidationError
	var be *backend.Error
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, envelope{
			Message: ve.Code,
			Errors:  map[string]string{ve.Field: ve.Code},
		})
	case errors.Is(err, listquery.ErrUnknownScreen):
		writeJSON(w, http.StatusNotFound, envelope{Message: "unknown_screen"})
	case errors.Is(err, listquery.ErrUnknownFilter):
		writeJSON(w, http.StatusBadRequest, envelope{Message: "unknown_filter"})
	case errors.As(err, &be) && be.Status < 400:
		writeJSON(w, http.StatusUnprocessableEntity, envelope{Message: backend.MessageOf(err)})
	case errors.As(err, &be) && be.Status < 500:
		writeJSON(w, be.Status, envelope{Message: backend.MessageOf(err)})
	case errors.Is(err, context.DeadlineExceeded):
		log.WithError(err).Warn("backend timed out")
		writeJSON(w, http.StatusGatewayTimeout, envelope{Message: backend.GenericMessage})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusBadGateway, envelope{Message: backend.GenericMessage})
	}
}

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "invalid_body"})
		return false
	}
	return true
}

// amount accepts a JSON number or string the way a text field would: anything
// that is not a non-negative number reads as 0.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalJSON(b []byte) error {
	a.Decimal = calc.ParseAmount(strings.Trim(string(b), `"`))
	return nil
}

// quantity reads like amount, but bad input is 1.
type quantity int

func (q *quantity) UnmarshalJSON(b []byte) error {
	*q = quantity(calc.ParseQuantity(strings.Trim(string(b), `"`)))
	return nil
}
