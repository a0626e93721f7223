package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/libreria/sales-service/internal/model"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps domain error kinds onto HTTP statuses. Anything
// unrecognized is treated as a storage failure and hidden behind a generic
// message.
func WriteError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: vErr.Fields})
		return
	}

	var sErr *model.StockInsufficientError
	if errors.As(err, &sErr) {
		WriteJSON(w, http.StatusConflict, errorResponse{Error: sErr.Error()})
		return
	}

	switch {
	case errors.Is(err, model.ErrBookNotFound),
		errors.Is(err, model.ErrSaleNotFound),
		errors.Is(err, model.ErrOrderContextNotFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, model.ErrInvalidQuantity):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidStatusTransition):
		WriteJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
