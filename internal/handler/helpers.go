// Package handler implements the HTTP endpoints for the admin back office
// and the public storefront. Handlers stay thin: decode, validate, call the
// store or a service, write the envelope.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cartloom/cartloom/internal/listing"
	"github.com/cartloom/cartloom/internal/model"
	"github.com/cartloom/cartloom/internal/store"
	"github.com/cartloom/cartloom/internal/validate"
)

// writeJSON serializes v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the standard failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Success: false, Message: message})
}

// writeList writes a page of rows in the standard list envelope.
func writeList(w http.ResponseWriter, data interface{}, p model.Pagination) {
	writeJSON(w, http.StatusOK, model.ListResponse{Success: true, Data: data, Pagination: p})
}

// writeStoreError maps store sentinels to HTTP statuses. Anything
// unrecognized is a 500 with a generic message; the raw error is for logs,
// not clients.
func writeStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "record already exists")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// writeValidationError reports the failed fields as one message.
func writeValidationError(w http.ResponseWriter, errs validate.FieldErrors) {
	writeError(w, http.StatusBadRequest, errs.Error())
}

// readJSON decodes the request body into v. Unknown fields are ignored.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// listRequest builds an engine request from the query string.
func listRequest(r *http.Request) listing.Request {
	return listing.ParseRequest(r.URL.Query())
}
