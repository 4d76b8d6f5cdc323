package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wonsz1/vehicle-catalog/internal/domain"
)

// ErrorResponse is the JSON body returned for every non-2xx outcome.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human-readable
// message naming what went wrong.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes an ErrorResponse with the given status, code, and message.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondDomainError maps a service/domain error chain onto an HTTP status:
// validation-class failures 422, absence 404, plate conflicts 409, anything
// else (storage included) a generic 500 that does not leak internals.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrUnknownType):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "vehicle not found")
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, "conflict", domain.ErrConflict.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage strips the wrapping operation prefixes from a service error,
// e.g. "service.VehicleService.Create: validation error: brand cannot be empty"
// becomes "validation error: brand cannot be empty".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.VehicleService.Create: ",
		"service.VehicleService.Update: ",
	} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}
