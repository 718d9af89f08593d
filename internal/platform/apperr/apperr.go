// Package apperr defines the error taxonomy shared by all handlers. Services
// return (or wrap) one of the sentinel errors below; handlers translate them
// to HTTP via ToHTTP so status mapping lives in exactly one place.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrUnauthorized means the request carries no authenticated principal.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the principal's role (or care-team assignment) does
	// not permit the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means no matching entity exists.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation would duplicate an existing active
	// relationship or row.
	ErrConflict = errors.New("conflict")
	// ErrUpstream means the external generation service returned a
	// non-success response.
	ErrUpstream = errors.New("upstream service error")
	// ErrBadUpstreamOutput means the generation service answered but its
	// output could not be parsed.
	ErrBadUpstreamOutput = errors.New("unparseable upstream output")
)

// HTTPStatus maps a taxonomy error to its HTTP status code. Anything outside
// the taxonomy is a persistence or programming fault and maps to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrBadUpstreamOutput):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ToHTTP converts a service error into an echo.HTTPError with the mapped
// status. Internal details of 500-class errors are replaced with a generic
// message so raw persistence/upstream text never reaches the client.
func ToHTTP(err error) *echo.HTTPError {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, ErrBadUpstreamOutput) {
		msg = "internal server error"
	}
	if errors.Is(err, ErrUpstream) {
		msg = "AI service error"
	}
	return echo.NewHTTPError(status, msg)
}
