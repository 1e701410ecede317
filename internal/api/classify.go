package api

import (
	"errors"
	"net/http"

	"github.com/mbranch/crud-api/internal/store"
)

// Classify maps a raised error into an HTTP status and client-safe message.
//
// The rules apply in priority order, and a more specific classification is
// never overridden by the generic fallback:
//
//  1. a pre-classified *Error passes through unchanged
//  2. "no result found" store errors become 404
//  3. "non-unique result" store errors become 500 (a broken uniqueness
//     assumption is a server defect, not a client mistake)
//  4. an error carrying its own non-zero status code (StatusCoder) uses it
//  5. everything else defaults to 400
func Classify(err error) *Error {
	if err == nil {
		return NewError(http.StatusInternalServerError, "an unexpected error occurred", nil)
	}

	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if store.IsNotFoundError(err) {
		return NewError(http.StatusNotFound, "resource not found", err)
	}

	if store.IsNotUniqueError(err) {
		return NewError(
			http.StatusInternalServerError,
			"an unexpected error occurred",
			err,
		)
	}

	var coded StatusCoder
	if errors.As(err, &coded) {
		if code := coded.StatusCode(); code != 0 {
			return NewError(code, http.StatusText(code), err)
		}
	}

	return NewError(http.StatusBadRequest, "bad request", err)
}
