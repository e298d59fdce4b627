package errors

import (
	"errors"
	"net/http"
)

// Exception is an error that carries the HTTP status it should surface as.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsException reports whether err carries a client-facing status, as opposed
// to an internal failure whose detail must not leak to the caller.
func IsException(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr)
}
