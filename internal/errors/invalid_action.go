package errors

import "net/http"

var ErrInvalidAction = &Exception{
	Message:    "action must be one of completed, skipped, deferred",
	StatusCode: http.StatusBadRequest,
}
