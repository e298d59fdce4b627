package errors

import "net/http"

var ErrInvalidDueDate = &Exception{
	Message:    "due date must be a valid ISO-8601 date",
	StatusCode: http.StatusBadRequest,
}
