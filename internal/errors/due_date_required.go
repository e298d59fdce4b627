package errors

import "net/http"

var ErrNewDueDateRequired = &Exception{
	Message:    "deferring a task requires a new due date",
	StatusCode: http.StatusBadRequest,
}
