package errors

import "net/http"

var ErrOccurrenceNotFound = &Exception{
	Message:    "daily task not found",
	StatusCode: http.StatusNotFound,
}
