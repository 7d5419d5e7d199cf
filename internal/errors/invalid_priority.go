package errors

import "net/http"

var ErrInvalidPriority = &Exception{
	Message:    "invalid task priority",
	StatusCode: http.StatusBadRequest,
}
