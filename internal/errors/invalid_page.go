package errors

import "net/http"

var ErrInvalidPage = &Exception{
	Message:    "page size must be positive",
	StatusCode: http.StatusBadRequest,
}
