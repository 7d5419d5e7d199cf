package errors

import "net/http"

var ErrInvalidDate = &Exception{
	Message:    "invalid date, expected YYYY-MM-DD",
	StatusCode: http.StatusBadRequest,
}
