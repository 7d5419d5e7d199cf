package errors

import "net/http"

var ErrSlotNotFound = &Exception{
	Message:    "weekly slot not found",
	StatusCode: http.StatusNotFound,
}
