package errors

import "net/http"

var ErrLockUnavailable = &Exception{
	Message:    "another reconciliation is in progress",
	StatusCode: http.StatusServiceUnavailable,
}
