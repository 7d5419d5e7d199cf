package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Exception is an error with an HTTP status attached, so handlers can map
// service failures without inspecting concrete types.
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

// Validation builds the standard missing-field error, naming the field.
func Validation(field string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("%s is required", field),
		StatusCode: http.StatusBadRequest,
	}
}
