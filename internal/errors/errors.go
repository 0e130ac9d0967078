// Package errors defines the error type carried from the backend boundary up
// to the handlers, which decide what the user gets to see.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorWithStatusCode pairs a user-presentable message with the HTTP status
// that caused it.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// FromBackend converts a non-success backend response into an error. The
// response body is deliberately not shown to users; status classes map to a
// generic per-action message.
func FromBackend(action string, statusCode int, body []byte) error {
	var message string
	switch statusCode {
	case http.StatusUnauthorized:
		message = "please log in to " + action
	case http.StatusForbidden:
		message = "you are not allowed to " + action
	default:
		message = "failed to " + action
	}
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}
