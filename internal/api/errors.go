package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError carries the HTTP status of a failed server call so callers can
// distinguish auth rejections from other failures and surface the message.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// IsAuthError reports whether err is a server rejection of the current token.
func IsAuthError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
}

// ErrQuickConnectExpired is returned when the pairing code was never approved
// within the polling window.
var ErrQuickConnectExpired = errors.New("quick connect code expired before it was approved")
