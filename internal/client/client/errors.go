package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// RequestError is a non-2xx reply. Message is the body as sent by the backend.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// UserMessage returns the text to show for err: the backend's own words for
// a rejected request, a short description otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return strings.TrimSpace(re.Error())
	}
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Error()
	}
	return err.Error()
}
