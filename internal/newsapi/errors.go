package newsapi

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means the response decoded but lacked the expected
// articles list (or one of the two parse stages failed on valid transport).
var ErrMalformedResponse = errors.New("malformed response: no articles list")

// NetworkError is a transport-level failure: the request never produced a
// usable response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage is the message shown to the reader for this failure.
func (e *NetworkError) UserMessage() string {
	return "Network error. Please check your internet connection."
}

// RemoteAPIError means the remote side answered with an error: a non-success
// HTTP status from the relay or an error status inside the API payload.
// Status is zero when only the payload signalled the error.
type RemoteAPIError struct {
	Status  int
	Message string
}

func (e *RemoteAPIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote api error: %s", e.Message)
	}
	return fmt.Sprintf("remote api error (%d): %s", e.Status, e.Message)
}

// UserMessage specializes the well-known NewsAPI status codes.
func (e *RemoteAPIError) UserMessage() string {
	switch e.Status {
	case 401:
		return "Invalid API key. Please check your configuration."
	case 429:
		return "Too many requests. Please try again later."
	case 426:
		return "API upgrade required. Please check your API plan."
	case 0:
		if e.Message != "" {
			return e.Message
		}
		return "The news service reported an error."
	default:
		msg := e.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return fmt.Sprintf("API Error (%d): %s", e.Status, msg)
	}
}

// UserMessage maps any pipeline error to its user-facing message.
func UserMessage(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.UserMessage()
	}
	var apiErr *RemoteAPIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if errors.Is(err, ErrMalformedResponse) {
		return "Invalid response format: No articles found."
	}
	return "Failed to load news articles."
}
