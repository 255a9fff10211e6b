package atlas

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is wrapped by the RequestError returned when no API key is configured.
var ErrMissingAPIKey = errors.New("atlas api key is not configured")

// ErrMissingField is returned by Output and Meta when the response lacks the expected field.
var ErrMissingField = errors.New("field missing from atlas response")

const missingKeyGuidance = "you must set an Atlas API key before use, e.g. " +
	`atlas.NewClient(atlas.Config{APIKey: "YOUR_KEY_HERE"}) or ATLAS_API_KEY in the environment`

// RequestError reports client-side misuse or a 4xx answer from Atlas.
// StatusCode is zero for errors raised before any request was sent.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return "atlas request error: " + e.Message
	}
	return fmt.Sprintf("atlas request has an error (code %d): %s", e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ServerError reports a 5xx answer, a malformed body, or a non-OK status field.
type ServerError struct {
	StatusCode int
	Status     string
	Message    string

	// badStatus marks a present status field other than "OK", including "" and null.
	badStatus bool
}

func (e *ServerError) Error() string {
	switch {
	case e.badStatus || e.Status != "":
		return fmt.Sprintf("atlas returned a bad status (code %d, status %q): %s", e.StatusCode, e.Status, e.Message)
	case e.StatusCode >= 500:
		return fmt.Sprintf("atlas has errored (code %d): %s", e.StatusCode, e.Message)
	default:
		return "atlas server error: " + e.Message
	}
}

// IsRequestError reports whether err is or wraps a *RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsServerError reports whether err is or wraps a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
