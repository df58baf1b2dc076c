package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidForm is returned by FormView.Submit when client-side
// validation fails. The service is not called in that case.
var ErrInvalidForm = errors.New("invalid category form")

// ErrSubmitInProgress is returned when Submit is called again before the
// previous submission has failed.
var ErrSubmitInProgress = errors.New("category form is already being submitted")

// APIError is a non-2xx answer from the categories backend.
type APIError struct {
	StatusCode int
	Body       []byte
	// Errors holds the "errors" array of the body, when it has one.
	Errors []string
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	var parsed struct {
		Errors []string `json:"errors"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		e.Errors = parsed.Errors
	}
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("categories api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unprocessable reports a structured rejection (HTTP 422) that carries
// user-facing messages.
func (e *APIError) Unprocessable() bool {
	return e.StatusCode == http.StatusUnprocessableEntity && e.Errors != nil
}
