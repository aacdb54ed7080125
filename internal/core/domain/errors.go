package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrDescriptorMissing indicates a dataset directory lacks its
	// <id>.dataset.json file. The dataset cannot be synced.
	ErrDescriptorMissing = errors.New("dataset descriptor not found")

	// ErrDatasetNotFound indicates a requested dataset identifier matched
	// no directory under any configured import root.
	ErrDatasetNotFound = errors.New("dataset not found in any import directory")

	// ErrNoImportDirs indicates the configuration names no import roots.
	ErrNoImportDirs = errors.New("no import directories configured")

	// ErrNoBaseURL indicates the configuration names no API base URL.
	ErrNoBaseURL = errors.New("no API base URL configured")

	// ErrNoCredentials indicates the admin credentials are incomplete.
	ErrNoCredentials = errors.New("admin credentials not configured")
)

// APIError is a non-success response from the registry API.
// Message is taken from the JSON body's "message" field, or the raw body
// text when the body is not valid JSON. Details carries the registry's
// nested validation output when supplied (upload responses).
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the registry's error message.
	Message string

	// Details is optional structured validation output.
	Details any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registry: API error %d", e.Status)
	}
	return fmt.Sprintf("registry: API error %d: %s", e.Status, e.Message)
}
