package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a request that resolved to zero usable records.
var ErrNotFound = errors.New("not found")

// DataUnavailableError reports a CSV resource that could not be fetched.
type DataUnavailableError struct {
	Resource   string
	StatusCode int
	Status     string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data request for %s failed: %d %s", e.Resource, e.StatusCode, e.Status)
}
