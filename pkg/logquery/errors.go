package logquery

import (
	"fmt"
	"net/http"
	"strings"
)

// FetchError reports a failed fetch for one source.
// No lines are returned alongside it.
type FetchError struct {
	Source      string
	Identifiers []string
	Err         error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch logs from %s for %s: %v", e.Source, strings.Join(e.Identifiers, ", "), e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the log API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("log query API returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
