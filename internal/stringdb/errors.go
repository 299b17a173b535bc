package stringdb

import "fmt"

// ValidationError reports a bad or missing caller-supplied parameter. It is
// always returned before any network call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteError reports a failed exchange with the STRING API: either a
// non-success HTTP status or a transport-level failure.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("string api request failed: %v", e.Err)
	}
	return fmt.Sprintf("string api status %s", e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not match the requested
// output format.
type ParseError struct {
	Format OutputFormat
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad %s response: %s", e.Format, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
