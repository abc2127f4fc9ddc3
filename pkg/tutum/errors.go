package tutum

import "fmt"

// The API fails two ways and callers are expected to treat them
// differently: an ApiError means the service understood the request
// and rejected it (bad input, unknown resource, illegal state
// transition) and retrying the same request will fail the same way. A
// RequestError means the call never completed (connection failure,
// timeout, 5xx, undecodable body) and retrying may succeed.

// ApiError is a well-formed rejection from the service. Message holds
// the server's own message, untouched.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("tutum: %s (HTTP %d)", e.Message, e.StatusCode)
}

// RequestError is a transport-level failure: the request could not be
// completed or the response could not be interpreted. Err holds the
// underlying cause when one exists.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tutum: request failed: %v", e.Err)
	}
	return fmt.Sprintf("tutum: request failed: %s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// newValidationError reports a client-side validation failure as a
// domain error so callers see the same kind they would get from the
// server's own validation.
func newValidationError(format string, args ...interface{}) *ApiError {
	return &ApiError{Message: fmt.Sprintf(format, args...)}
}
