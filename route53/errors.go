package route53

import "fmt"

// ConfigurationError reports a Config that cannot produce a signable
// request: missing credentials or an unrecognized response format.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "route53: configuration error: " + e.Reason
}

// ValidationError reports request input rejected before any network call:
// an unknown action or a missing required parameter.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "route53: validation error: " + e.Reason
}

// RemoteError is a non-success response from the API endpoint. Message
// holds the <Error><Message> text from the error envelope, or the raw
// response body when the envelope is absent or debug mode is on.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("route53: remote error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError wraps a network-level failure from the HTTP client or the
// time source. Nothing is retried; the failure surfaces to the caller.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "route53: transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
