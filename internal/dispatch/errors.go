package dispatch

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrMissingAPIKey     = errors.New("api key is not set")
	ErrMissingBaseURL    = errors.New("base url is not set")
	ErrMissingConnectors = errors.New("no connectors configured")
	ErrRemoteRejected    = errors.New("remote service rejected the task")
	ErrInvalidAuthHeader = errors.New("invalid header name")
)

// ConfigError is returned before any network activity when a required
// setting is absent or unusable.
type ConfigError struct {
	Setting string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Setting, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError wraps a failure to complete the HTTP exchange.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	// *url.Error already names the method and URL.
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx answer from the agent service. Detail is the
// service's own error message when one could be extracted, else the raw body.
type RemoteError struct {
	StatusCode int
	Status     string
	Detail     string
	Body       []byte
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("http_%d", e.StatusCode)
	}
	return fmt.Sprintf("http_%d: %s", e.StatusCode, e.Detail)
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemoteRejected }

// DecodeError is a 2xx answer whose body is not valid JSON.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
