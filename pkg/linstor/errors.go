package linstor

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoListResponse is returned by typed list accessors when the
	// controller sent no result at all.
	ErrNoListResponse = errors.New("no list response received")

	// ErrNotConnected is the cause of a NetworkError raised by a call made
	// before Connect succeeded.
	ErrNotConnected = errors.New("not connected")
)

// NetworkError reports that a connection could not be established or broke
// while talking to the controller. The failover wrapper collects one cause
// per endpoint.
type NetworkError struct {
	Endpoint string
	Msg      string
	Causes   []error
}

func newNetworkError(endpoint, msg string, causes ...error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Msg: msg, Causes: causes}
}

func (e *NetworkError) Error() string {
	if len(e.Causes) == 0 {
		return e.Msg
	}
	parts := make([]string, len(e.Causes))
	for i, c := range e.Causes {
		parts[i] = c.Error()
	}
	return e.Msg + ": " + strings.Join(parts, "; ")
}

// Unwrap exposes every cause to errors.Is and errors.As.
func (e *NetworkError) Unwrap() []error {
	return e.Causes
}

// TimeoutError reports that no response arrived within the configured timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("socket timeout, no data received for more than %s", e.Timeout)
}

// MalformedResponseError reports a payload that could not be decoded.
// Status is zero when the failure is not tied to an HTTP status.
type MalformedResponseError struct {
	Path   string
	Status int
	Err    error
}

func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("unable to parse REST json data: %v; request-uri: %s", e.Err, e.Path)
	if e.Status != 0 {
		msg += fmt.Sprintf("; status: %d", e.Status)
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// APICallError carries a status reply that signaled an error, or a message
// describing an HTTP failure that came without a body.
type APICallError struct {
	Response *APICallResponse
	Msg      string
}

func (e *APICallError) Error() string {
	if e.Response != nil {
		return e.Response.String()
	}
	return e.Msg
}

// ArgumentError reports a caller supplied value rejected before any I/O.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

func argumentErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// VersionError reports that the controller REST API version is not usable
// for the connection or for a single operation.
type VersionError struct {
	ServerVersion string
	Required      string
	Msg           string
}

func (e *VersionError) Error() string {
	return e.Msg
}
