package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification of a failed exchange.
var (
	// ErrConfiguration marks an invalid combination of request options.
	// It is always detected before any I/O takes place.
	ErrConfiguration = errors.New("configuration error")

	// ErrConnection marks an unreachable, refused or reset endpoint.
	ErrConnection = errors.New("connection error")

	// ErrProtocol marks malformed or truncated wire data in either direction.
	ErrProtocol = errors.New("protocol error")

	// ErrApplication marks a well-formed reply carrying a non-zero status.
	ErrApplication = errors.New("application error")
)

// ErrArtifactNotFound is returned when an artifact store has nothing under a name.
var ErrArtifactNotFound = errors.New("artifact not found")

// ErrorKind is a coarse-grained categorization used for exit codes and metric labels.
type ErrorKind string

const (
	KindNone          ErrorKind = "ok"
	KindConfiguration ErrorKind = "configuration"
	KindConnection    ErrorKind = "connection"
	KindProtocol      ErrorKind = "protocol"
	KindApplication   ErrorKind = "application"
	KindInternal      ErrorKind = "internal"
)

// ConfigurationError represents an invalid request option.
type ConfigurationError struct {
	Key    string // Option name
	Reason string // Human-readable reason for failure
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Key, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ConnectionError wraps a transport failure with the endpoint and the operation that failed.
type ConnectionError struct {
	Endpoint string
	Op       string // "dial", "write", "read"
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrConnection, e.Op, e.Endpoint, e.Err)
}

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError reports a framing violation while encoding or decoding a message.
type ProtocolError struct {
	Field  string // Header or body field being processed
	Reason string
	Err    error // Optional cause (e.g. io.ErrUnexpectedEOF)
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrProtocol, e.Reason)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %q: %s", ErrProtocol, e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

func (e *ProtocolError) Unwrap() error { return e.Err }

// ApplicationError is the error view of a reply whose status is non-zero.
// It is never returned by the transport; callers obtain it from Reply.Err.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("[%s] [status=%d]", e.Message, e.Status)
}

func (e *ApplicationError) Is(target error) bool { return target == ErrApplication }

// KindOf classifies err into one of the ErrorKind values.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrProtocol):
		// Checked first: a ProtocolError may wrap the ConfigurationError of a decoded request.
		return KindProtocol
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrConnection):
		return KindConnection
	case errors.Is(err, ErrApplication):
		return KindApplication
	default:
		return KindInternal
	}
}
