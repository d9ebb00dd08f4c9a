package cdek

import (
	"errors"
	"fmt"

	"github.com/egorka-gh/cdek/xmlable"
)

// Sentinel errors for broad classification, match them with errors.Is.
var (
	ErrConfiguration = errors.New("cdek: configuration error")
	ErrTransport     = errors.New("cdek: transport error")
	ErrParse         = errors.New("cdek: parse error")
)

// ErrorKind is a coarse-grained categorization of fatal errors.
// Carrier per-order errors are not fatal, they are reported in Response.
type ErrorKind string

const (
	//KindUnknown anything else
	KindUnknown ErrorKind = "unknown"
	//KindSchema missing or unknown entity field, fix the caller
	KindSchema ErrorKind = "schema"
	//KindConfiguration order can not be sent as is, detected before any network call
	KindConfiguration ErrorKind = "configuration"
	//KindTransport network or http failure, may be retried
	KindTransport ErrorKind = "transport"
	//KindParse carrier response can not be read
	KindParse ErrorKind = "parse"
)

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, xmlable.ErrSchema):
		return KindSchema
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrTransport):
		return KindTransport
	}
	return KindUnknown
}

// ConfigurationError reports request parameters the carrier would reject.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "cdek: " + e.Msg
}

// Is implements errors.Is.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// TransportError wraps network and http level failures.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cdek: %s: http status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("cdek: %s: %v", e.Op, e.Err)
}

// Unwrap returns underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Retryable reports whether repeating the request may help.
// Client side http errors (4xx) are permanent.
func (e *TransportError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// ParseError wraps malformed response failures.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cdek: %s: %v", e.Op, e.Err)
}

// Unwrap returns underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
