package extractor

import (
	"fmt"

	"invoicelens/internal/domain"
)

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindRequest       ErrorKind = "request"
	KindParse         ErrorKind = "parse"
)

// Error is returned by the extraction client and the provider factories.
// errors.Is matches it against the domain sentinel for its kind.
type Error struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConfiguration:
		return fmt.Sprintf("%s extractor not configured: %v", e.Provider, e.Err)
	case KindParse:
		return fmt.Sprintf("%s reply could not be parsed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the domain sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindConfiguration:
		return target == domain.ErrConfiguration
	case KindRequest:
		return target == domain.ErrRequestFailed
	case KindParse:
		return target == domain.ErrParseFailure
	}
	return false
}

// NewConfigurationError reports a missing credential or an unavailable model.
func NewConfigurationError(provider string, err error) *Error {
	return &Error{Kind: KindConfiguration, Provider: provider, Err: err}
}

// NewRequestError wraps a transport or API failure.
func NewRequestError(provider string, err error) *Error {
	return &Error{Kind: KindRequest, Provider: provider, Err: err}
}

// NewParseError reports a reply that holds no decodable JSON object.
func NewParseError(provider string, err error) *Error {
	return &Error{Kind: KindParse, Provider: provider, Err: err}
}
