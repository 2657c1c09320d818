package domain

import "fmt"

// Validation messages returned to the caller with a 400.
const (
	MsgInvalidJSON     = "Invalid JSON in request body"
	MsgEmptyBody       = "Request body is empty"
	MsgInvalidText     = "Text field must be a non-empty string"
	MsgUnsupportedPair = "Unsupported language pair"
	MsgInternal        = "Internal server error"
)

// ValidationError reports a request the handler rejects before calling the provider.
type ValidationError struct {
	Message string
	// Syntax is set when the body could not be decoded at all.
	Syntax bool
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// MissingFieldError builds the error for an absent required field.
func MissingFieldError(field string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("Missing required field: %s", field)}
}

// ProviderErrorKind tags the outcome of a failed provider call.
type ProviderErrorKind int

const (
	// KindOther covers transient, service, network and unknown faults.
	KindOther ProviderErrorKind = iota
	KindUnsupportedPair
	KindInvalidRequest
)

func (k ProviderErrorKind) String() string {
	switch k {
	case KindUnsupportedPair:
		return "unsupported_pair"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "other"
	}
}

// ProviderError is a classified failure from the translation provider.
type ProviderError struct {
	Kind    ProviderErrorKind
	Message string
	// Code is the provider's error code, when it reported one.
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("translate %s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("translate %s: %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
