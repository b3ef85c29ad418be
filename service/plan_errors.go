package service

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindConfiguration     ErrorKind = "configuration"
	KindService           ErrorKind = "service"
	KindMalformedResponse ErrorKind = "malformed_response"
)

var (
	ErrConfiguration     = errors.New("ai credential is not configured")
	ErrService           = errors.New("ai service call failed")
	ErrMalformedResponse = errors.New("ai response is malformed")
)

const (
	msgNotConfigured    = "API key is not configured."
	msgGenerationFailed = "Failed to generate a repayment plan. The AI may be unavailable right now."
)

// PlanError is the failure of one repayment plan request. errors.Is matches
// it against ErrConfiguration, ErrService or ErrMalformedResponse by Kind.
type PlanError struct {
	Kind ErrorKind
	Err  error
}

func (e *PlanError) sentinel() error {
	switch e.Kind {
	case KindConfiguration:
		return ErrConfiguration
	case KindMalformedResponse:
		return ErrMalformedResponse
	default:
		return ErrService
	}
}

func (e *PlanError) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

func (e *PlanError) Is(target error) bool {
	return target == e.sentinel()
}

// UserMessage is the text shown to users; the cause stays in the logs.
func (e *PlanError) UserMessage() string {
	if e.Kind == KindConfiguration {
		return msgNotConfigured
	}
	return msgGenerationFailed
}

func malformed(format string, args ...any) error {
	return &PlanError{Kind: KindMalformedResponse, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of a plan failure, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// UserMessage maps any plan failure to its user-facing text.
func UserMessage(err error) string {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.UserMessage()
	}
	return msgGenerationFailed
}

// asPlanError classifies errors coming back from a PlanGenerator that did not
// already report a kind.
func asPlanError(err error) error {
	if err == nil || KindOf(err) != "" {
		return err
	}
	return &PlanError{Kind: KindService, Err: err}
}
