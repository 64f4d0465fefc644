package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/orchestrator"
	"github.com/goliatone/go-phoenixgen/pkg/prompt"
	"github.com/goliatone/go-phoenixgen/pkg/render"
)

// Exit codes for phoenixgen
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitDeviceNotFound = 2
	ExitConfigError    = 3
	ExitRenderError    = 4
	ExitAborted        = 5
)

// PhoenixError is the base error type for the phoenixgen CLI
type PhoenixError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PhoenixError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PhoenixError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PhoenixError) ExitCode() int {
	return e.Code
}

// New creates a new PhoenixError
func New(code int, message string) *PhoenixError {
	return &PhoenixError{Code: code, Message: message}
}

// Wrap wraps an existing error with a PhoenixError
func Wrap(code int, message string, cause error) *PhoenixError {
	return &PhoenixError{Code: code, Message: message, Cause: cause}
}

// DeviceNotFound returns an error for an unknown device key
func DeviceNotFound(key string, cause error) *PhoenixError {
	return Wrap(ExitDeviceNotFound, fmt.Sprintf("device not found: %s", key), cause)
}

// ConfigError returns an error for unreadable or invalid configuration
func ConfigError(message string, cause error) *PhoenixError {
	return Wrap(ExitConfigError, message, cause)
}

// RenderError returns an error for renderer failures
func RenderError(message string, cause error) *PhoenixError {
	return Wrap(ExitRenderError, message, cause)
}

// Aborted returns an error for input cancelled by the user
func Aborted(cause error) *PhoenixError {
	return Wrap(ExitAborted, "aborted", cause)
}

// ValidationError returns an error for flag or argument mistakes
func ValidationError(message string) *PhoenixError {
	return New(ExitGeneralError, message)
}

// Classify maps errors raised by the generation pipeline onto a PhoenixError
// carrying the matching exit code. Errors that already are PhoenixErrors and
// nil pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var phoenixErr *PhoenixError
	if errors.As(err, &phoenixErr) {
		return err
	}
	switch {
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		return Aborted(err)
	case errors.Is(err, orchestrator.ErrDeviceNotFound):
		return Wrap(ExitDeviceNotFound, "device not found", err)
	case errors.Is(err, orchestrator.ErrInvalidConfig),
		errors.Is(err, config.ErrUnsupportedValue),
		errors.Is(err, config.ErrNonFinite),
		errors.Is(err, config.ErrPathConflict):
		return ConfigError("invalid configuration", err)
	case errors.Is(err, render.ErrRendererNotFound):
		return RenderError("renderer not found", err)
	}
	return err
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var phoenixErr *PhoenixError
	if errors.As(err, &phoenixErr) {
		return phoenixErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
