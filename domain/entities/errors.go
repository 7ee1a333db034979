package entities

import "fmt"

// CaptureError means the display could not be captured. It is fatal to the
// session: without a screen there is no further progress to make.
type CaptureError struct {
	Cause error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("screen capture failed: %v", e.Cause)
}

func (e *CaptureError) Unwrap() error { return e.Cause }

// ConfigurationError means a startup resource is missing or malformed. It is
// fatal before the loop starts and always names the offending resource.
type ConfigurationError struct {
	Resource string
	Cause    error
}

func (e *ConfigurationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("invalid configuration: %s", e.Resource)
	}
	return fmt.Sprintf("invalid configuration: %s: %v", e.Resource, e.Cause)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// InjectionError means a click or keystroke was rejected by the operating
// environment. A single occurrence is a skip, not a session failure.
type InjectionError struct {
	Action string
	Cause  error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("input injection failed for %s: %v", e.Action, e.Cause)
}

func (e *InjectionError) Unwrap() error { return e.Cause }
