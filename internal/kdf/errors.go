package kdf

import "fmt"

// ConfigurationError reports scrypt parameters that can never be used.
// Retrying with the same parameters will fail the same way.
type ConfigurationError struct {
	Param  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("scrypt: invalid %s=%d: %s", e.Param, e.Value, e.Reason)
}

// ResourceExhaustionError reports a working set larger than the caller's
// memory budget.
type ResourceExhaustionError struct {
	Required uint64
	Limit    uint64
}

func (e *ResourceExhaustionError) Error() string {
	return fmt.Sprintf("scrypt: working set of %d bytes exceeds limit of %d bytes", e.Required, e.Limit)
}
