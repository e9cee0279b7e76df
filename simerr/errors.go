// Package simerr defines the error values shared by the generators,
// transforms and statistical tests.
package simerr

import (
	"errors"
	"fmt"
)

// ErrConfig matches every *ConfigError with errors.Is.
var ErrConfig = errors.New("invalid configuration")

// ErrNoCriticalValue is returned when a critical value table has no entry
// for the requested degrees of freedom. It is a reportable outcome, not a
// failure of the test that asked for it.
var ErrNoCriticalValue = errors.New("no critical value available")

// ConfigError reports an invalid parameter. It is only ever returned by
// constructors and entry points, before any value is produced.
type ConfigError struct {
	Op     string // operation that rejected the parameter, e.g. "source.NewLCG"
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Op, e.Param, e.Reason)
}

// Is makes errors.Is(err, ErrConfig) true for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Configf builds a ConfigError with a formatted reason.
func Configf(op, param, format string, args ...any) *ConfigError {
	return &ConfigError{Op: op, Param: param, Reason: fmt.Sprintf(format, args...)}
}

// DomainError is the panic value used when a logarithm would be taken of a
// non-positive uniform. Callers are expected to clamp beforehand, so seeing
// one means a call site is missing its clamp.
type DomainError struct {
	Op    string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: value %v outside the domain of log", e.Op, e.Value)
}
