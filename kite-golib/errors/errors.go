// Package errors collects the error helpers used across the code base, mostly
// thin wrappers of github.com/pkg/errors.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errorf is re-exported from fmt
var Errorf = fmt.Errorf

// New is an alias to Errorf
var New = Errorf

// WrapfOrNil prefixes err with a message, returning nil for a nil err
func WrapfOrNil(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, fmt.Sprintf(format, args...))
}

// Wrapf is WrapfOrNil for a non-nil err and Errorf otherwise, so it never returns nil
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return Errorf(format, args...)
	}
	return WrapfOrNil(err, format, args...)
}

// Cause is re-exported from github.com/pkg/errors
var Cause = errors.Cause

// Is is re-exported from github.com/pkg/errors
var Is = errors.Is
