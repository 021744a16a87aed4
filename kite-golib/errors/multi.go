package errors

import (
	"strings"
)

// Errors is a non-empty list of errors. A nil Errors means no error, so callers
// can compare against nil as usual.
type Errors interface {
	error
	// Slice returns a copy of the underlying (non-nil) errors.
	Slice() []error
	// Len is always > 0.
	Len() int

	raw() []error
}

type errorList []error

func (m errorList) raw() []error {
	return []error(m)
}

func (m errorList) Slice() []error {
	return append([]error(nil), m...)
}

func (m errorList) Len() int {
	return len(m)
}

func (m errorList) Error() string {
	parts := make([]string, 0, len(m))
	for _, err := range m {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

// Append adds err (which may itself be an Errors) to errs. Nil errors are dropped.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}
	var list errorList
	if errs != nil {
		list = append(list, errs.raw()...)
	}
	if multi, ok := err.(Errors); ok {
		return append(list, multi.raw()...)
	}
	return append(list, err)
}

// Combine merges e and f into a single error, nil if both are nil
func Combine(e, f error) error {
	switch {
	case e == nil:
		return f
	case f == nil:
		return e
	}
	var errs Errors
	errs = Append(errs, e)
	return Append(errs, f)
}
