package options

import (
	"errors"
	"fmt"
)

var (
	// ErrNameFormat indicates a malformed name spec: a short token that is
	// not a single alphabetic character, an empty long token, or too many
	// separators.
	ErrNameFormat = errors.New("options: malformed option name")
	// ErrNameConflict indicates two unrelated option types claiming the
	// same long or short name, or a refinement attempting to change the
	// name of the option it replaces.
	ErrNameConflict = errors.New("options: option name conflict")
	// ErrAmbiguousParent indicates a declared type refining more than one
	// already declared ancestor.
	ErrAmbiguousParent = errors.New("options: ambiguous parent option")
	// ErrNotDeclared indicates a lookup or set against a type with no
	// matching declared option.
	ErrNotDeclared = errors.New("options: option not declared")
	// ErrNoValue indicates a value request for an option with neither a
	// specified nor a default value.
	ErrNoValue = errors.New("options: option has no value")
	// ErrValidation indicates an option's validity predicate rejected its
	// current value.
	ErrValidation = errors.New("options: option value is invalid")
	// ErrParse indicates the parsed input referenced a name no declared
	// option recognizes.
	ErrParse = errors.New("options: parse failed")
)

// OpError describes a failed registry operation along with the option it
// concerns. It wraps one of the package sentinels so callers can branch
// via errors.Is while keeping the full context available through Error.
type OpError struct {
	Op     string
	Option string
	Base   error
	Err    error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Option == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Option, e.Err)
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the target matches either the sentinel or the
// wrapped error.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if errors.Is(e.Base, target) {
		return true
	}
	return errors.Is(e.Err, target)
}

func opError(op, option string, base error, format string, args ...any) error {
	return &OpError{
		Op:     op,
		Option: option,
		Base:   base,
		Err:    fmt.Errorf(format, args...),
	}
}
