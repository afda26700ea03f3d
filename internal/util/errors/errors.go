package errors

// Errors shared by the route and footprint services.
// Domain errors describe input that cannot produce a route and are
// recoverable: callers turn them into an empty route or a user prompt.
// A contract violation is a programming error and is reported loudly.

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrUnknown         = pkgerrors.New("unknown error")
	ErrInvalidArgument = pkgerrors.New("invalid argument")

	ErrInvalidGeometry   = pkgerrors.New("invalid geometry")
	ErrInvalidParameters = pkgerrors.New("invalid parameters")
	ErrDegenerateOffset  = pkgerrors.New("degenerate offset")

	ErrContractViolation = pkgerrors.New("contract violation")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted reason.
func InvalidArgument(format string, args ...interface{}) error {
	return pkgerrors.Wrapf(ErrInvalidArgument, format, args...)
}

// InvalidGeometry wraps ErrInvalidGeometry with a formatted reason.
func InvalidGeometry(format string, args ...interface{}) error {
	return pkgerrors.Wrapf(ErrInvalidGeometry, format, args...)
}

// InvalidParameters wraps ErrInvalidParameters with a formatted reason.
func InvalidParameters(format string, args ...interface{}) error {
	return pkgerrors.Wrapf(ErrInvalidParameters, format, args...)
}

// DegenerateOffset wraps ErrDegenerateOffset with a formatted reason.
func DegenerateOffset(format string, args ...interface{}) error {
	return pkgerrors.Wrapf(ErrDegenerateOffset, format, args...)
}

// ContractViolation wraps ErrContractViolation with a formatted reason.
func ContractViolation(format string, args ...interface{}) error {
	return pkgerrors.Wrapf(ErrContractViolation, format, args...)
}

// IsDomain reports whether err is one of the recoverable domain errors.
func IsDomain(err error) bool {
	return pkgerrors.Is(err, ErrInvalidGeometry) ||
		pkgerrors.Is(err, ErrInvalidParameters) ||
		pkgerrors.Is(err, ErrDegenerateOffset)
}

// Kind returns the sentinel error that err wraps, or ErrUnknown.
func Kind(err error) error {
	for _, sentinel := range []error{
		ErrInvalidArgument,
		ErrInvalidGeometry,
		ErrInvalidParameters,
		ErrDegenerateOffset,
		ErrContractViolation,
	} {
		if pkgerrors.Is(err, sentinel) {
			return sentinel
		}
	}
	return ErrUnknown
}

// Must panics with a contract violation when cond is false and strict is set.
// Otherwise it returns the violation so the caller can report it.
func Must(strict, cond bool, format string, args ...interface{}) error {
	if cond {
		return nil
	}
	err := ContractViolation(format, args...)
	if strict {
		panic(fmt.Sprintf("%+v", err))
	}
	return err
}
