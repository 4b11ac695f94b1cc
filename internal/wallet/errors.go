package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrNativeCall marks failures raised by the wallet engine.
	ErrNativeCall = errors.New("native call failed")
	// ErrInvalidInput marks input rejected before the engine is called.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoWallet is returned when an operation needs an open wallet and none is.
	ErrNoWallet = errors.New("no open wallet")
)

// NativeCallError wraps an engine failure with the name of the call.
type NativeCallError struct {
	Op  string
	Err error
}

func (e *NativeCallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NativeCallError) Unwrap() []error {
	return []error{ErrNativeCall, e.Err}
}

// InputError names the field that failed validation.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func nativeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var nce *NativeCallError
	if errors.As(err, &nce) {
		return err
	}
	return &NativeCallError{Op: op, Err: err}
}
