package wasmbin

import "errors"

// Sentinel causes of a decoding failure.
var (
	ErrBadMagic           = errors.New("wasmbin: not a wasm module")
	ErrUnsupportedVersion = errors.New("wasmbin: unsupported binary version")
	ErrUnexpectedEnd      = errors.New("wasmbin: unexpected end of module")

	// ErrMalformed wraps a failure reported by the decoder for the module
	// body.
	ErrMalformed = errors.New("wasmbin: malformed module")
)

// Error is a module decoding failure.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
