package caperr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/encoding"

	"github.com/jonwraymond/wascap/internal/wasmbin"
)

// FromJSON wraps a JSON encoding or decoding failure.
func FromJSON(err error) *Error { return wrap(err, func(err error) Kind { return Serialize{Err: err} }) }

// FromCrypto wraps a key generation, signing, or verification failure.
func FromCrypto(err error) *Error { return wrap(err, func(err error) Kind { return Encryption{Err: err} }) }

// FromBase64 wraps a base64 decoding failure.
func FromBase64(err error) *Error { return wrap(err, func(err error) Kind { return Decode{Err: err} }) }

// FromUTF8 wraps a text decoding failure.
func FromUTF8(err error) *Error { return wrap(err, func(err error) Kind { return UTF8{Err: err} }) }

// FromWasm wraps a WebAssembly binary parsing failure.
func FromWasm(err error) *Error { return wrap(err, func(err error) Kind { return WasmElement{Err: err} }) }

// FromIO wraps a read or write failure.
func FromIO(err error) *Error { return wrap(err, func(err error) Kind { return IO{Err: err} }) }

// wrap is total: any non-nil err becomes an Error holding err unchanged.
func wrap(err error, kind func(error) Kind) *Error {
	if err == nil {
		return nil
	}
	return newError(kind(err))
}

// Classify maps err onto the taxonomy by inspecting its chain.
//
// An *Error anywhere in the chain is returned as is. Otherwise the first
// matching foreign family wins, and the whole of err is kept as the payload.
// Classify reports false for nil and for errors it does not recognize; it
// never invents a category.
func Classify(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}

	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	// Ordered from most to least specific: jwt wraps base64 and JSON
	// failures inside its own malformed-token errors.
	switch {
	case isWasm(err):
		return FromWasm(err), true
	case errors.Is(err, encoding.ErrInvalidUTF8):
		return FromUTF8(err), true
	case isJSON(err):
		return FromJSON(err), true
	case isBase64(err):
		return FromBase64(err), true
	case errors.Is(err, jwt.ErrTokenExpired):
		return ExpiredError(), true
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return TooEarlyError(), true
	case isCrypto(err):
		return FromCrypto(err), true
	case isIO(err):
		return FromIO(err), true
	}
	return nil, false
}

func isWasm(err error) bool {
	var we *wasmbin.Error
	return errors.As(err, &we)
}

func isJSON(err error) bool {
	var (
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
		unmarshalErr   *json.InvalidUnmarshalError
		unsupportedErr *json.UnsupportedTypeError
		valueErr       *json.UnsupportedValueError
		marshalerErr   *json.MarshalerError
	)
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &unmarshalErr) ||
		errors.As(err, &unsupportedErr) ||
		errors.As(err, &valueErr) ||
		errors.As(err, &marshalerErr)
}

func isBase64(err error) bool {
	var ce base64.CorruptInputError
	return errors.As(err, &ce)
}

var cryptoErrors = []error{
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrEd25519Verification,
	jwt.ErrInvalidKey,
	jwt.ErrInvalidKeyType,
	jwt.ErrHashUnavailable,
}

func isCrypto(err error) bool {
	for _, target := range cryptoErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var ioErrors = []error{
	fs.ErrNotExist,
	fs.ErrExist,
	fs.ErrPermission,
	fs.ErrClosed,
	io.ErrClosedPipe,
	io.ErrShortWrite,
}

func isIO(err error) bool {
	var (
		pathErr    *fs.PathError
		linkErr    *os.LinkError
		syscallErr *os.SyscallError
	)
	if errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &syscallErr) {
		return true
	}
	for _, target := range ioErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
