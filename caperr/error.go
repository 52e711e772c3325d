package caperr

import "fmt"

// Error is the opaque failure handle returned by wascap operations.
//
// An Error owns its Kind exclusively and may be handed from one goroutine to
// another. It is not safe for concurrent use: Kind, Code and Error must not
// run concurrently with IntoKind on the same Error. An Error is only ever
// built by the constructors in this package.
type Error struct {
	kind Kind
}

func newError(k Kind) *Error {
	return &Error{kind: k}
}

// Kind returns the contained kind without consuming the Error.
// It returns nil once IntoKind has been called.
func (e *Error) Kind() Kind {
	if e == nil {
		return nil
	}
	return e.kind
}

// IntoKind consumes the Error and returns its kind. The Error is left empty:
// later calls to Kind return nil and Code returns the zero Code.
func (e *Error) IntoKind() Kind {
	if e == nil {
		return nil
	}
	k := e.kind
	e.kind = nil
	return k
}

// Code returns the discriminant of the contained kind, or the zero Code if
// the kind has been taken.
func (e *Error) Code() Code {
	if e == nil || e.kind == nil {
		return 0
	}
	return e.kind.Code()
}

// Error implements error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch k := e.kind.(type) {
	case Serialize:
		return fmt.Sprintf("wascap: serialization failed: %v", k.Err)
	case Encryption:
		return fmt.Sprintf("wascap: cryptographic operation failed: %v", k.Err)
	case Decode:
		return fmt.Sprintf("wascap: base64 decoding failed: %v", k.Err)
	case UTF8:
		return fmt.Sprintf("wascap: invalid UTF-8 text: %v", k.Err)
	case Token:
		return "wascap: invalid token: " + k.Message
	case InvalidCapability:
		return "wascap: invalid capability"
	case WasmElement:
		return fmt.Sprintf("wascap: malformed wasm module: %v", k.Err)
	case IO:
		return fmt.Sprintf("wascap: i/o failure: %v", k.Err)
	case InvalidModuleHash:
		return "wascap: module hash does not match token"
	case ExpiredToken:
		return "wascap: token has expired"
	case TokenTooEarly:
		return "wascap: token cannot be used yet"
	case InvalidAlgorithm:
		return "wascap: invalid signing algorithm"
	case MissingIssuer:
		return "wascap: token has no issuer"
	case MissingSubject:
		return "wascap: token has no subject"
	case nil:
		return "wascap: error kind already taken"
	}
	return fmt.Sprintf("wascap: %T", e.kind)
}

// Unwrap returns the foreign error held by a wrapping kind.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return cause(e.kind)
}

// Is reports whether target is the Code of e.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && e.Code() == c && c.Valid()
}

// TokenError returns an Error for a token rule violation described by msg.
func TokenError(msg string) *Error { return newError(Token{Message: msg}) }

// Tokenf is TokenError with fmt.Sprintf formatting.
func Tokenf(format string, args ...any) *Error {
	return newError(Token{Message: fmt.Sprintf(format, args...)})
}

// CapabilityError returns an InvalidCapability Error.
func CapabilityError() *Error { return newError(InvalidCapability{}) }

// ModuleHashError returns an InvalidModuleHash Error.
func ModuleHashError() *Error { return newError(InvalidModuleHash{}) }

// ExpiredError returns an ExpiredToken Error.
func ExpiredError() *Error { return newError(ExpiredToken{}) }

// TooEarlyError returns a TokenTooEarly Error.
func TooEarlyError() *Error { return newError(TokenTooEarly{}) }

// AlgorithmError returns an InvalidAlgorithm Error.
func AlgorithmError() *Error { return newError(InvalidAlgorithm{}) }

// MissingIssuerError returns a MissingIssuer Error.
func MissingIssuerError() *Error { return newError(MissingIssuer{}) }

// MissingSubjectError returns a MissingSubject Error.
func MissingSubjectError() *Error { return newError(MissingSubject{}) }
