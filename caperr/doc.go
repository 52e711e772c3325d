// Package caperr defines the single error type returned by every public
// operation of the wascap packages.
//
// An *Error holds exactly one Kind. Kinds form a closed set: wrapping kinds
// carry a failure from another subsystem verbatim (JSON, cryptography,
// base64, text decoding, WebAssembly parsing, I/O), semantic kinds report
// token rules checked by wascap itself (expiry, issuer presence, module
// hash, ...).
//
// Callers classify failures with Kind, Code, or errors.Is:
//
//	if errors.Is(err, caperr.CodeExpiredToken) {
//		// re-issue
//	}
//
//	var e *caperr.Error
//	if errors.As(err, &e) {
//		switch k := e.Kind().(type) {
//		case caperr.Decode:
//			return fmt.Errorf("re-encode payload: %w", k.Err)
//		case caperr.Token:
//			return fmt.Errorf("rejected: %s", k.Message)
//		}
//	}
//
// Foreign errors enter the model through the From* constructors or Classify.
// Nothing in this package retries or recovers; that policy belongs to callers.
package caperr
