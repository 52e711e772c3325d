package caperr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/encoding"

	"github.com/jonwraymond/wascap/internal/wasmbin"
)

func jsonSyntaxError() error {
	var v map[string]any
	return json.Unmarshal([]byte(`{"iss":`), &v)
}

func base64Error() error {
	_, err := base64.RawURLEncoding.DecodeString("!!not base64!!")
	return err
}

func wasmError() error {
	_, err := wasmbin.Parse([]byte("not wasm"))
	return err
}

func ioError() error {
	_, err := os.Open("/definitely/not/here.wasm")
	return err
}

func TestFrom_Lossless(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cause error
		conv  func(error) *Error
		code  Code
		kind  func(Kind) (error, bool)
	}{
		{"json", jsonSyntaxError(), FromJSON, CodeSerialize, func(k Kind) (error, bool) { v, ok := k.(Serialize); return v.Err, ok }},
		{"crypto", jwt.ErrEd25519Verification, FromCrypto, CodeEncryption, func(k Kind) (error, bool) { v, ok := k.(Encryption); return v.Err, ok }},
		{"base64", base64Error(), FromBase64, CodeDecode, func(k Kind) (error, bool) { v, ok := k.(Decode); return v.Err, ok }},
		{"utf8", encoding.ErrInvalidUTF8, FromUTF8, CodeUTF8, func(k Kind) (error, bool) { v, ok := k.(UTF8); return v.Err, ok }},
		{"wasm", wasmError(), FromWasm, CodeWasmElement, func(k Kind) (error, bool) { v, ok := k.(WasmElement); return v.Err, ok }},
		{"io", ioError(), FromIO, CodeIO, func(k Kind) (error, bool) { v, ok := k.(IO); return v.Err, ok }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.cause == nil {
				t.Fatal("test setup produced no cause")
			}

			e := tc.conv(tc.cause)
			if e.Code() != tc.code {
				t.Fatalf("Code() = %v, want %v", e.Code(), tc.code)
			}
			got, ok := tc.kind(e.Kind())
			if !ok {
				t.Fatalf("Kind() = %T", e.Kind())
			}
			if got != tc.cause {
				t.Errorf("payload = %v, want the original %v", got, tc.cause)
			}
			if e.Unwrap() != tc.cause || !errors.Is(e, tc.cause) {
				t.Error("cause not reachable through Unwrap")
			}

			if tc.conv(nil) != nil {
				t.Error("nil input produced an Error")
			}
		})
	}
}

func TestFrom_KeepsTypedCause(t *testing.T) {
	t.Parallel()

	var pathErr *fs.PathError
	if !errors.As(FromIO(ioError()), &pathErr) || pathErr.Path != "/definitely/not/here.wasm" {
		t.Errorf("PathError not preserved: %v", pathErr)
	}

	var corrupt base64.CorruptInputError
	if !errors.As(FromBase64(base64Error()), &corrupt) {
		t.Error("CorruptInputError not preserved")
	}

	var we *wasmbin.Error
	if !errors.As(FromWasm(wasmError()), &we) || !errors.Is(we, wasmbin.ErrBadMagic) {
		t.Errorf("wasmbin.Error not preserved: %v", we)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	existing := ModuleHashError()
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"existing error", existing, CodeInvalidModuleHash},
		{"wrapped existing error", fmt.Errorf("ctx: %w", existing), CodeInvalidModuleHash},
		{"json syntax", jsonSyntaxError(), CodeSerialize},
		{"json type", json.Unmarshal([]byte(`{"iat":"x"}`), &struct{ IAT int64 `json:"iat"` }{}), CodeSerialize},
		{"json marshal", func() error { _, err := json.Marshal(make(chan int)); return err }(), CodeSerialize},
		{"base64", base64Error(), CodeDecode},
		{"base64 inside jwt malformed", fmt.Errorf("%w: %w", jwt.ErrTokenMalformed, base64Error()), CodeDecode},
		{"json inside jwt malformed", fmt.Errorf("%w: %w", jwt.ErrTokenMalformed, jsonSyntaxError()), CodeSerialize},
		{"utf8", fmt.Errorf("decode: %w", encoding.ErrInvalidUTF8), CodeUTF8},
		{"wasm", wasmError(), CodeWasmElement},
		{"jwt expired", fmt.Errorf("%w: %w", jwt.ErrTokenInvalidClaims, jwt.ErrTokenExpired), CodeExpiredToken},
		{"jwt not yet valid", jwt.ErrTokenNotValidYet, CodeTokenTooEarly},
		{"signature", fmt.Errorf("%w: %w", jwt.ErrTokenSignatureInvalid, jwt.ErrEd25519Verification), CodeEncryption},
		{"key type", jwt.ErrInvalidKeyType, CodeEncryption},
		{"path error", ioError(), CodeIO},
		{"not exist", fs.ErrNotExist, CodeIO},
		{"short write", io.ErrShortWrite, CodeIO},
		{"link error", &os.LinkError{Op: "rename", Old: "a", New: "b", Err: fs.ErrPermission}, CodeIO},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, ok := Classify(tc.err)
			if !ok {
				t.Fatalf("Classify(%v) not recognized", tc.err)
			}
			if e.Code() != tc.code {
				t.Errorf("Code() = %v, want %v", e.Code(), tc.code)
			}
		})
	}
}

func TestClassify_ReturnsExistingHandle(t *testing.T) {
	t.Parallel()

	existing := TokenError("x")
	e, ok := Classify(fmt.Errorf("wrap: %w", existing))
	if !ok || e != existing {
		t.Errorf("Classify returned %p, want %p", e, existing)
	}
}

func TestClassify_Unknown(t *testing.T) {
	t.Parallel()

	for _, err := range []error{nil, errors.New("boom"), jwt.ErrTokenMalformed, io.EOF} {
		if e, ok := Classify(err); ok || e != nil {
			t.Errorf("Classify(%v) = %v, %v; want nil, false", err, e, ok)
		}
	}
}

// A malformed base64 payload is a Decode failure, never folded into Token.
func TestMalformedBase64_IsDecode(t *testing.T) {
	t.Parallel()

	e, ok := Classify(base64Error())
	if !ok {
		t.Fatal("not classified")
	}
	if _, isToken := e.Kind().(Token); isToken {
		t.Fatal("classified as Token")
	}
	if !errors.Is(e, CodeDecode) {
		t.Errorf("Code() = %v, want decode", e.Code())
	}
}
