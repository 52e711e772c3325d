package caperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// kindFor builds one Error per code so every variant can be exercised.
func kindFor(c Code) *Error {
	cause := errors.New("cause")
	switch c {
	case CodeSerialize:
		return FromJSON(cause)
	case CodeEncryption:
		return FromCrypto(cause)
	case CodeDecode:
		return FromBase64(cause)
	case CodeUTF8:
		return FromUTF8(cause)
	case CodeToken:
		return TokenError("rule")
	case CodeInvalidCapability:
		return CapabilityError()
	case CodeWasmElement:
		return FromWasm(cause)
	case CodeIO:
		return FromIO(cause)
	case CodeInvalidModuleHash:
		return ModuleHashError()
	case CodeExpiredToken:
		return ExpiredError()
	case CodeTokenTooEarly:
		return TooEarlyError()
	case CodeInvalidAlgorithm:
		return AlgorithmError()
	case CodeMissingIssuer:
		return MissingIssuerError()
	case CodeMissingSubject:
		return MissingSubjectError()
	}
	return nil
}

func TestCodes_Exhaustive(t *testing.T) {
	t.Parallel()

	codes := Codes()
	if len(codes) != 14 {
		t.Fatalf("expected 14 codes, got %d", len(codes))
	}

	seen := make(map[string]bool)
	for _, c := range codes {
		e := kindFor(c)
		if e == nil {
			t.Fatalf("no constructor exercises %v", c)
		}

		// No default: a new variant without a case fails the count below.
		matched := 0
		switch e.Kind().(type) {
		case Serialize:
			matched++
		case Encryption:
			matched++
		case Decode:
			matched++
		case UTF8:
			matched++
		case Token:
			matched++
		case InvalidCapability:
			matched++
		case WasmElement:
			matched++
		case IO:
			matched++
		case InvalidModuleHash:
			matched++
		case ExpiredToken:
			matched++
		case TokenTooEarly:
			matched++
		case InvalidAlgorithm:
			matched++
		case MissingIssuer:
			matched++
		case MissingSubject:
			matched++
		}
		if matched != 1 {
			t.Errorf("%v: kind %T not covered by switch", c, e.Kind())
		}
		if e.Code() != c || e.Kind().Code() != c {
			t.Errorf("Code() = %v, want %v", e.Code(), c)
		}
		if !c.Valid() {
			t.Errorf("%v reported invalid", c)
		}
		if seen[c.String()] {
			t.Errorf("duplicate code name %q", c.String())
		}
		seen[c.String()] = true
		if msg := e.Error(); !strings.HasPrefix(msg, "wascap: ") {
			t.Errorf("%v: message %q lacks prefix", c, msg)
		}
	}
}

func TestCode_Invalid(t *testing.T) {
	t.Parallel()

	for _, c := range []Code{0, CodeMissingSubject + 1, 255} {
		if c.Valid() {
			t.Errorf("%d reported valid", c)
		}
		if c.String() != "none" {
			t.Errorf("%d.String() = %q, want none", c, c.String())
		}
	}
}

func TestCode_Rendering(t *testing.T) {
	t.Parallel()

	for _, c := range append(Codes(), 0) {
		if c.Error() != c.String() {
			t.Errorf("%d: Error() = %q, String() = %q", c, c.Error(), c.String())
		}
	}
	if got := fmt.Sprint(CodeExpiredToken); got != "expired_token" {
		t.Errorf("Sprint(CodeExpiredToken) = %q, want expired_token", got)
	}
	if got := fmt.Sprintf("%s|%v", CodeSerialize, CodeIO); got != "serialize|io" {
		t.Errorf("Sprintf = %q, want serialize|io", got)
	}
}

// unlisted is a Kind the message switch does not know about.
type unlisted struct{}

func (unlisted) Code() Code { return CodeToken }
func (unlisted) kind()      {}

func TestError_UnlistedKind(t *testing.T) {
	t.Parallel()

	e := newError(unlisted{})
	if got := e.Error(); got != "wascap: caperr.unlisted" {
		t.Errorf("Error() = %q, want wascap: caperr.unlisted", got)
	}
}

func TestIntoKind_MatchesKind(t *testing.T) {
	t.Parallel()

	for _, c := range Codes() {
		e := kindFor(c)
		viewed := e.Kind()
		taken := e.IntoKind()
		if viewed != taken {
			t.Errorf("%v: Kind() = %#v, IntoKind() = %#v", c, viewed, taken)
		}
	}
}

func TestIntoKind_SingleUse(t *testing.T) {
	t.Parallel()

	e := ExpiredError()
	if k := e.IntoKind(); k != (ExpiredToken{}) {
		t.Fatalf("IntoKind() = %#v", k)
	}
	if e.Kind() != nil {
		t.Errorf("Kind() after IntoKind = %#v, want nil", e.Kind())
	}
	if e.IntoKind() != nil {
		t.Error("second IntoKind returned a kind")
	}
	if e.Code() != 0 {
		t.Errorf("Code() after IntoKind = %v, want zero", e.Code())
	}
	if errors.Is(e, CodeExpiredToken) {
		t.Error("consumed error still matches its code")
	}
	if e.Error() != "wascap: error kind already taken" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestKind_DoesNotConsume(t *testing.T) {
	t.Parallel()

	e := TokenError("x")
	for i := 0; i < 3; i++ {
		if e.Kind() != (Token{Message: "x"}) {
			t.Fatalf("call %d: Kind() = %#v", i, e.Kind())
		}
	}
}

func TestSemanticConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want Kind
	}{
		{"token", TokenError("no wascap claims"), Token{Message: "no wascap claims"}},
		{"tokenf", Tokenf("issuer %q not trusted", "ABC"), Token{Message: `issuer "ABC" not trusted`}},
		{"empty token message", TokenError(""), Token{}},
		{"capability", CapabilityError(), InvalidCapability{}},
		{"module hash", ModuleHashError(), InvalidModuleHash{}},
		{"expired", ExpiredError(), ExpiredToken{}},
		{"too early", TooEarlyError(), TokenTooEarly{}},
		{"algorithm", AlgorithmError(), InvalidAlgorithm{}},
		{"missing issuer", MissingIssuerError(), MissingIssuer{}},
		{"missing subject", MissingSubjectError(), MissingSubject{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Kind(); got != tc.want {
				t.Errorf("Kind() = %#v, want %#v", got, tc.want)
			}
			if tc.err.Unwrap() != nil {
				t.Errorf("semantic kind has a cause: %v", tc.err.Unwrap())
			}
		})
	}
}

func TestError_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{TokenError("bad claims"), "wascap: invalid token: bad claims"},
		{ExpiredError(), "wascap: token has expired"},
		{FromIO(errors.New("disk full")), "wascap: i/o failure: disk full"},
		{FromBase64(errors.New("illegal byte")), "wascap: base64 decoding failed: illegal byte"},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestError_IsCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("inspect echo.wasm: %w", ExpiredError())
	if !errors.Is(err, CodeExpiredToken) {
		t.Error("wrapped error does not match its code")
	}
	if errors.Is(err, CodeTokenTooEarly) {
		t.Error("matched a different code")
	}
	if errors.Is(err, Code(0)) {
		t.Error("matched the zero code")
	}

	var e *Error
	if !errors.As(err, &e) || e.Code() != CodeExpiredToken {
		t.Errorf("errors.As failed: %v", e)
	}
}

func TestError_NilHandle(t *testing.T) {
	t.Parallel()

	var e *Error
	if e.Kind() != nil || e.IntoKind() != nil || e.Code() != 0 || e.Unwrap() != nil {
		t.Error("nil handle is not empty")
	}
	if e.Error() != "<nil>" {
		t.Errorf("Error() = %q", e.Error())
	}
}
