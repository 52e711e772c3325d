package caperr

// Kind is the categorization of a failure. The set of implementations is
// closed: the unexported method prevents other packages from adding one, so
// a type switch over the variants below is exhaustive.
type Kind interface {
	// Code returns the discriminant of the variant.
	Code() Code

	kind()
}

// Serialize wraps a failure to encode or decode claims as JSON.
type Serialize struct{ Err error }

// Encryption wraps a failure to generate keys, sign, or verify a signature.
type Encryption struct{ Err error }

// Decode wraps a failure to base64-decode an encoded payload.
type Decode struct{ Err error }

// UTF8 wraps a failure to decode bytes that were expected to be UTF-8 text.
type UTF8 struct{ Err error }

// Token reports a token rule violation not covered by a more specific kind.
type Token struct{ Message string }

// InvalidCapability reports a capability that is malformed or not permitted.
type InvalidCapability struct{}

// WasmElement wraps a failure to parse the WebAssembly binary format.
type WasmElement struct{ Err error }

// IO wraps a failed read or write against an external resource.
type IO struct{ Err error }

// InvalidModuleHash reports that a module does not hash to the value
// recorded in its token.
type InvalidModuleHash struct{}

// ExpiredToken reports that the current time is after the token's expiry.
type ExpiredToken struct{}

// TokenTooEarly reports that the current time is before the token's
// not-before time.
type TokenTooEarly struct{}

// InvalidAlgorithm reports a token signed with an algorithm the verifier
// does not accept.
type InvalidAlgorithm struct{}

// MissingIssuer reports a token without an issuer.
type MissingIssuer struct{}

// MissingSubject reports a token without a subject.
type MissingSubject struct{}

func (Serialize) Code() Code         { return CodeSerialize }
func (Encryption) Code() Code        { return CodeEncryption }
func (Decode) Code() Code            { return CodeDecode }
func (UTF8) Code() Code              { return CodeUTF8 }
func (Token) Code() Code             { return CodeToken }
func (InvalidCapability) Code() Code { return CodeInvalidCapability }
func (WasmElement) Code() Code       { return CodeWasmElement }
func (IO) Code() Code                { return CodeIO }
func (InvalidModuleHash) Code() Code { return CodeInvalidModuleHash }
func (ExpiredToken) Code() Code      { return CodeExpiredToken }
func (TokenTooEarly) Code() Code     { return CodeTokenTooEarly }
func (InvalidAlgorithm) Code() Code  { return CodeInvalidAlgorithm }
func (MissingIssuer) Code() Code     { return CodeMissingIssuer }
func (MissingSubject) Code() Code    { return CodeMissingSubject }

func (Serialize) kind()         {}
func (Encryption) kind()        {}
func (Decode) kind()            {}
func (UTF8) kind()              {}
func (Token) kind()             {}
func (InvalidCapability) kind() {}
func (WasmElement) kind()       {}
func (IO) kind()                {}
func (InvalidModuleHash) kind() {}
func (ExpiredToken) kind()      {}
func (TokenTooEarly) kind()     {}
func (InvalidAlgorithm) kind()  {}
func (MissingIssuer) kind()     {}
func (MissingSubject) kind()    {}

// cause returns the foreign error held by a wrapping kind, or nil for a
// semantic kind.
func cause(k Kind) error {
	switch k := k.(type) {
	case Serialize:
		return k.Err
	case Encryption:
		return k.Err
	case Decode:
		return k.Err
	case UTF8:
		return k.Err
	case WasmElement:
		return k.Err
	case IO:
		return k.Err
	default:
		return nil
	}
}
