package caperr

// Code is the closed discriminant of a Kind.
//
// Code implements error so that errors.Is(err, CodeX) reports whether err
// contains an *Error of that code. The zero Code is not part of the
// taxonomy; it is reported only by an Error whose kind was taken with
// IntoKind.
type Code uint8

const (
	CodeSerialize Code = iota + 1
	CodeEncryption
	CodeDecode
	CodeUTF8
	CodeToken
	CodeInvalidCapability
	CodeWasmElement
	CodeIO
	CodeInvalidModuleHash
	CodeExpiredToken
	CodeTokenTooEarly
	CodeInvalidAlgorithm
	CodeMissingIssuer
	CodeMissingSubject
)

var codeNames = [...]string{
	CodeSerialize:         "serialize",
	CodeEncryption:        "encryption",
	CodeDecode:            "decode",
	CodeUTF8:              "utf8",
	CodeToken:             "token",
	CodeInvalidCapability: "invalid_capability",
	CodeWasmElement:       "wasm_element",
	CodeIO:                "io",
	CodeInvalidModuleHash: "invalid_module_hash",
	CodeExpiredToken:      "expired_token",
	CodeTokenTooEarly:     "token_too_early",
	CodeInvalidAlgorithm:  "invalid_algorithm",
	CodeMissingIssuer:     "missing_issuer",
	CodeMissingSubject:    "missing_subject",
}

// Codes returns every member of the taxonomy in declaration order.
func Codes() []Code {
	out := make([]Code, 0, len(codeNames)-1)
	for c := CodeSerialize; c <= CodeMissingSubject; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is a member of the taxonomy.
func (c Code) Valid() bool {
	return c >= CodeSerialize && c <= CodeMissingSubject
}

// String returns the snake_case name of the code, suitable for log fields
// and metric attributes.
func (c Code) String() string {
	if !c.Valid() {
		return "none"
	}
	return codeNames[c]
}

// Error implements error. It renders the same name as String, since fmt
// prefers Error when both are present.
func (c Code) Error() string {
	return c.String()
}
