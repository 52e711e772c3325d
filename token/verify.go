package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/wascap/caperr"
	"github.com/jonwraymond/wascap/claims"
)

// VerifyConfig configures a Verifier.
type VerifyConfig struct {
	// Now returns the time tokens are checked against.
	// Default: time.Now
	Now func() time.Time

	// Leeway is the clock skew tolerated for exp and nbf.
	Leeway time.Duration

	// ExpectedIssuer, when set, is the only issuer key accepted.
	ExpectedIssuer string

	// Policy restricts the capabilities a token may claim.
	Policy claims.Policy
}

// Token is a decoded token.
type Token struct {
	Raw    string
	Header map[string]any
	Claims *claims.Claims
}

// Verifier decodes and verifies tokens.
type Verifier struct {
	config VerifyConfig
	parser *jwt.Parser
}

// NewVerifier creates a Verifier.
func NewVerifier(config VerifyConfig) *Verifier {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Verifier{
		config: config,
		// Time-based claims are checked by claims.Validate so that they
		// report ExpiredToken and TokenTooEarly.
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// Decode verifies tokenString and returns its contents.
//
// Checks run in order: structure, algorithm, issuer presence, expected
// issuer, signature, claims (see claims.Validate), capability policy.
func (v *Verifier) Decode(tokenString string) (*Token, error) {
	unverified, err := v.DecodeUnverified(tokenString)
	if err != nil {
		return nil, err
	}

	issuer := unverified.Claims.Issuer
	if issuer == "" {
		return nil, caperr.MissingIssuerError()
	}
	if v.config.ExpectedIssuer != "" && issuer != v.config.ExpectedIssuer {
		return nil, caperr.Tokenf("issuer %q is not trusted", issuer)
	}
	key, err := ParsePublicKey(issuer)
	if err != nil {
		return nil, err
	}

	wire := newWireClaims()
	t, err := v.parser.ParseWithClaims(unverified.Raw, wire, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if err := wire.Validate(v.config.Now(), v.config.Leeway); err != nil {
		return nil, err
	}
	if err := v.config.Policy.Check(wire.Capabilities()); err != nil {
		return nil, err
	}

	return &Token{Raw: unverified.Raw, Header: t.Header, Claims: wire.Claims}, nil
}

// DecodeUnverified decodes tokenString and checks its algorithm without
// verifying the signature or the claims.
func (v *Verifier) DecodeUnverified(tokenString string) (*Token, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, caperr.TokenError("empty token")
	}

	wire := newWireClaims()
	t, _, err := v.parser.ParseUnverified(tokenString, wire)
	if err != nil {
		return nil, classify(err)
	}
	if t.Method == nil || t.Method.Alg() != Algorithm {
		return nil, caperr.AlgorithmError()
	}

	return &Token{Raw: tokenString, Header: t.Header, Claims: wire.Claims}, nil
}

// classify maps a jwt parser failure onto the taxonomy.
func classify(err error) error {
	if e, ok := caperr.Classify(err); ok {
		return e
	}
	// Without an underlying cause the parser reports an unknown or absent
	// alg header as unverifiable.
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return caperr.AlgorithmError()
	}
	return caperr.TokenError(err.Error())
}
