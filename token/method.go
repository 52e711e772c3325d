package token

import "github.com/golang-jwt/jwt/v5"

// Algorithm is the JWT "alg" header value of wascap tokens.
const Algorithm = "Ed25519"

// SigningMethod is EdDSA over Ed25519 registered under Algorithm.
var SigningMethod jwt.SigningMethod = signingMethod{}

type signingMethod struct{}

func (signingMethod) Alg() string { return Algorithm }

func (signingMethod) Sign(signingString string, key any) ([]byte, error) {
	return jwt.SigningMethodEdDSA.Sign(signingString, key)
}

func (signingMethod) Verify(signingString string, sig []byte, key any) error {
	return jwt.SigningMethodEdDSA.Verify(signingString, sig, key)
}

func init() {
	jwt.RegisterSigningMethod(Algorithm, func() jwt.SigningMethod { return SigningMethod })
}
