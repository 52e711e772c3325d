package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/wascap/caperr"
	"github.com/jonwraymond/wascap/claims"
)

// Encode signs c with kp and returns the compact token.
//
// An empty issuer is filled with the public key of kp; any other issuer
// must equal it. Every capability must be a well-formed ID. Time bounds are
// not checked, so already expired tokens can be signed. c is not modified.
func Encode(c *claims.Claims, kp *KeyPair) (string, error) {
	signed := *c
	issuer := kp.PublicKey()
	switch signed.Issuer {
	case "":
		signed.Issuer = issuer
	case issuer:
	default:
		return "", caperr.TokenError("issuer does not match signing key")
	}
	if signed.Subject == "" {
		return "", caperr.MissingSubjectError()
	}
	for _, id := range signed.Capabilities() {
		if !claims.ValidCapability(id) {
			return "", caperr.CapabilityError()
		}
	}

	t := jwt.NewWithClaims(SigningMethod, &wireClaims{Claims: &signed})
	t.Header["typ"] = "jwt"

	s, err := t.SignedString(kp.private)
	if err != nil {
		if e, ok := caperr.Classify(err); ok {
			return "", e
		}
		return "", caperr.FromCrypto(err)
	}
	return s, nil
}
