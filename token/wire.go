package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/wascap/claims"
)

// wireClaims adapts claims.Claims to jwt.Claims. Its JSON form is that of
// the embedded claims.
type wireClaims struct {
	*claims.Claims
}

func newWireClaims() *wireClaims {
	return &wireClaims{Claims: &claims.Claims{}}
}

func (w *wireClaims) GetExpirationTime() (*jwt.NumericDate, error) { return numericDate(w.Expires), nil }
func (w *wireClaims) GetIssuedAt() (*jwt.NumericDate, error)       { return numericDate(w.IssuedAt), nil }
func (w *wireClaims) GetNotBefore() (*jwt.NumericDate, error)      { return numericDate(w.NotBefore), nil }
func (w *wireClaims) GetIssuer() (string, error)                   { return w.Issuer, nil }
func (w *wireClaims) GetSubject() (string, error)                  { return w.Subject, nil }
func (w *wireClaims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

func numericDate(sec int64) *jwt.NumericDate {
	if sec == 0 {
		return nil
	}
	return jwt.NewNumericDate(time.Unix(sec, 0))
}

var _ jwt.Claims = (*wireClaims)(nil)
