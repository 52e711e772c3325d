package claims

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/wascap/caperr"
)

// Claims are the contents of a wascap token. Times are Unix seconds; zero
// means unset.
type Claims struct {
	// ID is the unique token identifier (jti).
	ID string `json:"jti,omitempty"`

	// IssuedAt is when the token was created (iat).
	IssuedAt int64 `json:"iat,omitempty"`

	// Issuer is the public key of the signing account (iss).
	Issuer string `json:"iss"`

	// Subject is the public key of the module (sub).
	Subject string `json:"sub"`

	// Expires is the time after which the token is rejected (exp).
	Expires int64 `json:"exp,omitempty"`

	// NotBefore is the time before which the token is rejected (nbf).
	NotBefore int64 `json:"nbf,omitempty"`

	// Module holds the wascap-specific metadata.
	Module *Module `json:"wascap,omitempty"`
}

// Module is the metadata describing the signed module.
type Module struct {
	Name         string   `json:"name,omitempty"`
	Hash         string   `json:"hash"`
	Tags         []string `json:"tags,omitempty"`
	Capabilities []string `json:"caps,omitempty"`
	Revision     int32    `json:"rev,omitempty"`
	Version      string   `json:"ver,omitempty"`
	Provider     bool     `json:"prov"`
}

// New creates claims issued now with a fresh token ID.
func New(issuer, subject string, module *Module) *Claims {
	return &Claims{
		ID:       uuid.NewString(),
		IssuedAt: time.Now().Unix(),
		Issuer:   issuer,
		Subject:  subject,
		Module:   module,
	}
}

// SetExpiry sets the expiry time. A zero t clears it.
func (c *Claims) SetExpiry(t time.Time) { c.Expires = unix(t) }

// SetNotBefore sets the not-before time. A zero t clears it.
func (c *Claims) SetNotBefore(t time.Time) { c.NotBefore = unix(t) }

// ExpiresAt returns the expiry time, or the zero time if unset.
func (c *Claims) ExpiresAt() time.Time { return fromUnix(c.Expires) }

// NotBeforeAt returns the not-before time, or the zero time if unset.
func (c *Claims) NotBeforeAt() time.Time { return fromUnix(c.NotBefore) }

// IssuedAtTime returns the issue time, or the zero time if unset.
func (c *Claims) IssuedAtTime() time.Time { return fromUnix(c.IssuedAt) }

// Capabilities returns the capabilities claimed by the module.
func (c *Claims) Capabilities() []string {
	if c.Module == nil {
		return nil
	}
	return c.Module.Capabilities
}

// HasCapability reports whether the module claims capability id.
func (c *Claims) HasCapability(id string) bool {
	for _, claimed := range c.Capabilities() {
		if claimed == id {
			return true
		}
	}
	return false
}

// Validate checks the claims at time now. Expiry and not-before are
// compared with the given leeway; checks run in this order: issuer,
// subject, expiry, not-before, capability syntax.
func (c *Claims) Validate(now time.Time, leeway time.Duration) error {
	if c.Issuer == "" {
		return caperr.MissingIssuerError()
	}
	if c.Subject == "" {
		return caperr.MissingSubjectError()
	}

	if c.Expires != 0 && now.After(c.ExpiresAt().Add(leeway)) {
		return caperr.ExpiredError()
	}
	if c.NotBefore != 0 && now.Before(c.NotBeforeAt().Add(-leeway)) {
		return caperr.TooEarlyError()
	}

	for _, id := range c.Capabilities() {
		if !ValidCapability(id) {
			return caperr.CapabilityError()
		}
	}
	return nil
}

// Parse decodes JSON-encoded claims.
func Parse(data []byte) (*Claims, error) {
	var c Claims
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, caperr.FromJSON(err)
	}
	return &c, nil
}

// Marshal encodes the claims as JSON.
func (c *Claims) Marshal() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, caperr.FromJSON(err)
	}
	return data, nil
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
