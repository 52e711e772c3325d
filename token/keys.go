package token

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/jonwraymond/wascap/caperr"
)

var keyEncoding = base64.RawURLEncoding

// KeyPair is an Ed25519 signing key.
type KeyPair struct {
	private ed25519.PrivateKey
}

// GenerateKeyPair creates a key pair from r, or crypto/rand if r is nil.
func GenerateKeyPair(r io.Reader) (*KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	_, private, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, caperr.FromCrypto(err)
	}
	return &KeyPair{private: private}, nil
}

// KeyPairFromSeed restores a key pair from an encoded seed.
func KeyPairFromSeed(seed string) (*KeyPair, error) {
	raw, err := keyEncoding.DecodeString(seed)
	if err != nil {
		return nil, caperr.FromBase64(err)
	}
	if len(raw) != ed25519.SeedSize {
		return nil, caperr.FromCrypto(ErrInvalidSeed)
	}
	return &KeyPair{private: ed25519.NewKeyFromSeed(raw)}, nil
}

// PublicKey returns the encoded public key.
func (kp *KeyPair) PublicKey() string {
	return keyEncoding.EncodeToString(kp.private.Public().(ed25519.PublicKey))
}

// Seed returns the encoded private seed.
func (kp *KeyPair) Seed() string {
	return keyEncoding.EncodeToString(kp.private.Seed())
}

// ParsePublicKey decodes an encoded public key.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	raw, err := keyEncoding.DecodeString(s)
	if err != nil {
		return nil, caperr.FromBase64(err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, caperr.FromCrypto(ErrInvalidPublicKey)
	}
	return ed25519.PublicKey(raw), nil
}
