package token

import "errors"

// Key material errors, reported inside caperr.Encryption.
var (
	ErrInvalidSeed      = errors.New("token: seed must be 32 bytes")
	ErrInvalidPublicKey = errors.New("token: public key must be 32 bytes")
)
