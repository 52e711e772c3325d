// Package token signs and verifies wascap tokens.
//
// Tokens are JWTs signed with Ed25519 under the header algorithm "Ed25519".
// The issuer claim is the signer's public key, so a token carries everything
// needed to verify it. Keys are encoded as unpadded base64url.
//
// All failures are *caperr.Error values.
package token
