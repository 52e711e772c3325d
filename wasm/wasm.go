package wasm

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/jonwraymond/wascap/caperr"
	"github.com/jonwraymond/wascap/claims"
	"github.com/jonwraymond/wascap/internal/wasmbin"
	"github.com/jonwraymond/wascap/token"
)

// SectionName is the name of the custom section holding the token.
const SectionName = "jwt"

// ModuleHash returns the hash of module as recorded in its claims.
func ModuleHash(module []byte) (string, error) {
	m, err := wasmbin.Parse(module)
	if err != nil {
		return "", caperr.FromWasm(err)
	}
	return hash(m), nil
}

// Embed signs c with kp and returns module with the token embedded. Any
// token already present is replaced. The module hash is stamped into a
// copy of c; c is not modified.
func Embed(module []byte, c *claims.Claims, kp *token.KeyPair) ([]byte, error) {
	m, err := wasmbin.Parse(module)
	if err != nil {
		return nil, caperr.FromWasm(err)
	}
	stripped := m.Without(SectionName)

	var meta claims.Module
	if c.Module != nil {
		meta = *c.Module
	}
	meta.Hash = hash(stripped)
	signed := *c
	signed.Module = &meta

	jwt, err := token.Encode(&signed, kp)
	if err != nil {
		return nil, err
	}

	return stripped.WithCustom(SectionName, []byte(jwt)).Bytes(), nil
}

// Extract returns the verified token embedded in module, or nil and no
// error if module carries no token.
func Extract(module []byte, v *token.Verifier) (*token.Token, error) {
	m, err := wasmbin.Parse(module)
	if err != nil {
		return nil, caperr.FromWasm(err)
	}
	payload, ok := m.Custom(SectionName)
	if !ok {
		return nil, nil
	}

	text, err := decodeText(payload)
	if err != nil {
		return nil, err
	}
	tok, err := v.Decode(text)
	if err != nil {
		return nil, err
	}

	if tok.Claims.Module == nil || tok.Claims.Module.Hash != hash(m) {
		return nil, caperr.ModuleHashError()
	}
	return tok, nil
}

func hash(m *wasmbin.Module) string {
	sum := sha256.Sum256(m.Without(SectionName).Bytes())
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func decodeText(b []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", caperr.FromUTF8(err)
	}
	return string(out), nil
}
