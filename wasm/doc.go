// Package wasm embeds wascap tokens into WebAssembly modules and extracts
// them again.
//
// The token is stored as UTF-8 text in a custom section named "jwt". The
// module hash recorded in the claims is the upper-case hex SHA-256 of the
// module encoded without that section, so embedding is idempotent and
// any change to the module body invalidates the token.
package wasm
