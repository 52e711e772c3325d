package wasm

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/wascap/caperr"
	"github.com/jonwraymond/wascap/claims"
	"github.com/jonwraymond/wascap/token"
)

// EmbedFile reads the module at src, embeds a token signed by kp, and
// writes the result to dst.
func EmbedFile(src, dst string, c *claims.Claims, kp *token.KeyPair) error {
	module, err := os.ReadFile(src)
	if err != nil {
		return caperr.FromIO(err)
	}
	out, err := Embed(module, c, kp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return caperr.FromIO(err)
	}
	return nil
}

// ExtractFile extracts the token from the module at path.
func ExtractFile(path string, v *token.Verifier) (*token.Token, error) {
	module, err := os.ReadFile(path)
	if err != nil {
		return nil, caperr.FromIO(err)
	}
	return Extract(module, v)
}

// ExtractFiles extracts tokens from several modules concurrently. Results
// are in the order of paths. The first failure cancels the remaining reads
// and is returned; a canceled ctx is reported as an IO error.
func ExtractFiles(ctx context.Context, v *token.Verifier, paths ...string) ([]*token.Token, error) {
	tokens := make([]*token.Token, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return caperr.FromIO(err)
			}
			tok, err := ExtractFile(path, v)
			if err != nil {
				return err
			}
			tokens[i] = tok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tokens, nil
}
