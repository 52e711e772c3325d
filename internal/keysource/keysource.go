// Package keysource resolves where a signing seed comes from.
//
// A seed argument is one of:
//
//	env:NAME     the value of environment variable NAME
//	file:PATH    the trimmed contents of PATH
//	anything     used literally, after ${VAR} expansion
//
// Resolved values are secrets; callers must not log them.
package keysource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jonwraymond/wascap/caperr"
)

var (
	// ErrEmpty indicates the reference resolved to an empty value.
	ErrEmpty = errors.New("keysource: empty seed")

	// ErrUnknownSource indicates a "scheme:" prefix no source handles.
	ErrUnknownSource = errors.New("keysource: unknown source")

	// ErrMissingEnv indicates referenced environment variables are unset.
	ErrMissingEnv = errors.New("keysource: missing environment variables")
)

// Source resolves references of one scheme.
type Source interface {
	Scheme() string
	Resolve(ctx context.Context, ref string) (string, error)
}

// Env reads environment variables.
type Env struct{}

func (Env) Scheme() string { return "env" }

func (Env) Resolve(_ context.Context, name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, name)
	}
	return v, nil
}

// File reads a seed file. Read failures are caperr IO errors.
type File struct{}

func (File) Scheme() string { return "file" }

func (File) Resolve(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", caperr.FromIO(err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Resolver dispatches references to sources by scheme.
type Resolver struct {
	sources map[string]Source
}

// NewResolver creates a resolver for sources. With no sources it handles
// env and file.
func NewResolver(sources ...Source) *Resolver {
	if len(sources) == 0 {
		sources = []Source{Env{}, File{}}
	}
	r := &Resolver{sources: make(map[string]Source, len(sources))}
	for _, s := range sources {
		if s != nil {
			r.sources[s.Scheme()] = s
		}
	}
	return r
}

// Resolve returns the seed referenced by value.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	expanded, err := ExpandEnvStrict(value)
	if err != nil {
		return "", err
	}

	out := expanded
	if scheme, ref, ok := ParseRef(expanded); ok {
		src, found := r.sources[scheme]
		if !found {
			return "", fmt.Errorf("%w: %q", ErrUnknownSource, scheme)
		}
		if out, err = src.Resolve(ctx, ref); err != nil {
			return "", err
		}
	}
	if out == "" {
		return "", ErrEmpty
	}
	return out, nil
}

var refPattern = regexp.MustCompile(`^([a-z][a-z0-9]*):(.+)$`)

// ParseRef splits "scheme:ref". Seeds are base64url and never contain ':'.
func ParseRef(value string) (scheme, ref string, ok bool) {
	m := refPattern.FindStringSubmatch(value)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict expands ${VAR} and $VAR in s. A ${VAR} that is unset is
// an error; $$ emits a literal $.
func ExpandEnvStrict(s string) (string, error) {
	const dollar = "\x00WASCAP_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollar)

	var missing []string
	for _, match := range envVarPattern.FindAllStringSubmatch(s, -1) {
		if _, ok := os.LookupEnv(match[1]); !ok {
			missing = append(missing, match[1])
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	s = os.ExpandEnv(s)
	return strings.ReplaceAll(s, dollar, "$"), nil
}
