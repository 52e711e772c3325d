package keysource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonwraymond/wascap/caperr"
)

type stubSource struct {
	values map[string]string
	err    error
}

func (s *stubSource) Scheme() string { return "stub" }

func (s *stubSource) Resolve(_ context.Context, ref string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.values[ref], nil
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in          string
		scheme, ref string
		ok          bool
	}{
		{"env:WASCAP_SEED", "env", "WASCAP_SEED", true},
		{"file:/etc/wascap/seed", "file", "/etc/wascap/seed", true},
		{"AbC-_123", "", "", false},
		{"env:", "", "", false},
		{"Env:X", "", "", false},
	}
	for _, tc := range tests {
		scheme, ref, ok := ParseRef(tc.in)
		if scheme != tc.scheme || ref != tc.ref || ok != tc.ok {
			t.Errorf("ParseRef(%q) = %q, %q, %v", tc.in, scheme, ref, ok)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("WASCAP_TEST_SEED", "from-env")
	dir := t.TempDir()
	path := filepath.Join(dir, "seed")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewResolver()
	tests := map[string]string{
		"literal":              "literal",
		"${WASCAP_TEST_SEED}":  "from-env",
		"env:WASCAP_TEST_SEED": "from-env",
		"file:" + path:         "from-file",
	}
	for in, want := range tests {
		got, err := r.Resolve(context.Background(), in)
		if err != nil {
			t.Errorf("Resolve(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_Errors(t *testing.T) {
	r := NewResolver(Env{}, File{}, &stubSource{values: map[string]string{"blank": ""}})
	missing := filepath.Join(t.TempDir(), "absent")

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"unset env", "env:WASCAP_DEFINITELY_UNSET", ErrMissingEnv},
		{"unset expansion", "${WASCAP_DEFINITELY_UNSET}", ErrMissingEnv},
		{"unknown scheme", "vault:kv/seed", ErrUnknownSource},
		{"empty value", "stub:blank", ErrEmpty},
		{"empty literal", "", ErrEmpty},
		{"missing file", "file:" + missing, caperr.CodeIO},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Resolve(%q) = %v, want %v", tc.in, err, tc.want)
			}
		})
	}
}

func TestResolve_SourceErrorPropagates(t *testing.T) {
	want := errors.New("explode")
	r := NewResolver(&stubSource{err: want})
	if _, err := r.Resolve(context.Background(), "stub:x"); !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("X", "y")

	out, err := ExpandEnvStrict("$$${X}")
	if err != nil {
		t.Fatalf("ExpandEnvStrict() error = %v", err)
	}
	if out != "$y" {
		t.Fatalf("ExpandEnvStrict() = %q, want %q", out, "$y")
	}

	_, err = ExpandEnvStrict("a=${X} b=${WASCAP_MISSING_B} c=${WASCAP_MISSING_A}")
	if err == nil || !strings.Contains(err.Error(), "WASCAP_MISSING_A, WASCAP_MISSING_B") {
		t.Fatalf("expected sorted missing names, got: %v", err)
	}
}
