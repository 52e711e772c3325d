// Command wascap signs WebAssembly modules and inspects their embedded
// capability tokens.
//
// Commands:
//
//	keygen              Generate an Ed25519 key pair
//	sign                Embed a signed token into a module
//	inspect <file>...   Verify and print the tokens of modules
//
// Failures exit with a status derived from the error's caperr code, so
// scripts can branch on the category without parsing messages.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/fatih/color"

	"github.com/jonwraymond/wascap/caperr"
	"github.com/jonwraymond/wascap/claims"
	"github.com/jonwraymond/wascap/internal/keysource"
	"github.com/jonwraymond/wascap/observe"
	"github.com/jonwraymond/wascap/token"
	"github.com/jonwraymond/wascap/wasm"
)

const version = "0.1.0"

// Exit statuses. Classified failures exit with exitCodeBase + caperr.Code.
const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 2
	exitCodeBase     = 10
	seedEnv          = "WASCAP_SEED"
	defaultLogLevel  = "warn"
	defaultExporters = "none"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "keygen", "sign", "inspect":
	case "version":
		fmt.Fprintf(stdout, "wascap v%s\n", version)
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", cmd)
		printUsage(stderr)
		return exitUsage
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", defaultLogLevel, "log level: debug|info|warn|error")
	tracing := fs.String("trace", defaultExporters, "tracing exporter: stdout|otlp|jaeger|none")
	metrics := fs.String("metrics", defaultExporters, "metrics exporter: stdout|otlp|prometheus|none")

	var exec func(ctx context.Context, mw *observe.Middleware, log observe.Logger) error
	switch cmd {
	case "keygen":
		exec = keygenCommand(fs, stdout)
	case "sign":
		exec = signCommand(fs, stdout)
	case "inspect":
		exec = inspectCommand(fs, stdout)
	}
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "wascap",
		Version:     version,
		Tracing:     observe.TracingConfig{Enabled: *tracing != defaultExporters, Exporter: *tracing, SamplePct: 1},
		Metrics:     observe.MetricsConfig{Enabled: *metrics != defaultExporters, Exporter: *metrics},
		Logging:     observe.LoggingConfig{Enabled: true, Level: *logLevel},
		Output:      stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "wascap: %v\n", err)
		return exitUsage
	}
	defer func() {
		_ = obs.Shutdown(context.WithoutCancel(ctx))
	}()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		fmt.Fprintf(stderr, "wascap: %v\n", err)
		return exitFailure
	}

	err = exec(ctx, mw, obs.Logger())
	if err != nil {
		failure.Fprintf(stderr, "wascap %s: %v\n", cmd, err)
		var usage usageError
		if errors.As(err, &usage) {
			fs.Usage()
			return exitUsage
		}
	}
	return exitStatus(err)
}

// exitStatus maps err onto a process exit status by its caperr code.
func exitStatus(err error) int {
	if err == nil {
		return exitOK
	}
	if e, ok := caperr.Classify(err); ok && e.Code().Valid() {
		return exitCodeBase + int(e.Code())
	}
	return exitFailure
}

// Colors are disabled automatically when stdout is not a terminal.
var (
	failure = color.New(color.FgRed)
	heading = color.New(color.FgHiGreen)
)

type usageError string

func (u usageError) Error() string { return string(u) }

func keygenCommand(_ *flag.FlagSet, stdout io.Writer) func(context.Context, *observe.Middleware, observe.Logger) error {
	return func(ctx context.Context, mw *observe.Middleware, _ observe.Logger) error {
		return mw.Run(ctx, observe.Op{Name: "keygen"}, func(context.Context) error {
			kp, err := token.GenerateKeyPair(nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "public: %s\nseed:   %s\n", kp.PublicKey(), kp.Seed())
			return nil
		})
	}
}

func signCommand(fs *flag.FlagSet, stdout io.Writer) func(context.Context, *observe.Middleware, observe.Logger) error {
	in := fs.String("in", "", "module to sign (required)")
	out := fs.String("out", "", "signed module destination (default: overwrite -in)")
	seed := fs.String("seed", "", "issuer seed, env:NAME or file:PATH (default: $"+seedEnv+")")
	subject := fs.String("subject", "", "module public key (default: a generated key)")
	name := fs.String("name", "", "module name")
	caps := fs.String("caps", "", "comma-separated capability IDs")
	tags := fs.String("tags", "", "comma-separated tags")
	rev := fs.Int("rev", 0, "module revision")
	ver := fs.String("ver", "", "module version")
	prov := fs.Bool("provider", false, "module is a capability provider")
	expires := fs.Duration("expires", 0, "token lifetime (0: never expires)")
	notBefore := fs.Duration("not-before", 0, "delay before the token becomes valid")

	return func(ctx context.Context, mw *observe.Middleware, log observe.Logger) error {
		if *in == "" {
			return usageError("-in is required")
		}
		if *out == "" {
			*out = *in
		}
		if *seed == "" {
			*seed = "env:" + seedEnv
		}
		raw, err := keysource.NewResolver().Resolve(ctx, *seed)
		if err != nil {
			if _, ok := caperr.Classify(err); ok {
				return err
			}
			return usageError(fmt.Sprintf("-seed or $%s is required: %v", seedEnv, err))
		}

		issuer, err := token.KeyPairFromSeed(raw)
		if err != nil {
			return err
		}
		if *subject == "" {
			moduleKey, err := token.GenerateKeyPair(nil)
			if err != nil {
				return err
			}
			*subject = moduleKey.PublicKey()
		}

		c := claims.New(issuer.PublicKey(), *subject, &claims.Module{
			Name:         *name,
			Tags:         splitList(*tags),
			Capabilities: splitList(*caps),
			Revision:     int32(*rev),
			Version:      *ver,
			Provider:     *prov,
		})
		now := time.Now()
		if *expires > 0 {
			c.SetExpiry(now.Add(*expires))
		}
		if *notBefore > 0 {
			c.SetNotBefore(now.Add(*notBefore))
		}

		op := observe.Op{Name: "sign", Module: *in, Issuer: issuer.PublicKey()}
		return mw.Run(ctx, op, func(context.Context) error {
			if err := wasm.EmbedFile(*in, *out, c, issuer); err != nil {
				return err
			}
			log.WithOp(op).Info(ctx, "module signed",
				observe.Field{Key: "subject", Value: c.Subject},
				observe.Field{Key: "out", Value: *out},
			)
			heading.Fprintf(stdout, "%s: signed, subject %s\n", *out, c.Subject)
			return nil
		})
	}
}

func inspectCommand(fs *flag.FlagSet, stdout io.Writer) func(context.Context, *observe.Middleware, observe.Logger) error {
	issuer := fs.String("issuer", "", "require this issuer public key")
	allow := fs.String("allow", "", "comma-separated allowed capability patterns")
	deny := fs.String("deny", "", "comma-separated denied capability patterns")
	leeway := fs.Duration("leeway", 0, "clock skew tolerance")

	return func(ctx context.Context, mw *observe.Middleware, _ observe.Logger) error {
		paths := fs.Args()
		if len(paths) == 0 {
			return usageError("at least one module is required")
		}

		v := token.NewVerifier(token.VerifyConfig{
			Leeway:         *leeway,
			ExpectedIssuer: *issuer,
			Policy:         claims.Policy{Allowed: splitList(*allow), Denied: splitList(*deny)},
		})

		var tokens []*token.Token
		op := observe.Op{Name: "inspect", Module: strings.Join(paths, ","), Issuer: *issuer}
		err := mw.Run(ctx, op, func(ctx context.Context) error {
			var err error
			tokens, err = wasm.ExtractFiles(ctx, v, paths...)
			return err
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		for i, tok := range tokens {
			if tok == nil {
				fmt.Fprintf(stdout, "%s: no embedded token\n", paths[i])
				continue
			}
			heading.Fprintf(stdout, "%s (%s): %s\n", paths[i], moduleSize(paths[i]), expiry(tok.Claims, time.Now()))
			if err := enc.Encode(tok.Claims); err != nil {
				return caperr.FromJSON(err)
			}
		}
		return nil
	}
}

func moduleSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return units.HumanSize(float64(info.Size()))
}

// expiry describes when c stops being valid relative to now.
func expiry(c *claims.Claims, now time.Time) string {
	if c.Expires == 0 {
		return "never expires"
	}
	return "expires in " + units.HumanDuration(c.ExpiresAt().Sub(now))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "wascap v"+version)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wascap <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  keygen             Generate an Ed25519 key pair")
	fmt.Fprintln(w, "  sign               Embed a signed capability token into a module")
	fmt.Fprintln(w, "  inspect <file>...  Verify and print embedded tokens")
	fmt.Fprintln(w, "  version            Print version")
	fmt.Fprintln(w, "  help               Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status:")
	fmt.Fprintln(w, "  0 success, 1 unclassified failure, 2 usage,")
	fmt.Fprintf(w, "  %d + code for wascap failures:\n", exitCodeBase)
	for _, c := range caperr.Codes() {
		fmt.Fprintf(w, "    %3d  %s\n", exitCodeBase+int(c), c)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  "+seedEnv+"   issuer seed used by sign")
}
