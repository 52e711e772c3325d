package observe

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/jonwraymond/wascap/caperr"
)

// Op identifies a wascap operation for telemetry.
type Op struct {
	Name   string // operation, e.g. "sign" or "inspect" (required)
	Module string // module path or name (optional)
	Issuer string // issuer public key (optional)
}

// SpanName returns the span name of the operation: wascap.<name>.
func (o Op) SpanName() string {
	return "wascap." + o.Name
}

// Validate reports ErrMissingOpName for an unnamed operation.
func (o Op) Validate() error {
	if o.Name == "" {
		return ErrMissingOpName
	}
	return nil
}

func (o Op) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("wascap.op", o.Name)}
	if o.Module != "" {
		attrs = append(attrs, attribute.String("wascap.module", o.Module))
	}
	if o.Issuer != "" {
		attrs = append(attrs, attribute.String("wascap.issuer", o.Issuer))
	}
	return attrs
}

// Unclassified is the code reported for errors outside the wascap taxonomy.
const Unclassified = "unclassified"

// ErrorCode returns the caperr code name of err, or Unclassified.
func ErrorCode(err error) string {
	if e, ok := caperr.Classify(err); ok {
		return e.Code().String()
	}
	return Unclassified
}
