// Package wasmbin decodes and re-encodes WebAssembly binary modules for
// token embedding. Decoding and encoding are done by wabin; this package
// adds custom section editing and the typed Error that callers classify.
package wasmbin

import (
	"bytes"
	"encoding/binary"
	"fmt"

	wabin "github.com/tetratelabs/wabin/binary"
	"github.com/tetratelabs/wabin/wasm"
)

// Version is the only binary format version understood.
const Version uint32 = 1

var magic = []byte{0x00, 'a', 's', 'm'}

// Module is a decoded module.
type Module struct {
	m *wasm.Module
}

// Parse decodes b. Every failure is an *Error.
func Parse(b []byte) (*Module, error) {
	if err := checkHeader(b); err != nil {
		return nil, &Error{Err: err}
	}
	m, err := wabin.DecodeModule(b, wasm.CoreFeaturesV2)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	return &Module{m: m}, nil
}

// checkHeader reports the header failures that have sentinel causes.
func checkHeader(b []byte) error {
	if len(b) < 4 || !bytes.Equal(b[:4], magic) {
		if len(b) < 4 && bytes.HasPrefix(magic, b) {
			return ErrUnexpectedEnd
		}
		return ErrBadMagic
	}
	if len(b) < 8 {
		return ErrUnexpectedEnd
	}
	if binary.LittleEndian.Uint32(b[4:8]) != Version {
		return ErrUnsupportedVersion
	}
	return nil
}

// Bytes encodes m in the binary format.
func (m *Module) Bytes() []byte {
	return wabin.EncodeModule(m.m)
}

// Raw returns the decoded module. It is shared with m.
func (m *Module) Raw() *wasm.Module {
	return m.m
}

// Custom returns the payload of the first custom section called name.
func (m *Module) Custom(name string) ([]byte, bool) {
	for _, s := range m.m.CustomSections {
		if s.Name == name {
			return s.Data, true
		}
	}
	return nil, false
}

// Without returns a copy of m with every custom section called name removed.
func (m *Module) Without(name string) *Module {
	cp := *m.m
	cp.CustomSections = nil
	for _, s := range m.m.CustomSections {
		if s.Name != name {
			cp.CustomSections = append(cp.CustomSections, s)
		}
	}
	return &Module{m: &cp}
}

// WithCustom returns a copy of m with a custom section appended.
func (m *Module) WithCustom(name string, payload []byte) *Module {
	cp := *m.m
	cp.CustomSections = append(append([]*wasm.CustomSection(nil), m.m.CustomSections...),
		&wasm.CustomSection{Name: name, Data: payload})
	return &Module{m: &cp}
}
