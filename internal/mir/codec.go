package mir

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the encoded Program changes.
const programSchemaVersion uint16 = 1

// ErrSchemaMismatch is returned by Decode for files written by another
// schema version.
var ErrSchemaMismatch = errors.New("mir: program schema mismatch")

type programFile struct {
	Schema  uint16
	Instrs  []Instr
	Symbols []string
}

// Encode writes p as a msgpack document.
func (p *Program) Encode(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&programFile{
		Schema:  programSchemaVersion,
		Instrs:  p.Instrs,
		Symbols: p.Symbols,
	})
}

// Decode reads a program written by Encode and validates it.
func Decode(r io.Reader) (*Program, error) {
	var f programFile
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("mir: decode: %w", err)
	}
	if f.Schema != programSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, f.Schema, programSchemaVersion)
	}
	p := &Program{Instrs: f.Instrs, Symbols: f.Symbols}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
