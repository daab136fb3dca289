// Package codec implements the three interchangeable on-disk transaction
// formats: delimited CSV, human-readable text blocks, and the compact binary
// layout. Each codec parses into and serializes from the canonical
// domain.Collection, and each round-trips exactly.
package codec

import (
	"fmt"
	"io"

	"banktx/internal/domain"
)

// Format tags a supported on-disk format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatText   Format = "txt"
	FormatBinary Format = "binary"
)

// ParseFormat maps a format tag from the command line to a Format. Anything
// outside the supported set is rejected before any core operation runs.
func ParseFormat(tag string) (Format, error) {
	switch Format(tag) {
	case FormatCSV, FormatText, FormatBinary:
		return Format(tag), nil
	}
	return "", fmt.Errorf("unknown format %q (supported: csv, txt, binary)", tag)
}

// Codec is the capability a format implementation provides: parse a byte
// stream into a collection, and serialize a collection back out. Parse reads
// the whole input; on any error no partial collection is returned.
type Codec interface {
	Parse(r io.Reader) (*domain.Collection, error)
	Serialize(w io.Writer, c *domain.Collection) error
}

// For returns the codec for the given format.
func For(f Format) (Codec, error) {
	switch f {
	case FormatCSV:
		return &CSVCodec{}, nil
	case FormatText:
		return &TextCodec{}, nil
	case FormatBinary:
		return &BinaryCodec{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}
