package domain

import "fmt"

// InvalidRecordError reports a field that failed semantic validation, with
// the offending field name and raw value.
type InvalidRecordError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record: field %s value %q: %s", e.Field, e.Value, e.Reason)
}

// MalformedRecordError reports a structural violation in the CSV or text
// grammar. Line is the 1-based CSV line number, Block the 1-based text block
// index; whichever does not apply is zero. Key names the offending key for
// text-format violations.
type MalformedRecordError struct {
	Line   int
	Block  int
	Key    string
	Detail string
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Detail)
	case e.Block > 0:
		return fmt.Sprintf("malformed record in block %d: %s", e.Block, e.Detail)
	}
	return fmt.Sprintf("malformed record: %s", e.Detail)
}

// TruncatedInputError reports binary input that ended before the declared
// data was complete. Offset is the byte offset at which more data was
// expected.
type TruncatedInputError struct {
	Offset int64
	What   string
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input at byte %d while reading %s", e.Offset, e.What)
}

// InvalidFormatError reports binary input that is not a transaction file at
// all, such as a magic mismatch or trailing bytes past the declared records.
type InvalidFormatError struct {
	Detail string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid binary format: %s", e.Detail)
}

// UnsupportedVersionError reports a binary header with a layout version this
// implementation does not know.
type UnsupportedVersionError struct {
	Version byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported binary format version %d", e.Version)
}

// InvalidEncodingError reports a binary string field that is not valid UTF-8.
type InvalidEncodingError struct {
	Field  string
	Offset int64
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 in field %s at byte %d", e.Field, e.Offset)
}

// DuplicateIDError reports two records within one collection sharing a
// transaction id. Duplicates are a hard failure so comparisons stay
// well-defined.
type DuplicateIDError struct {
	ID uint64
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate transaction id %d", e.ID)
}

// UnsupportedValueError reports a field value the target format cannot
// represent, such as a currency code longer than the binary layout's three
// bytes.
type UnsupportedValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported value %q for field %s: %s", e.Value, e.Field, e.Reason)
}
