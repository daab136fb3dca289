package codec

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"banktx/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVCodec reads and writes the delimited format: a header line naming the
// canonical fields in order, then one record per line with standard CSV
// quoting.
type CSVCodec struct{}

// Parse reads the whole CSV stream into a collection. A leading byte-order
// mark is stripped before the header is read. Structural violations (bad
// quoting, field count mismatched to the header) surface as
// MalformedRecordError with the offending line number.
func (c *CSVCodec) Parse(r io.Reader) (*domain.Collection, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.MalformedRecordError{Line: 1, Detail: "missing header line"}
	}
	if err != nil {
		return nil, asMalformedCSV(err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	collection := domain.NewCollection()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, asMalformedCSV(err)
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			fields[name] = record[i]
		}

		line, _ := reader.FieldPos(0)
		tx, err := domain.FromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := collection.Append(tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return collection, nil
}

// Serialize writes the header line and one line per transaction in
// collection order. encoding/csv quotes any field containing the delimiter,
// a quote, or a newline, doubling internal quotes.
func (c *CSVCodec) Serialize(w io.Writer, collection *domain.Collection) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(domain.FieldNames()); err != nil {
		return err
	}
	for _, tx := range collection.Transactions() {
		record := make([]string, 0, len(domain.FieldNames()))
		for _, name := range domain.FieldNames() {
			value := tx.FieldValue(name)
			// The reader folds "\r\n" inside quoted fields to "\n", so a
			// carriage return would come back silently altered.
			if strings.Contains(value, "\r") {
				return &domain.UnsupportedValueError{Field: name, Value: value, Reason: "csv format cannot represent carriage returns"}
			}
			record = append(record, value)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func validateHeader(header []string) error {
	want := domain.FieldNames()
	if len(header) != len(want) {
		return &domain.MalformedRecordError{
			Line:   1,
			Detail: fmt.Sprintf("header has %d fields, want %d", len(header), len(want)),
		}
	}
	for i, name := range want {
		if header[i] != name {
			return &domain.MalformedRecordError{
				Line:   1,
				Detail: fmt.Sprintf("header field %d is %q, want %q", i+1, header[i], name),
			}
		}
	}
	return nil
}

// asMalformedCSV converts encoding/csv parse errors (wrong field count, bad
// quoting) into MalformedRecordError carrying the line number.
func asMalformedCSV(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		detail := "wrong number of fields"
		if !errors.Is(parseErr.Err, csv.ErrFieldCount) {
			detail = parseErr.Err.Error()
		}
		return &domain.MalformedRecordError{Line: parseErr.Line, Detail: detail}
	}
	return err
}
