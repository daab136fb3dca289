package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"banktx/internal/domain"
)

// TextCodec reads and writes the human-readable format: one block of
// "key: value" lines per transaction, blocks separated by blank lines.
type TextCodec struct{}

// Parse reads blank-line-separated blocks. Keys must come from the canonical
// field set and every field must be present in each block; violations
// surface as MalformedRecordError naming the key and the 1-based block
// index. Whitespace around keys and values is ignored.
func (c *TextCodec) Parse(r io.Reader) (*domain.Collection, error) {
	collection := domain.NewCollection()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	block := make(map[string]string)
	blockIndex := 1

	finish := func() error {
		if len(block) == 0 {
			return nil
		}
		for _, name := range domain.FieldNames() {
			if _, ok := block[name]; !ok {
				return &domain.MalformedRecordError{
					Block:  blockIndex,
					Key:    name,
					Detail: fmt.Sprintf("missing required key %q", name),
				}
			}
		}
		tx, err := domain.FromFields(block)
		if err != nil {
			return fmt.Errorf("block %d: %w", blockIndex, err)
		}
		if err := collection.Append(tx); err != nil {
			return fmt.Errorf("block %d: %w", blockIndex, err)
		}
		block = make(map[string]string)
		blockIndex++
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			// A blank line always terminates the current block, even
			// mid-record; missing keys are then reported above.
			if err := finish(); err != nil {
				return nil, err
			}
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, &domain.MalformedRecordError{
				Block:  blockIndex,
				Detail: fmt.Sprintf("line %q has no ':' separator", line),
			}
		}
		key = strings.TrimSpace(key)
		if !domain.IsFieldName(key) {
			return nil, &domain.MalformedRecordError{
				Block:  blockIndex,
				Key:    key,
				Detail: fmt.Sprintf("unrecognized key %q", key),
			}
		}
		if _, dup := block[key]; dup {
			return nil, &domain.MalformedRecordError{
				Block:  blockIndex,
				Key:    key,
				Detail: fmt.Sprintf("duplicate key %q", key),
			}
		}
		block[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return collection, nil
}

// Serialize writes each transaction as a block of "key: value" lines in
// canonical field order, with exactly one blank line between blocks and none
// before the first or after the last.
func (c *TextCodec) Serialize(w io.Writer, collection *domain.Collection) error {
	bw := bufio.NewWriter(w)
	for i, tx := range collection.Transactions() {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		for _, name := range domain.FieldNames() {
			value := tx.FieldValue(name)
			// The grammar cannot carry newlines or surrounding whitespace;
			// parse would not read such a value back intact.
			if strings.ContainsAny(value, "\n\r") {
				return &domain.UnsupportedValueError{Field: name, Value: value, Reason: "text format cannot represent newlines"}
			}
			if value != strings.TrimSpace(value) {
				return &domain.UnsupportedValueError{Field: name, Value: value, Reason: "text format cannot represent leading or trailing whitespace"}
			}
			if _, err := fmt.Fprintf(bw, "%s: %s\n", name, value); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
