package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"
	"unicode/utf8"

	"banktx/internal/domain"
)

// Binary layout, little-endian throughout.
//
//	header: magic "BTXF", version byte, u32 record count
//	record: u64 id, i64 amount, i64 unix seconds, 3-byte NUL-padded
//	        currency, then four u16-length-prefixed UTF-8 strings in order
//	        account_id, counterparty, description, category
var binaryMagic = [4]byte{'B', 'T', 'X', 'F'}

const binaryVersion byte = 1

// maxBinaryString is the longest string field the u16 length prefix can carry.
const maxBinaryString = math.MaxUint16

var binaryStringFields = []string{
	domain.FieldAccountID,
	domain.FieldCounterparty,
	domain.FieldDescription,
	domain.FieldCategory,
}

// BinaryCodec reads and writes the compact fixed-layout encoding. The
// encoded length of a record is fully determined by its string field
// lengths; there is no padding beyond the specified fields.
type BinaryCodec struct{}

// Parse reads the whole stream and decodes exactly the number of records the
// header declares. Input ending early is TruncatedInputError with the byte
// offset; bytes remaining past the declared records are InvalidFormatError.
func (c *BinaryCodec) Parse(r io.Reader) (*domain.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cur := &byteCursor{data: data}

	magic, err := cur.take(len(binaryMagic), "header magic")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, binaryMagic[:]) {
		return nil, &domain.InvalidFormatError{Detail: fmt.Sprintf("bad magic % X", magic)}
	}
	version, err := cur.take(1, "header version")
	if err != nil {
		return nil, err
	}
	if version[0] != binaryVersion {
		return nil, &domain.UnsupportedVersionError{Version: version[0]}
	}
	countBytes, err := cur.take(4, "header record count")
	if err != nil {
		return nil, err
	}
	count := binary.LittleEndian.Uint32(countBytes)

	collection := domain.NewCollection()
	for i := uint32(0); i < count; i++ {
		tx, err := c.parseRecord(cur, int(i)+1)
		if err != nil {
			return nil, err
		}
		if err := collection.Append(tx); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	if cur.remaining() > 0 {
		return nil, &domain.InvalidFormatError{
			Detail: fmt.Sprintf("%d trailing bytes after %d declared records", cur.remaining(), count),
		}
	}
	return collection, nil
}

func (c *BinaryCodec) parseRecord(cur *byteCursor, index int) (domain.Transaction, error) {
	what := fmt.Sprintf("record %d", index)

	fixed, err := cur.take(8+8+8+3, what)
	if err != nil {
		return domain.Transaction{}, err
	}
	id := binary.LittleEndian.Uint64(fixed[0:8])
	amount := int64(binary.LittleEndian.Uint64(fixed[8:16]))
	seconds := int64(binary.LittleEndian.Uint64(fixed[16:24]))
	currency := string(bytes.TrimRight(fixed[24:27], "\x00"))

	values := make(map[string]string, len(binaryStringFields))
	for _, name := range binaryStringFields {
		lenBytes, err := cur.take(2, fmt.Sprintf("%s %s length", what, name))
		if err != nil {
			return domain.Transaction{}, err
		}
		n := int(binary.LittleEndian.Uint16(lenBytes))
		start := cur.pos
		raw, err := cur.take(n, fmt.Sprintf("%s %s", what, name))
		if err != nil {
			return domain.Transaction{}, err
		}
		if !utf8.Valid(raw) {
			return domain.Transaction{}, &domain.InvalidEncodingError{Field: name, Offset: int64(start)}
		}
		values[name] = string(raw)
	}

	tx, err := domain.NewTransaction(id, time.Unix(seconds, 0).UTC(), amount, currency,
		values[domain.FieldAccountID],
		values[domain.FieldCounterparty],
		values[domain.FieldDescription],
		values[domain.FieldCategory],
	)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%s: %w", what, err)
	}
	return tx, nil
}

// Serialize writes the header and every transaction in collection order.
// Values the layout cannot represent (currency over three letters, string
// fields over 65535 bytes) are UnsupportedValueError.
func (c *BinaryCodec) Serialize(w io.Writer, collection *domain.Collection) error {
	var buf bytes.Buffer
	buf.Write(binaryMagic[:])
	buf.WriteByte(binaryVersion)

	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[:4], uint32(collection.Len()))
	buf.Write(scratch[:4])

	for _, tx := range collection.Transactions() {
		if len(tx.Currency) > 3 {
			return &domain.UnsupportedValueError{
				Field:  domain.FieldCurrency,
				Value:  tx.Currency,
				Reason: "binary format supports at most 3-letter currency codes",
			}
		}

		binary.LittleEndian.PutUint64(scratch[:], tx.TransactionID)
		buf.Write(scratch[:])
		binary.LittleEndian.PutUint64(scratch[:], uint64(tx.Amount))
		buf.Write(scratch[:])
		binary.LittleEndian.PutUint64(scratch[:], uint64(tx.Timestamp.Unix()))
		buf.Write(scratch[:])

		var currency [3]byte
		copy(currency[:], tx.Currency)
		buf.Write(currency[:])

		for _, name := range binaryStringFields {
			value := tx.FieldValue(name)
			if len(value) > maxBinaryString {
				return &domain.UnsupportedValueError{
					Field:  name,
					Value:  value[:32] + "...",
					Reason: fmt.Sprintf("value is %d bytes, binary format supports at most %d", len(value), maxBinaryString),
				}
			}
			binary.LittleEndian.PutUint16(scratch[:2], uint16(len(value)))
			buf.Write(scratch[:2])
			buf.WriteString(value)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// byteCursor walks a byte slice tracking the offset for truncation errors.
type byteCursor struct {
	data []byte
	pos  int
}

func (c *byteCursor) take(n int, what string) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, &domain.TruncatedInputError{Offset: int64(c.pos), What: what}
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *byteCursor) remaining() int {
	return len(c.data) - c.pos
}
