package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical field names, in the fixed logical order shared by every format.
const (
	FieldTransactionID = "transaction_id"
	FieldTimestamp     = "timestamp"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldAccountID     = "account_id"
	FieldCounterparty  = "counterparty"
	FieldDescription   = "description"
	FieldCategory      = "category"
)

var fieldOrder = []string{
	FieldTransactionID,
	FieldTimestamp,
	FieldAmount,
	FieldCurrency,
	FieldAccountID,
	FieldCounterparty,
	FieldDescription,
	FieldCategory,
}

// FieldNames returns the canonical field names in serialization order.
func FieldNames() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// IsFieldName reports whether name is one of the canonical field names.
func IsFieldName(name string) bool {
	for _, f := range fieldOrder {
		if f == name {
			return true
		}
	}
	return false
}

// Transaction is the canonical in-memory record every codec parses into and
// serializes from. It is immutable after construction; the amount is held in
// minor currency units (e.g. cents) to avoid floating-point drift between
// formats.
type Transaction struct {
	TransactionID uint64    `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	AccountID     string    `json:"account_id"`
	Counterparty  string    `json:"counterparty"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
}

// NewTransaction builds a validated Transaction. The timestamp is normalized
// to UTC and truncated to whole seconds, the resolution the binary layout
// carries, so every format round-trips the same instant.
func NewTransaction(id uint64, ts time.Time, amount int64, currency, accountID, counterparty, description, category string) (Transaction, error) {
	if err := validateCurrency(currency); err != nil {
		return Transaction{}, err
	}
	return Transaction{
		TransactionID: id,
		Timestamp:     ts.UTC().Truncate(time.Second),
		Amount:        amount,
		Currency:      currency,
		AccountID:     accountID,
		Counterparty:  counterparty,
		Description:   description,
		Category:      category,
	}, nil
}

// FromFields builds a Transaction from raw string field values keyed by
// canonical field name. Fields absent from the map are treated as empty.
// Semantic validation failures are reported as InvalidRecordError naming the
// offending field and raw value.
func FromFields(fields map[string]string) (Transaction, error) {
	rawID := fields[FieldTransactionID]
	if rawID == "" {
		return Transaction{}, &InvalidRecordError{Field: FieldTransactionID, Value: rawID, Reason: "missing"}
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return Transaction{}, &InvalidRecordError{Field: FieldTransactionID, Value: rawID, Reason: "not an unsigned integer"}
	}

	ts, err := ParseTimestamp(fields[FieldTimestamp])
	if err != nil {
		return Transaction{}, err
	}

	rawAmount := fields[FieldAmount]
	amount, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil {
		return Transaction{}, &InvalidRecordError{Field: FieldAmount, Value: rawAmount, Reason: "not an integer amount in minor units"}
	}

	return NewTransaction(id, ts, amount,
		fields[FieldCurrency],
		fields[FieldAccountID],
		fields[FieldCounterparty],
		fields[FieldDescription],
		fields[FieldCategory],
	)
}

// ParseTimestamp parses the textual timestamp forms: RFC 3339, or a bare
// calendar date taken as midnight UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC().Truncate(time.Second), nil
	}
	if ts, err := time.Parse(time.DateOnly, raw); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, &InvalidRecordError{Field: FieldTimestamp, Value: raw, Reason: "not an RFC 3339 timestamp or YYYY-MM-DD date"}
}

func validateCurrency(code string) error {
	if len(code) < 1 || len(code) > 8 {
		return &InvalidRecordError{Field: FieldCurrency, Value: code, Reason: "must be 1-8 letters"}
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return &InvalidRecordError{Field: FieldCurrency, Value: code, Reason: "must contain only letters"}
		}
	}
	return nil
}

// FieldValue returns the canonical string form of the named field. The same
// strings drive CSV and text serialization and diff-report display, so a
// value always renders identically regardless of which codec produced it.
func (t Transaction) FieldValue(name string) string {
	switch name {
	case FieldTransactionID:
		return strconv.FormatUint(t.TransactionID, 10)
	case FieldTimestamp:
		return t.Timestamp.UTC().Format(time.RFC3339)
	case FieldAmount:
		return strconv.FormatInt(t.Amount, 10)
	case FieldCurrency:
		return t.Currency
	case FieldAccountID:
		return t.AccountID
	case FieldCounterparty:
		return t.Counterparty
	case FieldDescription:
		return t.Description
	case FieldCategory:
		return t.Category
	}
	return ""
}

// Diff returns the names of fields whose values differ between t and other,
// in canonical field order. An empty result means the records are identical.
func (t Transaction) Diff(other Transaction) []string {
	var differing []string
	for _, name := range fieldOrder {
		if name == FieldTimestamp {
			if !t.Timestamp.Equal(other.Timestamp) {
				differing = append(differing, name)
			}
			continue
		}
		if t.FieldValue(name) != other.FieldValue(name) {
			differing = append(differing, name)
		}
	}
	return differing
}

// String renders the deterministic single-line representation used by diff
// reports, independent of the codec that produced the record.
func (t Transaction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tx %d [%s] %s account=%s",
		t.TransactionID,
		t.Timestamp.UTC().Format(time.RFC3339),
		FormatAmount(t.Amount, t.Currency),
		t.AccountID,
	)
	fmt.Fprintf(&b, " counterparty=%q description=%q category=%q",
		t.Counterparty, t.Description, t.Category)
	return b.String()
}
