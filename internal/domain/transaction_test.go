package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() map[string]string {
	return map[string]string{
		FieldTransactionID: "42",
		FieldTimestamp:     "2024-03-01T10:00:00Z",
		FieldAmount:        "1050",
		FieldCurrency:      "USD",
		FieldAccountID:     "ACC-1",
		FieldCounterparty:  "Acme, Inc.",
		FieldDescription:   "weekly shop",
		FieldCategory:      "groceries",
	}
}

func TestFromFields(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		tx, err := FromFields(validFields())
		require.NoError(t, err)
		assert.Equal(t, uint64(42), tx.TransactionID)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), tx.Timestamp)
		assert.Equal(t, int64(1050), tx.Amount)
		assert.Equal(t, "USD", tx.Currency)
		assert.Equal(t, "ACC-1", tx.AccountID)
		assert.Equal(t, "Acme, Inc.", tx.Counterparty)
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		fields := validFields()
		fields[FieldCounterparty] = ""
		fields[FieldDescription] = ""
		fields[FieldCategory] = ""
		tx, err := FromFields(fields)
		require.NoError(t, err)
		assert.Empty(t, tx.Counterparty)
		assert.Empty(t, tx.Category)
	})

	t.Run("date-only timestamp is midnight UTC", func(t *testing.T) {
		fields := validFields()
		fields[FieldTimestamp] = "2024-03-01"
		tx, err := FromFields(fields)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), tx.Timestamp)
	})

	t.Run("negative amount", func(t *testing.T) {
		fields := validFields()
		fields[FieldAmount] = "-300"
		tx, err := FromFields(fields)
		require.NoError(t, err)
		assert.Equal(t, int64(-300), tx.Amount)
	})

	tests := []struct {
		name      string
		mutate    func(map[string]string)
		wantField string
	}{
		{
			name:      "missing transaction id",
			mutate:    func(f map[string]string) { delete(f, FieldTransactionID) },
			wantField: FieldTransactionID,
		},
		{
			name:      "non-numeric transaction id",
			mutate:    func(f map[string]string) { f[FieldTransactionID] = "abc" },
			wantField: FieldTransactionID,
		},
		{
			name:      "negative transaction id",
			mutate:    func(f map[string]string) { f[FieldTransactionID] = "-1" },
			wantField: FieldTransactionID,
		},
		{
			name:      "fractional amount",
			mutate:    func(f map[string]string) { f[FieldAmount] = "10.50" },
			wantField: FieldAmount,
		},
		{
			name:      "unparseable timestamp",
			mutate:    func(f map[string]string) { f[FieldTimestamp] = "yesterday" },
			wantField: FieldTimestamp,
		},
		{
			name:      "invalid calendar date",
			mutate:    func(f map[string]string) { f[FieldTimestamp] = "2024-02-30" },
			wantField: FieldTimestamp,
		},
		{
			name:      "empty currency",
			mutate:    func(f map[string]string) { f[FieldCurrency] = "" },
			wantField: FieldCurrency,
		},
		{
			name:      "numeric currency",
			mutate:    func(f map[string]string) { f[FieldCurrency] = "US1" },
			wantField: FieldCurrency,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(fields)

			_, err := FromFields(fields)
			var invalid *InvalidRecordError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestNewTransaction_TruncatesToSecondsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 3, 1, 13, 0, 0, 123456789, loc)

	tx, err := NewTransaction(1, ts, 100, "EUR", "A", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), tx.Timestamp)
}

func TestTransaction_Diff(t *testing.T) {
	base, err := FromFields(validFields())
	require.NoError(t, err)

	t.Run("identical records", func(t *testing.T) {
		assert.Empty(t, base.Diff(base))
	})

	t.Run("single field", func(t *testing.T) {
		other := base
		other.Amount = 9999
		assert.Equal(t, []string{FieldAmount}, base.Diff(other))
	})

	t.Run("multiple fields in canonical order", func(t *testing.T) {
		other := base
		other.Category = "transport"
		other.Amount = 9999
		other.Currency = "EUR"
		assert.Equal(t, []string{FieldAmount, FieldCurrency, FieldCategory}, base.Diff(other))
	})

	t.Run("symmetric", func(t *testing.T) {
		other := base
		other.Description = "changed"
		assert.Equal(t, base.Diff(other), other.Diff(base))
	})
}

func TestTransaction_FieldValue(t *testing.T) {
	tx, err := FromFields(validFields())
	require.NoError(t, err)

	assert.Equal(t, "42", tx.FieldValue(FieldTransactionID))
	assert.Equal(t, "2024-03-01T10:00:00Z", tx.FieldValue(FieldTimestamp))
	assert.Equal(t, "1050", tx.FieldValue(FieldAmount))
	assert.Equal(t, "Acme, Inc.", tx.FieldValue(FieldCounterparty))
	assert.Equal(t, "", tx.FieldValue("no_such_field"))
}

func TestTransaction_String(t *testing.T) {
	tx, err := FromFields(validFields())
	require.NoError(t, err)

	want := `tx 42 [2024-03-01T10:00:00Z] 10.50 USD account=ACC-1 counterparty="Acme, Inc." description="weekly shop" category="groceries"`
	assert.Equal(t, want, tx.String())
}

func TestFieldNames_Copy(t *testing.T) {
	names := FieldNames()
	names[0] = "clobbered"
	assert.Equal(t, FieldTransactionID, FieldNames()[0])
}

func TestIsFieldName(t *testing.T) {
	assert.True(t, IsFieldName(FieldCategory))
	assert.False(t, IsFieldName("TX_ID"))
}

func TestInvalidRecordError_Message(t *testing.T) {
	err := &InvalidRecordError{Field: FieldAmount, Value: "x", Reason: "not an integer amount in minor units"}
	assert.Contains(t, err.Error(), FieldAmount)
	assert.Contains(t, err.Error(), `"x"`)
	assert.True(t, errors.As(error(err), new(*InvalidRecordError)))
}

func TestUnsupportedValueError_Message(t *testing.T) {
	err := &UnsupportedValueError{Field: FieldCurrency, Value: "EURO", Reason: "binary format supports at most 3-letter currency codes"}
	assert.Contains(t, err.Error(), FieldCurrency)
	assert.Contains(t, err.Error(), `"EURO"`)
	assert.Contains(t, err.Error(), "3-letter")
}
