package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banktx/internal/codec"
	"banktx/internal/domain"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileTransactionRepository_GetTransactions(t *testing.T) {
	repo := NewFileTransactionRepository(zerolog.Nop())
	ctx := context.Background()

	t.Run("valid csv file", func(t *testing.T) {
		path := writeTempFile(t, "transactions.csv",
			"transaction_id,timestamp,amount,currency,account_id,counterparty,description,category\n"+
				"1,2024-03-01T10:00:00Z,1050,USD,ACC-1,,,\n"+
				"2,2024-03-02T00:00:00Z,-300,JPY,ACC-2,,,\n")

		got, err := repo.GetTransactions(ctx, path, codec.FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2}, got.IDs())
	})

	t.Run("valid txt file", func(t *testing.T) {
		path := writeTempFile(t, "transactions.txt",
			"transaction_id: 9\n"+
				"timestamp: 2024-03-01\n"+
				"amount: 100\n"+
				"currency: USD\n"+
				"account_id: ACC-9\n"+
				"counterparty: \n"+
				"description: \n"+
				"category: \n")

		got, err := repo.GetTransactions(ctx, path, codec.FormatText)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
	})

	t.Run("file not found", func(t *testing.T) {
		got, err := repo.GetTransactions(ctx, filepath.Join(t.TempDir(), "nope.csv"), codec.FormatCSV)
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown format", func(t *testing.T) {
		got, err := repo.GetTransactions(ctx, "whatever.xml", codec.Format("xml"))
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("parse errors keep their kind through wrapping", func(t *testing.T) {
		path := writeTempFile(t, "bad.csv",
			"transaction_id,timestamp,amount,currency,account_id,counterparty,description,category\n"+
				"1,2024-03-01T10:00:00Z,100,USD\n")

		got, err := repo.GetTransactions(ctx, path, codec.FormatCSV)
		assert.Nil(t, got)

		var malformed *domain.MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, 2, malformed.Line)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("binary file parsed as csv fails cleanly", func(t *testing.T) {
		path := writeTempFile(t, "data.bin", "BTXF\x01\x00\x00\x00\x00")

		got, err := repo.GetTransactions(ctx, path, codec.FormatCSV)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
