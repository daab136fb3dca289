package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banktx/internal/codec"
	"banktx/internal/domain"
	"banktx/internal/usecase"
	mock_usecase "banktx/internal/usecase/mocks"
)

func TestConverterUseCase_Convert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	collection := buildCollection(t, mustTx(t, 1, 1050, "ACC-1"), mustTx(t, 2, -300, "ACC-2"))

	t.Run("csv to txt writes the text rendition", func(t *testing.T) {
		repo := mock_usecase.NewMockTransactionRepository(ctrl)
		repo.EXPECT().GetTransactions(gomock.Any(), "input.csv", codec.FormatCSV).
			Return(collection, nil)

		var out bytes.Buffer
		err := usecase.NewConverterUseCase(repo).Convert(context.Background(), "input.csv", codec.FormatCSV, codec.FormatText, &out)
		require.NoError(t, err)

		textCodec, err := codec.For(codec.FormatText)
		require.NoError(t, err)
		var want bytes.Buffer
		require.NoError(t, textCodec.Serialize(&want, collection))
		assert.Equal(t, want.String(), out.String())
	})

	t.Run("txt to binary round-trips through parse", func(t *testing.T) {
		repo := mock_usecase.NewMockTransactionRepository(ctrl)
		repo.EXPECT().GetTransactions(gomock.Any(), "input.txt", codec.FormatText).
			Return(collection, nil)

		var out bytes.Buffer
		err := usecase.NewConverterUseCase(repo).Convert(context.Background(), "input.txt", codec.FormatText, codec.FormatBinary, &out)
		require.NoError(t, err)

		binaryCodec, err := codec.For(codec.FormatBinary)
		require.NoError(t, err)
		parsed, err := binaryCodec.Parse(&out)
		require.NoError(t, err)
		assert.Equal(t, collection.Transactions(), parsed.Transactions())
	})

	t.Run("repository error aborts before writing", func(t *testing.T) {
		repo := mock_usecase.NewMockTransactionRepository(ctrl)
		repo.EXPECT().GetTransactions(gomock.Any(), "missing.csv", codec.FormatCSV).
			Return(nil, errors.New("failed to open transaction file"))

		var out bytes.Buffer
		err := usecase.NewConverterUseCase(repo).Convert(context.Background(), "missing.csv", codec.FormatCSV, codec.FormatText, &out)
		assert.Error(t, err)
		assert.Zero(t, out.Len())
	})

	t.Run("serialize error propagates", func(t *testing.T) {
		wide, err := domain.NewTransaction(1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100, "EURO", "ACC", "", "", "")
		require.NoError(t, err)

		repo := mock_usecase.NewMockTransactionRepository(ctrl)
		repo.EXPECT().GetTransactions(gomock.Any(), "input.csv", codec.FormatCSV).
			Return(buildCollection(t, wide), nil)

		var out bytes.Buffer
		err = usecase.NewConverterUseCase(repo).Convert(context.Background(), "input.csv", codec.FormatCSV, codec.FormatBinary, &out)

		var unsupported *domain.UnsupportedValueError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, domain.FieldCurrency, unsupported.Field)
		assert.Zero(t, out.Len())
	})
}
