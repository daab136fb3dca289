package usecase

import (
	"context"
	"fmt"
	"io"

	"banktx/internal/codec"
)

// ConverterUseCase orchestrates a single format conversion: parse one input
// collection, serialize it in another format.
type ConverterUseCase struct {
	repo TransactionRepository
}

// NewConverterUseCase creates a new instance of the usecase.
func NewConverterUseCase(repo TransactionRepository) *ConverterUseCase {
	return &ConverterUseCase{repo: repo}
}

// Convert reads the collection at path in format `from` and writes it to w
// in format `to`. Any codec error aborts the conversion; nothing is written
// on a parse failure.
func (uc *ConverterUseCase) Convert(ctx context.Context, path string, from, to codec.Format, w io.Writer) error {
	collection, err := uc.repo.GetTransactions(ctx, path, from)
	if err != nil {
		return fmt.Errorf("could not get transactions: %w", err)
	}

	out, err := codec.For(to)
	if err != nil {
		return err
	}
	if err := out.Serialize(w, collection); err != nil {
		return fmt.Errorf("could not serialize as %s: %w", to, err)
	}
	return nil
}
