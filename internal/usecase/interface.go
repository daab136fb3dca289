package usecase

import (
	"context"

	"banktx/internal/codec"
	"banktx/internal/domain"
)

// TransactionRepository defines the interface for loading transaction
// collections. The usecase layer depends on this interface, not on a
// concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TransactionRepository
type TransactionRepository interface {
	GetTransactions(ctx context.Context, path string, format codec.Format) (*domain.Collection, error)
}
