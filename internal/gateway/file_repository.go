package gateway

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"banktx/internal/codec"
	"banktx/internal/domain"
)

// FileTransactionRepository implements the usecase TransactionRepository
// interface over local files, selecting a codec by format tag.
type FileTransactionRepository struct {
	log zerolog.Logger
}

// NewFileTransactionRepository creates a new repository instance.
func NewFileTransactionRepository(log zerolog.Logger) *FileTransactionRepository {
	return &FileTransactionRepository{log: log}
}

// GetTransactions opens the file at path and parses it with the codec for
// the given format. The file handle is released on every exit path.
func (r *FileTransactionRepository) GetTransactions(ctx context.Context, path string, format codec.Format) (*domain.Collection, error) {
	c, err := codec.For(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	collection, err := c.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s transaction file %s: %w", format, path, err)
	}

	r.log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("records", collection.Len()).
		Msg("parsed transaction file")
	return collection, nil
}
