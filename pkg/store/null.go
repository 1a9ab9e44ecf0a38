package store

import (
	"context"

	"github.com/matzehuels/cardboard/pkg/errors"
)

// NullStore is a no-op store that never keeps anything.
// Useful for testing or when persistence should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Load always reports the board as missing.
func (s *NullStore) Load(ctx context.Context, id string) (*Board, error) {
	if err := errors.ValidateBoardID(id); err != nil {
		return nil, err
	}
	return nil, notFound(id)
}

// Save validates the id and discards the board.
func (s *NullStore) Save(ctx context.Context, b *Board) error {
	return errors.ValidateBoardID(b.ID)
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, id string) error {
	return nil
}

// List returns no ids.
func (s *NullStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
