// Package store persists boards for hosts of the layout engine.
//
// The engine itself never persists anything: a host registers a layout
// change callback and writes the board out from there. [Persister] is that
// callback, bound to one board id and one [Store].
//
// Three backends are provided:
//   - [NullStore]: keeps nothing, for ephemeral sessions and tests
//   - [DiskStore]: one JSON document per board under a directory (diskv)
//   - [RedisStore]: one JSON value per board in Redis
//
// Board ids are validated with [errors.ValidateBoardID]; a missing board is
// reported with code BOARD_NOT_FOUND and backend failures with
// STORAGE_ERROR.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/errors"
	"github.com/matzehuels/cardboard/pkg/observability"
)

// Board is a persisted board: its configuration and flat card list.
type Board struct {
	ID        string       `json:"id"`
	Config    board.Config `json:"config"`
	Cards     []board.Card `json:"cards"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Store reads and writes boards by id.
type Store interface {
	// Load returns the board with the given id, or a BOARD_NOT_FOUND error.
	Load(ctx context.Context, id string) (*Board, error)

	// Save creates or replaces a board.
	Save(ctx context.Context, b *Board) error

	// Delete removes a board. Deleting a missing board is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored boards in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeBoardNotFound, "board %q not found", id)
}

func encode(b *Board) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode board %s", b.ID)
	}
	return data, nil
}

func decode(id string, data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode board %s", id)
	}
	b.ID = id
	return &b, nil
}

func observeLoad(ctx context.Context, backend, id string, start time.Time, err error) {
	observability.Store().OnLoad(ctx, backend, id, time.Since(start), err)
}

func observeSave(ctx context.Context, backend string, b *Board, start time.Time, err error) {
	observability.Store().OnSave(ctx, backend, b.ID, len(b.Cards), time.Since(start), err)
}
