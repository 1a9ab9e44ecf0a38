package store

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/matzehuels/cardboard/pkg/errors"
)

const boardExt = ".json"

// DiskStore keeps one JSON document per board in a directory.
type DiskStore struct {
	d   *diskv.Diskv
	dir string
}

// NewDiskStore creates a disk store rooted at dir.
// The directory will be created if it doesn't exist.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create board directory %s", dir)
	}
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: boardPath,
			InverseTransform:  boardKey,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		dir: dir,
	}, nil
}

// Dir returns the directory boards are stored in.
func (s *DiskStore) Dir() string { return s.dir }

// Load reads a board from disk.
func (s *DiskStore) Load(ctx context.Context, id string) (b *Board, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "disk", id, start, err) }()

	if err := errors.ValidateBoardID(id); err != nil {
		return nil, err
	}
	if !s.d.Has(id) {
		return nil, notFound(id)
	}
	data, err := s.d.Read(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read board %s", id)
	}
	return decode(id, data)
}

// Save writes a board to disk, replacing any previous version.
func (s *DiskStore) Save(ctx context.Context, b *Board) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "disk", b, start, err) }()

	if err := errors.ValidateBoardID(b.ID); err != nil {
		return err
	}
	data, err := encode(b)
	if err != nil {
		return err
	}
	if err := s.d.Write(b.ID, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write board %s", b.ID)
	}
	return nil
}

// Delete removes a board file.
func (s *DiskStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateBoardID(id); err != nil {
		return err
	}
	if !s.d.Has(id) {
		return nil
	}
	if err := s.d.Erase(id); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "erase board %s", id)
	}
	return nil
}

// List returns the ids of all boards on disk.
func (s *DiskStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	for key := range s.d.Keys(ctx.Done()) {
		if key != "" {
			ids = append(ids, key)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// Close does nothing for disk store.
func (s *DiskStore) Close() error {
	return nil
}

func boardPath(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key + boardExt}
}

func boardKey(pk *diskv.PathKey) string {
	if !strings.HasSuffix(pk.FileName, boardExt) {
		return ""
	}
	return strings.TrimSuffix(pk.FileName, boardExt)
}

// Ensure DiskStore implements Store.
var _ Store = (*DiskStore)(nil)
