// Package boardfile reads and writes board files.
//
// A board file holds a board configuration and its flat card list. Two
// encodings are supported, chosen by file extension:
//
//	# board.toml
//	[config]
//	max_cards_per_row = 3
//	min_height = 100.0
//	max_height = 600.0
//	enable_layout_correction = true
//
//	[[cards]]
//	id = "sales"
//	[cards.layout]
//	row = 0
//	col = 0
//	width_percentage = 50.0
//	height = 300.0
//	[cards.content]
//	title = "Sales"
//
// and the equivalent JSON document with "config" and "cards" keys, using the
// JSON field names of [board.Config] and [board.Card].
//
// Missing config fields take their [board.DefaultConfig] values. Card
// layouts are stored as declared; normalisation is the engine's job.
package boardfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/errors"
)

// Format is a board file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// File is the on-disk form of a board.
type File struct {
	Config board.Config `json:"config" toml:"config"`
	Cards  []board.Card `json:"cards" toml:"cards"`
}

// FormatFor picks the encoding from a path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported board file extension %q (want .toml or .json)", filepath.Ext(path))
	}
}

// Read decodes a board file from r and validates its configuration.
func Read(r io.Reader, format Format) (*File, error) {
	f := &File{Config: board.DefaultConfig()}
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml board")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json board")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown board format %q", format)
	}

	if err := f.Config.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[board.CardID]bool, len(f.Cards))
	for i, c := range f.Cards {
		if err := errors.ValidateCardID(string(c.ID)); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return f, nil
}

// Write encodes f to w.
func Write(w io.Writer, f *File, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml board")
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json board")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown board format %q", format)
	}
	return nil
}

// Load reads the board file at path.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeBoardNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s", path)
	}
	defer fh.Close()

	f, err := Read(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path, replacing the file atomically.
func Save(path string, f *File) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, format); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStorage, err, "rename %s", tmp)
	}
	return nil
}
