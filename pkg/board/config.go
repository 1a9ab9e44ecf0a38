package board

import (
	"github.com/matzehuels/cardboard/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for engine, CLI and API
// =============================================================================

const (
	// DefaultMaxCardsPerRow is the row capacity used when none is configured.
	DefaultMaxCardsPerRow = 3

	// DefaultMinHeight is the lower clamp for row height resizing, in pixels.
	DefaultMinHeight = 100.0

	// DefaultMaxHeight is the upper clamp for row height resizing, in pixels.
	DefaultMaxHeight = 600.0
)

// Config holds the per-session board settings. It is read-only once an
// engine has been constructed from it.
type Config struct {
	MaxCardsPerRow int     `json:"maxCardsPerRow" toml:"max_cards_per_row" mapstructure:"max_cards_per_row"`
	MinHeight      float64 `json:"minHeight" toml:"min_height" mapstructure:"min_height"`
	MaxHeight      float64 `json:"maxHeight" toml:"max_height" mapstructure:"max_height"`

	DisableDrag                  bool `json:"disableDrag" toml:"disable_drag" mapstructure:"disable_drag"`
	DisableResizeCardWidth       bool `json:"disableResizeCardWidth" toml:"disable_resize_card_width" mapstructure:"disable_resize_card_width"`
	DisableResizeRowHeight       bool `json:"disableResizeRowHeight" toml:"disable_resize_row_height" mapstructure:"disable_resize_row_height"`
	DisableAddCard               bool `json:"disableAddCard" toml:"disable_add_card" mapstructure:"disable_add_card"`
	DisableCardDropInBetweenRows bool `json:"disableCardDropInBetweenRows" toml:"disable_card_drop_in_between_rows" mapstructure:"disable_card_drop_in_between_rows"`
	EnableLayoutCorrection       bool `json:"enableLayoutCorrection" toml:"enable_layout_correction" mapstructure:"enable_layout_correction"`
}

// DefaultConfig returns the configuration used when a host supplies none.
// Dropping cards between rows is disabled by default because committing such
// a drop is not supported; layout correction is enabled.
func DefaultConfig() Config {
	return Config{
		MaxCardsPerRow:               DefaultMaxCardsPerRow,
		MinHeight:                    DefaultMinHeight,
		MaxHeight:                    DefaultMaxHeight,
		DisableCardDropInBetweenRows: true,
		EnableLayoutCorrection:       true,
	}
}

// Validate checks that the configuration can drive an engine.
func (c Config) Validate() error {
	if c.MaxCardsPerRow < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max cards per row must be >= 1, got %d", c.MaxCardsPerRow)
	}
	if c.MinHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min height must be positive, got %v", c.MinHeight)
	}
	if c.MaxHeight < c.MinHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "max height %v is below min height %v", c.MaxHeight, c.MinHeight)
	}
	return nil
}

// ClampHeight limits h to [MinHeight, MaxHeight].
func (c Config) ClampHeight(h float64) float64 {
	return min(c.MaxHeight, max(c.MinHeight, h))
}
