package board

import (
	"testing"

	"github.com/matzehuels/cardboard/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.MaxCardsPerRow != 3 {
		t.Errorf("MaxCardsPerRow = %d, want 3", cfg.MaxCardsPerRow)
	}
	if !cfg.DisableCardDropInBetweenRows {
		t.Error("DisableCardDropInBetweenRows should default to true")
	}
	if !cfg.EnableLayoutCorrection {
		t.Error("EnableLayoutCorrection should default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"single card rows", func(c *Config) { c.MaxCardsPerRow = 1 }, false},
		{"zero capacity", func(c *Config) { c.MaxCardsPerRow = 0 }, true},
		{"zero min height", func(c *Config) { c.MinHeight = 0 }, true},
		{"inverted heights", func(c *Config) { c.MinHeight, c.MaxHeight = 500, 400 }, true},
		{"equal heights", func(c *Config) { c.MinHeight, c.MaxHeight = 400, 400 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestClampHeight(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		in, want float64
	}{
		{50, 100},
		{100, 100},
		{350, 350},
		{900, 600},
	}
	for _, tt := range tests {
		if got := cfg.ClampHeight(tt.in); got != tt.want {
			t.Errorf("ClampHeight(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
