package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/errors"
)

// Store kinds selectable with --store.
const (
	storeFile  = "file"
	storeDisk  = "disk"
	storeRedis = "redis"
)

// settings is the resolved CLI configuration.
type settings struct {
	Board    string `mapstructure:"board"`
	Store    string `mapstructure:"store"`
	StoreDir string `mapstructure:"store_dir"`
	RedisURL string `mapstructure:"redis_url"`
	BoardID  string `mapstructure:"board_id"`
	Addr     string `mapstructure:"addr"`
}

// bindFlags registers the persistent flags and binds them to viper keys.
func (c *CLI) bindFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.String("config", "", "config file (default ./.cardboard.yaml or ~/.cardboard.yaml)")
	f.StringP("board", "b", defaultBoardFile, "board file (.toml or .json)")
	f.String("store", storeFile, "where the board lives: file, disk or redis")
	f.String("store-dir", "", "board directory for --store disk")
	f.String("redis-url", "redis://localhost:6379/0", "Redis URL for --store redis")
	f.String("board-id", "default", "board id for --store disk or redis")

	_ = c.v.BindPFlag("config_file", f.Lookup("config"))
	_ = c.v.BindPFlag("board", f.Lookup("board"))
	_ = c.v.BindPFlag("store", f.Lookup("store"))
	_ = c.v.BindPFlag("store_dir", f.Lookup("store-dir"))
	_ = c.v.BindPFlag("redis_url", f.Lookup("redis-url"))
	_ = c.v.BindPFlag("board_id", f.Lookup("board-id"))
}

// loadSettings reads the config file and environment into c.settings.
func (c *CLI) loadSettings() error {
	v := c.v
	v.SetDefault("addr", defaultAddr)
	v.SetEnvPrefix("CARDBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".cardboard") // any extension viper supports
		if override := v.GetString("config_path"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file")
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode settings")
	}
	if s.StoreDir == "" {
		dir, err := dataDir()
		if err != nil {
			return fmt.Errorf("get data dir: %w", err)
		}
		s.StoreDir = filepath.Join(dir, "boards")
	}
	switch s.Store {
	case storeFile, storeDisk, storeRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store %q (want file, disk or redis)", s.Store)
	}

	c.settings = s
	c.Logger.Debug("settings loaded", "config", v.ConfigFileUsed(), "store", s.Store, "board", s.Board)
	return nil
}

// applyConfigOverrides replaces the fields of cfg set under the "config" key
// of the config file or environment.
func applyConfigOverrides(v *viper.Viper, cfg *board.Config) {
	ints := map[string]*int{
		"config.max_cards_per_row": &cfg.MaxCardsPerRow,
	}
	floats := map[string]*float64{
		"config.min_height": &cfg.MinHeight,
		"config.max_height": &cfg.MaxHeight,
	}
	bools := map[string]*bool{
		"config.disable_drag":                      &cfg.DisableDrag,
		"config.disable_resize_card_width":         &cfg.DisableResizeCardWidth,
		"config.disable_resize_row_height":         &cfg.DisableResizeRowHeight,
		"config.disable_add_card":                  &cfg.DisableAddCard,
		"config.disable_card_drop_in_between_rows": &cfg.DisableCardDropInBetweenRows,
		"config.enable_layout_correction":          &cfg.EnableLayoutCorrection,
	}
	for k, p := range ints {
		if v.IsSet(k) {
			*p = v.GetInt(k)
		}
	}
	for k, p := range floats {
		if v.IsSet(k) {
			*p = v.GetFloat64(k)
		}
	}
	for k, p := range bools {
		if v.IsSet(k) {
			*p = v.GetBool(k)
		}
	}
}
