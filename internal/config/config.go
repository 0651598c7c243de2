package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Duration is a time.Duration that reads from JSON either as a Go duration
// string ("750ms") or as a number of seconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("interval must be a duration string or seconds: %s", data)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// ParseDuration accepts "1.5s" style durations as well as plain seconds.
func ParseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use e.g. 500ms or 1.5)", s)
	}
	return d, nil
}

// Keys lists the key names bound to each action, in bubbletea's
// key.String() form ("a", "left", "ctrl+c", " " for space).
type Keys struct {
	Left       []string `json:"left"`
	Right      []string `json:"right"`
	Down       []string `json:"down"`
	Rotate     []string `json:"rotate"`
	RotateBack []string `json:"rotate_back"`
	HardDrop   []string `json:"hard_drop"`
	Quit       []string `json:"quit"`
}

// Config is the settings file. Command line flags override it.
type Config struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	PoolSize int      `json:"pool_size"`
	Preview  int      `json:"preview"`
	Interval Duration `json:"interval"`
	Keys     Keys     `json:"keys"`
}

// Default returns the classic settings: a 10x20 well, ten pooled pieces of
// which four are previewed, one gravity step per second and wasd controls.
func Default() Config {
	return Config{
		Width:    10,
		Height:   20,
		PoolSize: 10,
		Preview:  4,
		Interval: Duration(time.Second),
		Keys: Keys{
			Left:       []string{"a", "left"},
			Right:      []string{"d", "right"},
			Down:       []string{"s", "down"},
			Rotate:     []string{"w", "up"},
			RotateBack: []string{"q"},
			HardDrop:   []string{" "},
			Quit:       []string{"ctrl+c", "esc"},
		},
	}
}

// DefaultPath is ~/.config/go-tetris/config.json on Linux.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(root, "go-tetris", "config.json"), nil
}

// Load reads the settings at path on top of Default. A missing file is not
// an error. Fields left out of the file, including individual key lists,
// keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var file Config
	if err := json.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.PoolSize != 0 {
		c.PoolSize = o.PoolSize
	}
	if o.Preview != 0 {
		c.Preview = o.Preview
	}
	if o.Interval != 0 {
		c.Interval = o.Interval
	}
	mergeKeys(&c.Keys.Left, o.Keys.Left)
	mergeKeys(&c.Keys.Right, o.Keys.Right)
	mergeKeys(&c.Keys.Down, o.Keys.Down)
	mergeKeys(&c.Keys.Rotate, o.Keys.Rotate)
	mergeKeys(&c.Keys.RotateBack, o.Keys.RotateBack)
	mergeKeys(&c.Keys.HardDrop, o.Keys.HardDrop)
	mergeKeys(&c.Keys.Quit, o.Keys.Quit)
}

func mergeKeys(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// Save writes c as indented JSON, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings the engine cannot play with.
func (c Config) Validate() error {
	switch {
	case c.Width < 4:
		return fmt.Errorf("width %d is narrower than the widest piece", c.Width)
	case c.Height < 4:
		return fmt.Errorf("height %d is shorter than the tallest piece", c.Height)
	case c.PoolSize < 1:
		return fmt.Errorf("pool size must be at least 1, got %d", c.PoolSize)
	case c.Preview < 0 || c.Preview >= c.PoolSize:
		// Once the head is promoted only PoolSize-1 pieces wait.
		return fmt.Errorf("preview %d must be between 0 and pool size - 1 (%d)", c.Preview, c.PoolSize-1)
	case c.Interval <= 0:
		return fmt.Errorf("interval must be positive, got %s", time.Duration(c.Interval))
	}
	return nil
}
