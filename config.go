package relaypager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds paginator defaults loaded from a file.
//
// Example:
//
//	cursor:
//	  limit: 20
//	pages:
//	  limit: 50
//	  include_page_count: true
type Config struct {
	Cursor CursorConfig `yaml:"cursor" json:"cursor"`
	Pages  PageConfig   `yaml:"pages" json:"pages"`
}

type CursorConfig struct {
	// Limit is the default cursor page size. Zero leaves it unset.
	Limit int `yaml:"limit" json:"limit"`
	// Unlimited makes NoLimit the default.
	Unlimited bool `yaml:"unlimited" json:"unlimited"`
}

type PageConfig struct {
	Limit            int  `yaml:"limit" json:"limit"`
	Unlimited        bool `yaml:"unlimited" json:"unlimited"`
	IncludePageCount bool `yaml:"include_page_count" json:"includePageCount"`
}

// ParseConfig decodes a YAML config. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cannot parse pagination config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and decodes a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read pagination config: %w", err)
	}

	return ParseConfig(data)
}

func (c Config) validate() error {
	if err := limitFromConfig(c.Cursor.Limit, c.Cursor.Unlimited).validateIfSet(); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}

	if err := limitFromConfig(c.Pages.Limit, c.Pages.Unlimited).validateIfSet(); err != nil {
		return fmt.Errorf("pages: %w", err)
	}

	return nil
}

// DefaultsFromConfig converts a Config into paginator defaults. The codec is
// left unset.
func DefaultsFromConfig[T any](cfg Config) Defaults[T] {
	return Defaults[T]{
		CursorLimit:      limitFromConfig(cfg.Cursor.Limit, cfg.Cursor.Unlimited),
		PageLimit:        limitFromConfig(cfg.Pages.Limit, cfg.Pages.Unlimited),
		IncludePageCount: cfg.Pages.IncludePageCount,
	}
}

func limitFromConfig(limit int, unlimited bool) Limit {
	switch {
	case unlimited:
		return NoLimit
	case limit == 0:
		return Limit{}
	default:
		return LimitOf(limit)
	}
}

func (l Limit) validateIfSet() error {
	if l.IsZero() {
		return nil
	}

	return l.validate()
}
