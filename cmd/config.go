package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".csvdecoder.yaml"

// Config holds defaults read from the yaml config file. Command-line flags
// take precedence over every field.
type Config struct {
	Encoding   string   `yaml:"encoding"`
	OnError    string   `yaml:"on-error"`
	Comma      string   `yaml:"comma"`
	CRLF       bool     `yaml:"crlf"`
	LazyQuotes bool     `yaml:"lazy-quotes"`
	Columns    []string `yaml:"columns"`
}

// loadConfig reads the config file at path. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Comma != "" && utf8.RuneCountInString(cfg.Comma) != 1 {
		return cfg, fmt.Errorf("invalid comma %q in %s: must be a single character", cfg.Comma, path)
	}
	return cfg, nil
}
