// Package config loads the settings of tclarray from a YAML file.
//
// A configuration file looks like this; every key is optional:
//
//	element-limit: 10000
//	no-case: false
//	random-seed: 42
//	db: /var/lib/tclarray/arrays.db
//	network: 127.0.0.1:7777
//	network-timeout: 5s
//	log: /tmp/tclarray.log
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings.
type Config struct {
	// ElementLimit caps the size "array set" may bring an array to. Zero
	// means no limit.
	ElementLimit int `yaml:"element-limit"`
	// NoCase makes patterns match case-insensitively.
	NoCase bool `yaml:"no-case"`
	// RandomSeed seeds "array random". Zero picks a seed from the clock.
	RandomSeed int64 `yaml:"random-seed"`
	// DB is the path of the database backing the "db" array.
	DB string `yaml:"db"`
	// Network is the address of the key-value server backing the "net"
	// array.
	Network string `yaml:"network"`
	// NetworkTimeout bounds each call to the key-value server.
	NetworkTimeout Duration `yaml:"network-timeout"`
	// Log is the path of the debug log.
	Log string `yaml:"log"`
}

// Default returns the default settings.
func Default() Config {
	return Config{NetworkTimeout: Duration(5 * time.Second)}
}

// Duration is a time.Duration written in YAML as a string such as "1.5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads a configuration file. Missing keys keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses the content of a configuration file. Unknown keys are
// errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if cfg.ElementLimit < 0 {
		return Config{}, fmt.Errorf("element-limit must not be negative, got %d", cfg.ElementLimit)
	}
	return cfg, nil
}

// Marshal formats the settings as YAML.
func (cfg Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
