package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no file is given.
const DefaultFileName = ".provisioning-mapper.yaml"

// DefaultCharset is used when the file does not name one.
const DefaultCharset = "UTF-8"

// Config is the tool configuration.
type Config struct {
	// Charset decodes provisioning files.
	Charset string `yaml:"charset,omitempty"`
	// ScanConcurrency bounds parallel file reads during scans. 0 means one
	// reader per CPU.
	ScanConcurrency int `yaml:"scanConcurrency,omitempty"`
	// RunModes restricts exports to the run modes active for these names.
	// Empty exports every run mode.
	RunModes []string `yaml:"runModes,omitempty"`
	Log      Log      `yaml:"log,omitempty"`
}

// Log configures the logger.
type Log struct {
	Verbosity   int  `yaml:"verbosity,omitempty"`
	Development bool `yaml:"development,omitempty"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a configuration file.
func LoadFile(fs vfs.FileSystem, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOptional loads path when it exists and returns Default otherwise.
func LoadOptional(fs vfs.FileSystem, path string) (*Config, error) {
	exists, err := vfs.FileExists(fs, path)
	if err != nil && !vfs.IsErrNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	if !exists {
		return Default(), nil
	}

	return LoadFile(fs, path)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.ScanConcurrency < 0 {
		return fmt.Errorf("scanConcurrency must not be negative, got %d", c.ScanConcurrency)
	}

	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}

	return nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
}
