// Package config loads the settings of the multiform service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverTemp = "temp"
	DriverS3   = "s3"
)

type Config struct {
	ListenAddr   string  `yaml:"listen_addr" json:"listen_addr"`
	MaxBodyBytes int64   `yaml:"max_body_bytes" json:"max_body_bytes"`
	Storage      Storage `yaml:"storage" json:"storage"`
}

// Storage selects where uploaded files are written.
type Storage struct {
	Driver string `yaml:"driver" json:"driver"`
	Dir    string `yaml:"dir" json:"dir"`
	Bucket string `yaml:"bucket" json:"bucket"`
	Prefix string `yaml:"prefix" json:"prefix"`
	Region string `yaml:"region" json:"region"`
}

// Default returns the settings used when neither the file nor the
// environment says otherwise.
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		MaxBodyBytes: 32 << 20,
		Storage:      Storage{Driver: DriverTemp},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error. An
// empty path falls back to CONFIG_PATH and then ./multiform.yaml.
func Load(path string) (*Config, error) {
	if path == "" {
		path = getenv("CONFIG_PATH", "./multiform.yaml")
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: MAX_BODY_BYTES: %w", err)
		}
		c.MaxBodyBytes = n
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
	if v := os.Getenv("S3_PREFIX"); v != "" {
		c.Storage.Prefix = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		c.Storage.Region = v
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("config: listen_addr is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}

	switch c.Storage.Driver {
	case DriverTemp:
	case DriverS3:
		if c.Storage.Bucket == "" {
			return errors.New("config: storage.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
