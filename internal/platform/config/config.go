// Package config loads the registry configuration.
//
// Values come from a YAML file ($SOUVENIRS_CONFIG, default
// configs/souvenirs.yaml) and are then overridden by environment variables.
// A missing file is not an error; a missing storage path is.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/souvenir-registry/internal/platform/blob"
)

// DefaultPath is used when SOUVENIRS_CONFIG is unset.
const DefaultPath = "configs/souvenirs.yaml"

// ErrMissingStoragePath is returned when a collection has no snapshot path.
var ErrMissingStoragePath = errors.New("storage path is not configured")

// Config is the full process configuration.
type Config struct {
	Storage       StorageConfig    `yaml:"storage"`
	Manufacturers CollectionConfig `yaml:"manufacturers"`
	Souvenirs     CollectionConfig `yaml:"souvenirs"`
	HTTP          HTTPConfig       `yaml:"http"`
	Temporal      TemporalConfig   `yaml:"temporal"`
}

// StorageConfig selects the blob driver backing both collections.
type StorageConfig struct {
	Driver      string   `yaml:"driver"`
	Root        string   `yaml:"root"`
	SQLitePath  string   `yaml:"sqlite-path"`
	PostgresDSN string   `yaml:"postgres-dsn"`
	S3          S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	PathStyle bool   `yaml:"path-style"`
}

// CollectionConfig mirrors the manufacturers.file-path / souvenirs.file-path keys.
type CollectionConfig struct {
	FilePath string `yaml:"file-path"`
}

type HTTPConfig struct {
	Port string `yaml:"port"`
}

type TemporalConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Address   string `yaml:"address"`
	Namespace string `yaml:"namespace"`
	TaskQueue string `yaml:"task-queue"`
}

// Load resolves the config file path from the environment and loads it.
func Load() (Config, error) {
	return LoadFromPath(envDefault("SOUVENIRS_CONFIG", DefaultPath))
}

// LoadFromPath reads path (if it exists), applies environment overrides and
// defaults, then validates the result.
func LoadFromPath(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every process needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Manufacturers.FilePath) == "" {
		return fmt.Errorf("%w: manufacturers.file-path", ErrMissingStoragePath)
	}
	if strings.TrimSpace(c.Souvenirs.FilePath) == "" {
		return fmt.Errorf("%w: souvenirs.file-path", ErrMissingStoragePath)
	}
	switch blob.Driver(c.Storage.Driver) {
	case blob.DriverFilesystem, blob.DriverMemory, blob.DriverSQLite, blob.DriverPostgres, blob.DriverS3:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// Blob converts the storage section into the blob factory config.
func (c Config) Blob() blob.Config {
	return blob.Config{
		Driver:      blob.Driver(c.Storage.Driver),
		Root:        c.Storage.Root,
		SQLitePath:  c.Storage.SQLitePath,
		PostgresDSN: c.Storage.PostgresDSN,
		S3: blob.S3Config{
			Bucket:    c.Storage.S3.Bucket,
			Region:    c.Storage.S3.Region,
			Endpoint:  c.Storage.S3.Endpoint,
			Prefix:    c.Storage.S3.Prefix,
			PathStyle: c.Storage.S3.PathStyle,
		},
	}
}

func (c *Config) applyEnv() {
	c.Storage.Driver = envDefault("SOUVENIRS_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.SQLitePath = envDefault("SOUVENIRS_SQLITE_PATH", c.Storage.SQLitePath)
	c.Storage.PostgresDSN = envDefault("POSTGRES_DSN", c.Storage.PostgresDSN)
	c.Storage.S3.Bucket = envDefault("SOUVENIRS_S3_BUCKET", c.Storage.S3.Bucket)
	c.Storage.S3.Region = envDefault("SOUVENIRS_S3_REGION", c.Storage.S3.Region)
	c.Storage.S3.Endpoint = envDefault("SOUVENIRS_S3_ENDPOINT", c.Storage.S3.Endpoint)
	c.Manufacturers.FilePath = envDefault("SOUVENIRS_MANUFACTURERS_PATH", c.Manufacturers.FilePath)
	c.Souvenirs.FilePath = envDefault("SOUVENIRS_SOUVENIRS_PATH", c.Souvenirs.FilePath)
	c.HTTP.Port = envDefault("PORT", c.HTTP.Port)
	if raw, ok := os.LookupEnv("TEMPORAL_ENABLED"); ok {
		c.Temporal.Enabled = isTruthy(raw)
	}
	c.Temporal.Address = envDefault("TEMPORAL_ADDRESS", c.Temporal.Address)
	c.Temporal.Namespace = envDefault("TEMPORAL_NAMESPACE", c.Temporal.Namespace)
	c.Temporal.TaskQueue = envDefault("TEMPORAL_TASK_QUEUE", c.Temporal.TaskQueue)
}

func (c *Config) applyDefaults() {
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	if c.Storage.Driver == "" {
		c.Storage.Driver = string(blob.DriverFilesystem)
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "souvenirs.db"
	}
	if c.HTTP.Port == "" {
		c.HTTP.Port = "8080"
	}
	if c.Temporal.Address == "" {
		c.Temporal.Address = client.DefaultHostPort
	}
	if c.Temporal.Namespace == "" {
		c.Temporal.Namespace = client.DefaultNamespace
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
