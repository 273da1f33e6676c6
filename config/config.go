// Package config holds the settings of the refget binary. Values come
// from a YAML file, REFGET_* environment variables and command line
// flags bound through viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hupe1980/refget/codec"
)

// EnvPrefix prefixes every environment variable, e.g. REFGET_SERVER_ADDRESS.
const EnvPrefix = "REFGET"

// Storage kinds.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageMinio = "minio"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	// LabelEndpoints enables /faidx/{algorithm}/{id}.
	LabelEndpoints bool `mapstructure:"label-endpoints"`
	// Metrics serves Prometheus metrics on /metrics.
	Metrics bool `mapstructure:"metrics"`
}

// StorageConfig selects where FASTA files and manifests live.
type StorageConfig struct {
	Kind string `mapstructure:"kind"`
	// Root is the directory for local storage.
	Root            string `mapstructure:"root"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access-key-id"`
	SecretAccessKey string `mapstructure:"secret-access-key"`
	Secure          bool   `mapstructure:"secure"`
}

// CacheConfig configures the block cache. Size 0 disables it.
type CacheConfig struct {
	Size      int64 `mapstructure:"size"`
	BlockSize int64 `mapstructure:"block-size"`
}

type LimitsConfig struct {
	MaxOpenFiles     int   `mapstructure:"max-open-files"`
	FetchConcurrency int64 `mapstructure:"fetch-concurrency"`
	IOBytesPerSec    int64 `mapstructure:"io-bytes-per-sec"`
}

// ManifestConfig lists the manifests to load. A path ending in "/" is
// scanned for manifest files.
type ManifestConfig struct {
	Paths []string `mapstructure:"paths"`
	Codec string   `mapstructure:"codec"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the root settings struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Log      LogConfig      `mapstructure:"log"`
	// Verify recomputes every checksum at startup.
	Verify bool `mapstructure:"verify"`
}

// SetDefaults registers every key with its default. Keys unknown to
// viper are not picked up from the environment, so all of them are
// listed here.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read-timeout", 30*time.Second)
	v.SetDefault("server.write-timeout", time.Duration(0))
	v.SetDefault("server.idle-timeout", 120*time.Second)
	v.SetDefault("server.shutdown-timeout", 15*time.Second)
	v.SetDefault("server.label-endpoints", false)
	v.SetDefault("server.metrics", true)

	v.SetDefault("storage.kind", StorageLocal)
	v.SetDefault("storage.root", ".")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.prefix", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access-key-id", "")
	v.SetDefault("storage.secret-access-key", "")
	v.SetDefault("storage.secure", true)

	v.SetDefault("cache.size", 0)
	v.SetDefault("cache.block-size", 64*1024)

	v.SetDefault("limits.max-open-files", 100)
	v.SetDefault("limits.fetch-concurrency", 16)
	v.SetDefault("limits.io-bytes-per-sec", 0)

	v.SetDefault("manifest.paths", []string{"manifest.json"})
	v.SetDefault("manifest.codec", "go-json")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("verify", false)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file, if set, into v and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values that cannot be decoded wrong but can be set wrong.
func (c *Config) Validate() error {
	switch c.Storage.Kind {
	case StorageLocal:
		if c.Storage.Root == "" {
			return fmt.Errorf("%w: storage.root is required", ErrInvalid)
		}
	case StorageS3, StorageMinio:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("%w: storage.bucket is required for %s", ErrInvalid, c.Storage.Kind)
		}
		if c.Storage.Kind == StorageMinio && c.Storage.Endpoint == "" {
			return fmt.Errorf("%w: storage.endpoint is required for minio", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage.kind %q", ErrInvalid, c.Storage.Kind)
	}

	if len(c.Manifest.Paths) == 0 {
		return fmt.Errorf("%w: manifest.paths is empty", ErrInvalid)
	}
	if _, ok := codec.ByName(c.Manifest.Codec); !ok {
		return fmt.Errorf("%w: manifest.codec %q is not one of %s", ErrInvalid, c.Manifest.Codec, strings.Join(codec.Names(), ", "))
	}
	if c.Limits.MaxOpenFiles < 0 || c.Limits.MaxOpenFiles > 4096 {
		return fmt.Errorf("%w: limits.max-open-files must be in [0, 4096]", ErrInvalid)
	}
	if c.Cache.Size < 0 || c.Cache.BlockSize <= 0 {
		return fmt.Errorf("%w: cache sizes must be positive", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json", ErrInvalid)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
