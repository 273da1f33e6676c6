package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Address)
	assert.Equal(t, 30*time.Second, c.Server.ReadTimeout)
	assert.False(t, c.Server.LabelEndpoints)
	assert.True(t, c.Server.Metrics)
	assert.Equal(t, StorageLocal, c.Storage.Kind)
	assert.Equal(t, 100, c.Limits.MaxOpenFiles)
	assert.Equal(t, []string{"manifest.json"}, c.Manifest.Paths)

	level, err := c.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "refget.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  address: ":9000"
  label-endpoints: true
  shutdown-timeout: 5s
storage:
  kind: s3
  bucket: refs
  prefix: hg38
cache:
  size: 1048576
manifest:
  paths: [a/manifest.json, b/]
log:
  level: debug
  format: json
`), 0o600))

	t.Setenv("REFGET_SERVER_ADDRESS", ":9100")
	t.Setenv("REFGET_LIMITS_MAX_OPEN_FILES", "500")

	c, err := Load(New(), file)
	require.NoError(t, err)

	assert.Equal(t, ":9100", c.Server.Address)
	assert.True(t, c.Server.LabelEndpoints)
	assert.Equal(t, 5*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, StorageS3, c.Storage.Kind)
	assert.Equal(t, "refs", c.Storage.Bucket)
	assert.Equal(t, "hg38", c.Storage.Prefix)
	assert.Equal(t, int64(1<<20), c.Cache.Size)
	assert.Equal(t, 500, c.Limits.MaxOpenFiles)
	assert.Equal(t, []string{"a/manifest.json", "b/"}, c.Manifest.Paths)
	assert.Equal(t, "json", c.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c, err := Load(New(), "")
		require.NoError(t, err)
		return *c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown storage", func(c *Config) { c.Storage.Kind = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.Storage.Kind = StorageS3 }},
		{"minio without endpoint", func(c *Config) { c.Storage.Kind = StorageMinio; c.Storage.Bucket = "b" }},
		{"no manifests", func(c *Config) { c.Manifest.Paths = nil }},
		{"too many files", func(c *Config) { c.Limits.MaxOpenFiles = 5000 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"zero block size", func(c *Config) { c.Cache.BlockSize = 0 }},
		{"unknown codec", func(c *Config) { c.Manifest.Codec = "bson" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}
