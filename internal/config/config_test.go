package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
bunny:
  access_key: from-file
  storage_zone: assets
  library_id: 1234
http:
  timeout: 5s
kafka:
  brokers:
    - localhost:9092
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("BUNNY_ACCESS_KEY", "from-env")
	t.Setenv("BUNNY_LIBRARY_KEY", "lib-key")

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Bunny.AccessKey)
	assert.Equal(t, "assets", cfg.Bunny.StorageZone)
	assert.Equal(t, int64(1234), cfg.Bunny.LibraryID)
	assert.Equal(t, "lib-key", cfg.Bunny.LibraryKey)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "storage.bunnycdn.com", cfg.Bunny.StorageEndpoint)
	assert.Equal(t, "bunny-worker-group", cfg.Kafka.GroupID)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Bunny.AccessKey = "k"

	assert.NoError(t, cfg.Validate("bunny.access_key"))

	err := cfg.Validate("bunny.access_key", "bunny.storage_zone", "kafka.brokers")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "bunny.storage_zone")
	assert.Contains(t, err.Error(), "kafka.brokers")
	assert.NotContains(t, err.Error(), "bunny.access_key")

	assert.Error(t, cfg.Validate("nope"))
}
