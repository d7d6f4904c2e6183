package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/corray333/backend-labs/meals/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnv(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
server:
  http:
    port: "9090"
rabbitmq:
  order_created:
    max_retries: 7
`), 0o600))

	t.Setenv("MEALS_SERVER_HTTP_PORT", "9999")

	require.NoError(t, config.Load(path))

	assert.Equal(t, "debug", viper.GetString("log.level"))
	assert.Equal(t, "9999", viper.GetString("server.http.port"))
	assert.Equal(t, 7, viper.GetInt("rabbitmq.order_created.max_retries"))
	assert.Equal(t, "meals.order.created", viper.GetString("rabbitmq.order_created.queue"))
	assert.Equal(t, 15*time.Second, viper.GetDuration("server.http.read_timeout"))
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSetDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	config.SetDefaults()

	assert.Equal(t, "USD", viper.GetString("app.currency"))
	assert.Equal(t, "disable", viper.GetString("postgres.sslmode"))
	assert.False(t, viper.GetBool("otel.enabled"))
	assert.Equal(t, []string{"*"}, viper.GetStringSlice("server.http.cors.allowed_origins"))
}
