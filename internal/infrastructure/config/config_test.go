package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// 在没有配置文件的目录中加载
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "cart", cfg.Storage.Key)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr())
	assert.Equal(t, uint32(5), cfg.Breaker.FailureThreshold)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STOREFRONT_SERVER_PORT=6060\n"), 0o644))
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("STOREFRONT_SERVER_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: release
log:
  level: debug
  format: json
storage:
  driver: redis
  key: cart
  redis:
    host: redis.internal
    port: 6380
    prefix: shop
breaker:
  timeout: 3s
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis.internal:6380", cfg.Storage.Redis.Addr())
	assert.Equal(t, "shop", cfg.Storage.Redis.Prefix)
	assert.Equal(t, 3*time.Second, cfg.Breaker.Timeout)
	// 未配置的项保留默认值
	assert.Equal(t, 10, cfg.Storage.Redis.PoolSize)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: file\n")
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "memory")
	t.Setenv("STOREFRONT_SERVER_PORT", "7070")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"端口越界", "server:\n  port: 70000\n"},
		{"未知模式", "server:\n  mode: prod\n"},
		{"未知驱动", "storage:\n  driver: mongo\n"},
		{"空key", "storage:\n  key: \"\"\n"},
		{"file驱动缺少目录", "storage:\n  driver: file\n  file:\n    dir: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw",
		DBName: "storefront", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/storefront?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
