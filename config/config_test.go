package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EmbeddedDefaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	// 指定一个不存在的外部配置文件，只会落回内置默认配置
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "gastos", cfg.Database.DBName)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, "./data/recibos", cfg.Storage.ReceiptsDir)
	assert.False(t, cfg.Email.Enabled)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalOverride(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	// 外部文件只覆盖部分键，其余保持默认
	path := filepath.Join(t.TempDir(), "config.yaml")
	external := []byte("server:\n  port: \":9090\"\n  mode: \"release\"\njwt:\n  expire_hours: 48\nstorage:\n  receipts_dir: \"/var/lib/gastos/recibos\"\n")
	require.NoError(t, os.WriteFile(path, external, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 48*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "/var/lib/gastos/recibos", cfg.Storage.ReceiptsDir)
	assert.Equal(t, "gastos", cfg.Database.DBName) // 未覆盖的键保持默认
}

func TestLoadConfig_NormalizesExpireHours(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	// 非法的过期小时数回落到 24 小时
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  expire_hours: -1\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}
