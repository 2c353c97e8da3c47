// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Motd, cfg.Server.Motd)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	body := `
[server]
motd = "Welcome home"
max_players = 4

[rcon]
enabled = true
addr = "127.0.0.1:9999"
password_hash = "$2a$10$abcdefghijklmnopqrstuv"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Welcome home", cfg.Server.Motd)
	assert.Equal(t, 4, cfg.Server.MaxPlayers)
	assert.True(t, cfg.Rcon.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Rcon.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	// Fields absent from the file keep their defaults.
	assert.Equal(t, Default().Server.LevelName, cfg.Server.LevelName)
	assert.Equal(t, Default().Rcon.MaxPacket, cfg.Rcon.MaxPacket)
}

func TestLoadFixesLoosePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nmotd = \"x\"\n"), 0644))

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative max players", func(c *Config) { c.Server.MaxPlayers = -1 }, "server.max_players"},
		{"empty data dir", func(c *Config) { c.Server.DataDir = "" }, "server.data_dir"},
		{"rcon without hash", func(c *Config) { c.Rcon.Enabled = true; c.Rcon.PasswordHash = "" }, "rcon.password_hash"},
		{"rcon without addr", func(c *Config) { c.Rcon.Enabled = true; c.Rcon.PasswordHash = "h"; c.Rcon.Addr = "" }, "rcon.addr"},
		{"tiny packet cap", func(c *Config) { c.Rcon.MaxPacket = 16 }, "rcon.max_packet"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FORGECRAFT_MOTD", "from env")
	t.Setenv("FORGECRAFT_MAX_PLAYERS", "7")
	t.Setenv("FORGECRAFT_WHITELIST", "true")
	t.Setenv("FORGECRAFT_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "from env", cfg.Server.Motd)
	assert.Equal(t, 7, cfg.Server.MaxPlayers)
	assert.True(t, cfg.Server.Whitelist)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestFillDefaultsRestoresBlankedFields(t *testing.T) {
	cfg := Default()
	cfg.Server.LevelName = ""
	cfg.Rcon.MaxPacket = 0
	cfg.Log.Level = ""

	cfg.fillDefaults()
	assert.Equal(t, Default().Server.LevelName, cfg.Server.LevelName)
	assert.Equal(t, Default().Rcon.MaxPacket, cfg.Rcon.MaxPacket)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	cfg := Default()
	cfg.Server.Motd = "round trip"
	cfg.Server.Seed = 42
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "round trip", loaded.Server.Motd)
	assert.Equal(t, int64(42), loaded.Server.Seed)
}

func TestSlogLevelMapping(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LogConfig{Level: tt.in}.SlogLevel(), "level %q", tt.in)
	}
}
