// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the server looks for its configuration.
const DefaultPath = "server.toml"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete forgecraft server configuration.
type Config struct {
	// Server contains world and roster settings.
	Server ServerConfig `toml:"server"`

	// Rcon contains the remote console listener settings.
	Rcon RconConfig `toml:"rcon"`

	// Console contains local console settings.
	Console ConsoleConfig `toml:"console"`

	// Log contains logging settings.
	Log LogConfig `toml:"log"`
}

// ServerConfig contains world, roster, and storage settings.
type ServerConfig struct {
	// Motd greets joining players and heads the list output.
	Motd string `toml:"motd"`
	// MaxPlayers caps the online roster. Zero means unlimited.
	MaxPlayers int `toml:"max_players"`
	// LevelName names the world.
	LevelName string `toml:"level_name"`
	// Seed is the world generation seed. Zero picks a random seed at
	// first boot.
	Seed int64 `toml:"seed"`
	// Whitelist restricts joining to whitelisted players.
	Whitelist bool `toml:"whitelist"`
	// DataDir holds the database, console history, and the optional
	// permissions overlay.
	DataDir string `toml:"data_dir"`
}

// RconConfig contains the remote console listener settings.
type RconConfig struct {
	// Enabled starts the RCON listener.
	Enabled bool `toml:"enabled"`
	// Addr is the TCP listen address.
	Addr string `toml:"addr"`
	// PasswordHash is the bcrypt hash of the RCON password. The
	// plaintext password is never stored.
	PasswordHash string `toml:"password_hash"`
	// AuthPerMin limits authentication attempts per client address.
	AuthPerMin int `toml:"auth_per_min"`
	// MaxPacket caps the accepted request frame size in bytes.
	MaxPacket int `toml:"max_packet"`
}

// ConsoleConfig contains local console settings.
type ConsoleConfig struct {
	// Enabled runs the interactive console on stdin.
	Enabled bool `toml:"enabled"`
	// History is the REPL history file name inside DataDir. Empty
	// disables history persistence.
	History string `toml:"history"`
	// TUI swaps the line console for the full-screen dashboard.
	TUI bool `toml:"tui"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// SlogLevel maps the configured level name onto slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Motd:       "A forgecraft server",
			MaxPlayers: 20,
			LevelName:  "world",
			Seed:       0,
			Whitelist:  false,
			DataDir:    ".forgecraft",
		},
		Rcon: RconConfig{
			Enabled:    false,
			Addr:       "127.0.0.1:25575",
			AuthPerMin: 10,
			MaxPacket:  4096,
		},
		Console: ConsoleConfig{
			Enabled: true,
			History: "console.history",
			TUI:     false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// fillDefaults restores required fields a config file blanked out.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Server.LevelName == "" {
		c.Server.LevelName = defaults.Server.LevelName
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = defaults.Server.DataDir
	}
	if c.Rcon.Addr == "" {
		c.Rcon.Addr = defaults.Rcon.Addr
	}
	if c.Rcon.AuthPerMin == 0 {
		c.Rcon.AuthPerMin = defaults.Rcon.AuthPerMin
	}
	if c.Rcon.MaxPacket == 0 {
		c.Rcon.MaxPacket = defaults.Rcon.MaxPacket
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// ensureSecurePermissions tightens the config file to 0600. The file
// carries the RCON credential hash.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// Load loads the configuration from DefaultPath.
func Load() (*Config, error) {
	return LoadFromPath(DefaultPath)
}

// LoadFromPath loads, defaults, env-overrides, and validates the
// configuration at path. A missing file is written out with defaults
// so an operator has a file to edit.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case errors.Is(statErr, fs.ErrNotExist):
		if err := Save(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	default:
		return nil, statErr
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path with 0600 permissions.
func Save(cfg *Config, path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# forgecraft server configuration")
	fmt.Fprintln(file, "# Generated by forgecraft - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Server.MaxPlayers < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.max_players",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Server.MaxPlayers),
		})
	}
	if c.Server.DataDir == "" {
		errs = append(errs, ValidationError{
			Field:   "server.data_dir",
			Message: "must not be empty",
		})
	}

	if c.Rcon.Enabled {
		if c.Rcon.Addr == "" {
			errs = append(errs, ValidationError{
				Field:   "rcon.addr",
				Message: "must be set when rcon is enabled",
			})
		}
		if c.Rcon.PasswordHash == "" {
			errs = append(errs, ValidationError{
				Field:   "rcon.password_hash",
				Message: "must be set when rcon is enabled; generate one with forgecraft -hash-password",
			})
		}
	}
	if c.Rcon.AuthPerMin < 1 {
		errs = append(errs, ValidationError{
			Field:   "rcon.auth_per_min",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Rcon.AuthPerMin),
		})
	}
	if c.Rcon.MaxPacket < 256 {
		errs = append(errs, ValidationError{
			Field:   "rcon.max_packet",
			Message: fmt.Sprintf("must be at least 256 bytes, got %d", c.Rcon.MaxPacket),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - FORGECRAFT_MOTD: overrides server.motd
//   - FORGECRAFT_MAX_PLAYERS: overrides server.max_players
//   - FORGECRAFT_DATA_DIR: overrides server.data_dir
//   - FORGECRAFT_WHITELIST: set to "1" or "true" to enforce the whitelist
//   - FORGECRAFT_RCON_ENABLED: set to "1" or "true" to enable rcon
//   - FORGECRAFT_RCON_ADDR: overrides rcon.addr
//   - FORGECRAFT_RCON_PASSWORD_HASH: overrides rcon.password_hash
//   - FORGECRAFT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if motd := os.Getenv("FORGECRAFT_MOTD"); motd != "" {
		c.Server.Motd = motd
	}
	if maxPlayers := os.Getenv("FORGECRAFT_MAX_PLAYERS"); maxPlayers != "" {
		if n, err := strconv.Atoi(maxPlayers); err == nil {
			c.Server.MaxPlayers = n
		}
	}
	if dir := os.Getenv("FORGECRAFT_DATA_DIR"); dir != "" {
		c.Server.DataDir = dir
	}
	if wl := os.Getenv("FORGECRAFT_WHITELIST"); wl != "" {
		c.Server.Whitelist = wl == "1" || strings.ToLower(wl) == "true"
	}
	if enabled := os.Getenv("FORGECRAFT_RCON_ENABLED"); enabled != "" {
		c.Rcon.Enabled = enabled == "1" || strings.ToLower(enabled) == "true"
	}
	if addr := os.Getenv("FORGECRAFT_RCON_ADDR"); addr != "" {
		c.Rcon.Addr = addr
	}
	if hash := os.Getenv("FORGECRAFT_RCON_PASSWORD_HASH"); hash != "" {
		c.Rcon.PasswordHash = hash
	}
	if level := os.Getenv("FORGECRAFT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
