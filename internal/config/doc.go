// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates the forgecraft server configuration.
//
// Configuration lives in a single TOML file, by default server.toml in the
// working directory. Missing fields fall back to defaults; on first boot the
// file is written out so operators have something to edit.
//
// # Key Types
//
//   - Config: the complete server configuration
//   - ServerConfig: world, roster, and data directory settings
//   - RconConfig: remote console listener settings
//   - ConsoleConfig: local console and TUI settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (FORGECRAFT_*)
//   - server.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	motd := cfg.Server.Motd
//	addr := cfg.Rcon.Addr
package config
