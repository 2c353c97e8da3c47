// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// schema.go - Admin database DDL.

package store

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the admin database. Name lookups are
// case-insensitive because Minecraft player names are unique without
// regard to case.
const Schema = `
-- Metadata table for schema version and bookkeeping
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Operators: players granted a permission level above Zero
CREATE TABLE IF NOT EXISTS ops (
    uuid TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    level INTEGER NOT NULL
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_ops_name ON ops(name COLLATE NOCASE);

-- Player bans
CREATE TABLE IF NOT EXISTS bans (
    uuid TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    reason TEXT NOT NULL,
    source TEXT NOT NULL,       -- who issued the ban
    created_at INTEGER NOT NULL -- Unix timestamp
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_bans_name ON bans(name COLLATE NOCASE);

-- IP bans
CREATE TABLE IF NOT EXISTS ip_bans (
    ip TEXT PRIMARY KEY,
    reason TEXT NOT NULL,
    source TEXT NOT NULL,
    created_at INTEGER NOT NULL
) WITHOUT ROWID;

-- Whitelist
CREATE TABLE IF NOT EXISTS whitelist (
    uuid TEXT PRIMARY KEY,
    name TEXT NOT NULL
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_whitelist_name ON whitelist(name COLLATE NOCASE);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
