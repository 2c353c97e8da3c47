// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// store.go - SQLite-backed CRUD for the admin tables.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/forgecraft/internal/perm"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDatabaseError = errors.New("database error")
	ErrWatchActive   = errors.New("permission watch already active")
)

// =============================================================================
// ROW RECORDS
// =============================================================================

// OpEntry is one operator grant.
type OpEntry struct {
	UUID  uuid.UUID
	Name  string
	Level perm.Level
}

// BanEntry is one player ban.
type BanEntry struct {
	UUID      uuid.UUID
	Name      string
	Reason    string
	Source    string
	CreatedAt time.Time
}

// IPBanEntry is one address ban.
type IPBanEntry struct {
	IP        string
	Reason    string
	Source    string
	CreatedAt time.Time
}

// WhitelistEntry is one whitelisted player.
type WhitelistEntry struct {
	UUID uuid.UUID
	Name string
}

// =============================================================================
// STORE
// =============================================================================

// Store is the open admin database plus the in-memory permission
// overlay. All methods are safe for concurrent use; SQLite writes are
// serialized through a single connection.
type Store struct {
	db  *sql.DB
	log *slog.Logger

	// Permission overlay, keyed by lowercased player name. Replaced
	// wholesale on reload, never mutated in place.
	overlayMu sync.RWMutex
	overlay   map[string]perm.Set

	watcher *overlayWatcher
}

// Open opens (creating if needed) the admin database at path. The
// parent directory is created when missing. A nil logger falls back to
// slog.Default.
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	st := &Store{
		db:      db,
		log:     log,
		overlay: make(map[string]perm.Set),
	}

	if err := st.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return st, nil
}

// initSchema creates the database schema
func (s *Store) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(InitMetadata)
	return err
}

// Close stops the permission watcher and closes the database.
func (s *Store) Close() error {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// OPERATORS
// =============================================================================

// SetOp grants or updates an operator entry.
func (s *Store) SetOp(e OpEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO ops (uuid, name, level) VALUES (?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET name = excluded.name, level = excluded.level
	`, e.UUID.String(), e.Name, int(e.Level))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// RemoveOp revokes an operator entry. It reports whether an entry
// existed.
func (s *Store) RemoveOp(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec("DELETE FROM ops WHERE uuid = ?", id.String())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// OpLevel returns the granted permission level for a player, if any.
func (s *Store) OpLevel(id uuid.UUID) (perm.Level, bool, error) {
	var level int
	err := s.db.QueryRow("SELECT level FROM ops WHERE uuid = ?", id.String()).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return perm.Zero, false, nil
	}
	if err != nil {
		return perm.Zero, false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	l, err := perm.ParseLevel(level)
	if err != nil {
		return perm.Zero, false, err
	}
	return l, true, nil
}

// Ops returns all operator entries ordered by name.
func (s *Store) Ops() ([]OpEntry, error) {
	rows, err := s.db.Query("SELECT uuid, name, level FROM ops ORDER BY name COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []OpEntry
	for rows.Next() {
		var (
			raw   string
			e     OpEntry
			level int
		)
		if err := rows.Scan(&raw, &e.Name, &level); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if e.UUID, err = uuid.Parse(raw); err != nil {
			return nil, fmt.Errorf("corrupt op row %q: %w", raw, err)
		}
		e.Level = perm.Level(level)
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// BANS
// =============================================================================

// AddBan records a player ban. A zero CreatedAt is filled with the
// current time; banning an already banned player updates the reason.
func (s *Store) AddBan(e BanEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO bans (uuid, name, reason, source, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			name = excluded.name, reason = excluded.reason,
			source = excluded.source, created_at = excluded.created_at
	`, e.UUID.String(), e.Name, e.Reason, e.Source, e.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// RemoveBan pardons a player by name. It reports whether a ban
// existed.
func (s *Store) RemoveBan(name string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM bans WHERE name = ? COLLATE NOCASE", name)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// BanByName looks up a ban by player name.
func (s *Store) BanByName(name string) (BanEntry, bool, error) {
	var (
		e       BanEntry
		raw     string
		created int64
	)
	err := s.db.QueryRow(`
		SELECT uuid, name, reason, source, created_at FROM bans
		WHERE name = ? COLLATE NOCASE
	`, name).Scan(&raw, &e.Name, &e.Reason, &e.Source, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return BanEntry{}, false, nil
	}
	if err != nil {
		return BanEntry{}, false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if e.UUID, err = uuid.Parse(raw); err != nil {
		return BanEntry{}, false, fmt.Errorf("corrupt ban row %q: %w", raw, err)
	}
	e.CreatedAt = time.Unix(created, 0)
	return e, true, nil
}

// Bans returns all player bans ordered by name.
func (s *Store) Bans() ([]BanEntry, error) {
	rows, err := s.db.Query(`
		SELECT uuid, name, reason, source, created_at FROM bans
		ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []BanEntry
	for rows.Next() {
		var (
			e       BanEntry
			raw     string
			created int64
		)
		if err := rows.Scan(&raw, &e.Name, &e.Reason, &e.Source, &created); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if e.UUID, err = uuid.Parse(raw); err != nil {
			return nil, fmt.Errorf("corrupt ban row %q: %w", raw, err)
		}
		e.CreatedAt = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// IP BANS
// =============================================================================

// AddIPBan records an address ban. A zero CreatedAt is filled with the
// current time.
func (s *Store) AddIPBan(e IPBanEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO ip_bans (ip, reason, source, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(ip) DO UPDATE SET
			reason = excluded.reason, source = excluded.source,
			created_at = excluded.created_at
	`, e.IP, e.Reason, e.Source, e.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// RemoveIPBan pardons an address. It reports whether a ban existed.
func (s *Store) RemoveIPBan(ip string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM ip_bans WHERE ip = ?", ip)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// IPBanned looks up an address ban.
func (s *Store) IPBanned(ip string) (IPBanEntry, bool, error) {
	var (
		e       IPBanEntry
		created int64
	)
	err := s.db.QueryRow(`
		SELECT ip, reason, source, created_at FROM ip_bans WHERE ip = ?
	`, ip).Scan(&e.IP, &e.Reason, &e.Source, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return IPBanEntry{}, false, nil
	}
	if err != nil {
		return IPBanEntry{}, false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	e.CreatedAt = time.Unix(created, 0)
	return e, true, nil
}

// IPBans returns all address bans ordered by address.
func (s *Store) IPBans() ([]IPBanEntry, error) {
	rows, err := s.db.Query("SELECT ip, reason, source, created_at FROM ip_bans ORDER BY ip")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []IPBanEntry
	for rows.Next() {
		var (
			e       IPBanEntry
			created int64
		)
		if err := rows.Scan(&e.IP, &e.Reason, &e.Source, &created); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.CreatedAt = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// WHITELIST
// =============================================================================

// AddWhitelist adds a player to the whitelist.
func (s *Store) AddWhitelist(e WhitelistEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO whitelist (uuid, name) VALUES (?, ?)
		ON CONFLICT(uuid) DO UPDATE SET name = excluded.name
	`, e.UUID.String(), e.Name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// RemoveWhitelist removes a player from the whitelist by name. It
// reports whether an entry existed.
func (s *Store) RemoveWhitelist(name string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM whitelist WHERE name = ? COLLATE NOCASE", name)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Whitelisted reports whether a player name is on the whitelist.
func (s *Store) Whitelisted(name string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM whitelist WHERE name = ? COLLATE NOCASE", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return true, nil
}

// Whitelist returns all whitelisted players ordered by name.
func (s *Store) Whitelist() ([]WhitelistEntry, error) {
	rows, err := s.db.Query("SELECT uuid, name FROM whitelist ORDER BY name COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []WhitelistEntry
	for rows.Next() {
		var (
			e   WhitelistEntry
			raw string
		)
		if err := rows.Scan(&raw, &e.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if e.UUID, err = uuid.Parse(raw); err != nil {
			return nil, fmt.Errorf("corrupt whitelist row %q: %w", raw, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
