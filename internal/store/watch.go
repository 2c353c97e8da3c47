// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - Live-reloaded permission overlay.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/forgecraft/internal/perm"
)

// overlayDebounce is how long the overlay file must sit unchanged
// before a reload. Editors often emit several events per save.
const overlayDebounce = 500 * time.Millisecond

// =============================================================================
// PERMISSION OVERLAY
// =============================================================================

// overlayFile is the on-disk shape of permissions.toml.
type overlayFile struct {
	Players map[string][]string `toml:"players"`
}

// LoadPermissions reads the permission overlay once. A missing file
// yields an empty overlay, not an error.
func (s *Store) LoadPermissions(path string) error {
	return s.loadOverlay(path)
}

// WatchPermissions loads the permission overlay and reloads it
// whenever the file changes on disk. If the watcher cannot be set up
// the initial load still sticks, so callers may log the error and run
// without live reload.
func (s *Store) WatchPermissions(path string) error {
	if s.watcher != nil {
		return ErrWatchActive
	}
	if err := s.loadOverlay(path); err != nil {
		return err
	}

	w, err := newOverlayWatcher(s, path, overlayDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch permissions overlay: %w", err)
	}
	s.watcher = w
	return nil
}

// PermissionNodes returns the extra permission nodes granted to a
// player name. The zero Set is returned for unknown players.
func (s *Store) PermissionNodes(name string) perm.Set {
	s.overlayMu.RLock()
	defer s.overlayMu.RUnlock()
	return s.overlay[strings.ToLower(name)]
}

// loadOverlay parses the overlay file and swaps it in.
func (s *Store) loadOverlay(path string) error {
	var of overlayFile
	if _, err := toml.DecodeFile(path, &of); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.setOverlay(nil)
			return nil
		}
		return fmt.Errorf("failed to read permissions overlay: %w", err)
	}

	next := make(map[string]perm.Set, len(of.Players))
	for name, nodes := range of.Players {
		next[strings.ToLower(name)] = perm.NewSet(nodes...)
	}
	s.setOverlay(next)
	return nil
}

// setOverlay replaces the overlay map wholesale.
func (s *Store) setOverlay(next map[string]perm.Set) {
	if next == nil {
		next = make(map[string]perm.Set)
	}
	s.overlayMu.Lock()
	s.overlay = next
	s.overlayMu.Unlock()
}

// =============================================================================
// OVERLAY WATCHER
// =============================================================================

// overlayWatcher reloads the permission overlay after the file
// settles. The parent directory is watched rather than the file itself
// because editors usually save by rename, which drops a watch on the
// old inode.
type overlayWatcher struct {
	st       *Store
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	dirty time.Time // zero when no change is pending

	ctx    context.Context
	cancel context.CancelFunc
}

// newOverlayWatcher starts watching the overlay file's directory.
func newOverlayWatcher(st *Store, path string, debounce time.Duration) (*overlayWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	ow := &overlayWatcher{
		st:       st,
		path:     path,
		watcher:  watcher,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}

	go ow.processEvents()
	go ow.processPending()

	return ow, nil
}

// processEvents marks the overlay dirty on relevant events.
func (ow *overlayWatcher) processEvents() {
	base := filepath.Base(ow.path)
	for {
		select {
		case <-ow.ctx.Done():
			return

		case event, ok := <-ow.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				ow.mu.Lock()
				ow.dirty = time.Now()
				ow.mu.Unlock()
			}

		case err, ok := <-ow.watcher.Errors:
			if !ok {
				return
			}
			ow.st.log.Warn("permission overlay watch error", "error", err)
		}
	}
}

// processPending reloads the overlay once changes settle past the
// debounce window.
func (ow *overlayWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ow.ctx.Done():
			return

		case <-ticker.C:
			ow.mu.Lock()
			due := !ow.dirty.IsZero() && time.Since(ow.dirty) >= ow.debounce
			if due {
				ow.dirty = time.Time{}
			}
			ow.mu.Unlock()

			if !due {
				continue
			}
			if err := ow.st.loadOverlay(ow.path); err != nil {
				// Keep the previous overlay on a bad edit.
				ow.st.log.Warn("permission overlay reload failed", "path", ow.path, "error", err)
				continue
			}
			ow.st.overlayMu.RLock()
			players := len(ow.st.overlay)
			ow.st.overlayMu.RUnlock()
			ow.st.log.Info("permission overlay reloaded", "path", ow.path, "players", players)
		}
	}
}

// Close stops watching and releases resources.
func (ow *overlayWatcher) Close() error {
	ow.cancel()
	if ow.watcher != nil {
		return ow.watcher.Close()
	}
	return nil
}
