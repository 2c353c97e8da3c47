// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command/commands"
	"github.com/jeranaias/forgecraft/internal/config"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/store"
)

// testModel builds a dashboard model around a real server without
// starting a terminal program; Update and View are driven directly.
func testModel(t *testing.T) (Model, *server.Server) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), "forgecraft.db"), log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.Server.Seed = 1
	srv := server.New(cfg, log, st)
	if err := commands.RegisterDefaults(srv.Dispatcher(), srv); err != nil {
		t.Fatalf("RegisterDefaults: %v", err)
	}
	srv.Dispatcher().Freeze()
	t.Cleanup(srv.Stop)

	return newModel(context.Background(), srv, log), srv
}

// update feeds one message through Update and narrows the result back
// to the concrete model type.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestResizeBuildsViewport(t *testing.T) {
	m, _ := testModel(t)

	if m.ready {
		t.Fatal("model ready before first resize")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !m.ready {
		t.Fatal("model not ready after resize")
	}
	if m.viewport.Width != 80 || m.viewport.Height != 24-chromeHeight {
		t.Errorf("viewport = %dx%d, want 80x%d", m.viewport.Width, m.viewport.Height, 24-chromeHeight)
	}
}

func TestViewShowsHeaderAndLog(t *testing.T) {
	m, _ := testModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m, _ = update(t, m, logMsg{line: "spawned overworld"})

	view := m.View()
	if !strings.Contains(view, "forgecraft "+server.Version) {
		t.Errorf("view missing brand line:\n%s", view)
	}
	if !strings.Contains(view, "0/20 online") {
		t.Errorf("view missing player count:\n%s", view)
	}
	if !strings.Contains(view, "spawned overworld") {
		t.Errorf("view missing log line:\n%s", view)
	}
}

func TestEnterDispatchesCommand(t *testing.T) {
	m, srv := testModel(t)

	var got []string
	srv.SetConsoleSink(func(msg *chat.Message) { got = append(got, msg.Plain()) })

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.input.SetValue("say hello")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	cmd()

	if m.input.Value() != "" {
		t.Errorf("input not cleared, still %q", m.input.Value())
	}
	if len(m.history) != 1 || m.history[0] != "say hello" {
		t.Errorf("history = %v, want [say hello]", m.history)
	}
	joined := strings.Join(got, "\n")
	if !strings.Contains(joined, "[Server] hello") {
		t.Errorf("console sink = %q, want broadcast", joined)
	}
}

func TestEnterOnEmptyLineIsNoop(t *testing.T) {
	m, _ := testModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("empty enter produced a command")
	}
	if len(m.history) != 0 {
		t.Errorf("history = %v, want empty", m.history)
	}
}

func TestTabCompletesSingleCandidate(t *testing.T) {
	m, _ := testModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.input.SetValue("gamemo")
	m.input.CursorEnd()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "gamemode" {
		t.Errorf("value = %q, want gamemode", m.input.Value())
	}
	if m.hint != "" {
		t.Errorf("hint = %q, want empty", m.hint)
	}
}

func TestTabShowsMultipleCandidates(t *testing.T) {
	m, _ := testModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.input.SetValue("ban")
	m.input.CursorEnd()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "ban" {
		t.Errorf("value = %q, want unchanged", m.input.Value())
	}
	for _, want := range []string{"ban", "ban-ip", "banlist"} {
		if !strings.Contains(m.hint, want) {
			t.Errorf("hint %q missing %q", m.hint, want)
		}
	}
}

func TestHistoryNavigation(t *testing.T) {
	m, _ := testModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	for _, line := range []string{"list", "seed"} {
		m.input.SetValue(line)
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			cmd()
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "seed" {
		t.Errorf("first up = %q, want seed", m.input.Value())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "list" {
		t.Errorf("second up = %q, want list", m.input.Value())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "list" {
		t.Errorf("up at oldest = %q, want list", m.input.Value())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "seed" {
		t.Errorf("down = %q, want seed", m.input.Value())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" {
		t.Errorf("down past newest = %q, want empty", m.input.Value())
	}
}

func TestCtrlDStopsServer(t *testing.T) {
	m, srv := testModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatal("ctrl+d returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+d did not quit the program")
	}

	select {
	case <-srv.Done():
	default:
		t.Error("server still running after ctrl+d")
	}
}

func TestShutdownMessageQuits(t *testing.T) {
	m, _ := testModel(t)

	_, cmd := update(t, m, shutdownMsg{})
	if cmd == nil {
		t.Fatal("shutdown returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("shutdown message did not quit the program")
	}
}

func TestCtrlLClearsLog(t *testing.T) {
	m, _ := testModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, logMsg{line: "one"})
	m, _ = update(t, m, logMsg{line: "two"})
	if len(m.lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(m.lines))
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.lines) != 0 {
		t.Errorf("lines = %d after clear, want 0", len(m.lines))
	}
}
