// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tui provides the optional full-screen dashboard. It shows the
// server log in a scrollable viewport with a command line underneath,
// backed by the same dispatcher and console sender as the plain REPL.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/server"
)

const (
	// chromeHeight is the number of rows used by header, input and hint lines.
	chromeHeight = 3

	// maxScrollback caps the number of retained log lines.
	maxScrollback = 2000

	// maxHintCandidates caps how many completions the hint line shows.
	maxHintCandidates = 8
)

// =============================================================================
// MESSAGES
// =============================================================================

// logMsg carries one rendered log line from the console sink.
type logMsg struct {
	line string
}

// tickMsg drives the once-per-second header refresh.
type tickMsg time.Time

// shutdownMsg asks the program to quit after the server stopped.
type shutdownMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	srv *server.Server
	log *slog.Logger
	ctx context.Context

	viewport viewport.Model
	input    textinput.Model

	lines []string
	hint  string

	history []string
	histPos int

	width  int
	height int
	ready  bool
}

func newModel(ctx context.Context, srv *server.Server, log *slog.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "command"
	ti.CharLimit = 512
	ti.Focus()

	return Model{
		srv:   srv,
		log:   log,
		ctx:   ctx,
		input: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case logMsg:
		m.appendLine(msg.line)
		return m, nil

	case tickMsg:
		return m, tick()

	case shutdownMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := msg.Height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	m.input.Width = msg.Width - len(m.input.Prompt) - 1
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.srv.Stop()
		return m, tea.Quit

	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.hint = ""
		if line == "" {
			return m, nil
		}
		m.history = append(m.history, line)
		m.histPos = len(m.history)
		m.appendLine(echoStyle.Render("> " + line))
		return m, m.dispatch(line)

	case tea.KeyTab:
		return m.completeInput(), nil

	case tea.KeyUp:
		if m.histPos > 0 {
			m.histPos--
			m.input.SetValue(m.history[m.histPos])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.histPos < len(m.history) {
			m.histPos++
			if m.histPos == len(m.history) {
				m.input.SetValue("")
			} else {
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
		}
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyCtrlL:
		m.lines = nil
		m.viewport.SetContent("")
		return m, nil
	}

	m.hint = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs one command line against the server off the update loop.
// Errors are already rendered into the console sink by the dispatcher.
func (m Model) dispatch(line string) tea.Cmd {
	srv, ctx, log := m.srv, m.ctx, m.log
	return func() tea.Msg {
		if err := srv.Dispatcher().Dispatch(ctx, line, srv.Console()); err != nil {
			log.Debug("dashboard command failed", "input", line, "error", err)
		}
		return nil
	}
}

// completeInput applies tab completion at the cursor. A single candidate
// replaces the current token; several candidates show up on the hint line.
func (m Model) completeInput() Model {
	line := m.input.Value()
	pos := m.input.Position()
	if pos > len(line) {
		pos = len(line)
	}

	cands := m.srv.Dispatcher().Suggest(line, pos, m.srv.Console())
	switch {
	case len(cands) == 0:
		return m

	case len(cands) == 1:
		head, tail := line[:pos], line[pos:]
		start := strings.LastIndexAny(head, " \t") + 1
		if start == 0 && strings.HasPrefix(head, "/") {
			start = 1
		}
		completed := head[:start] + cands[0]
		m.input.SetValue(completed + tail)
		m.input.SetCursor(len(completed))
		m.hint = ""
		return m

	default:
		shown := cands
		if len(shown) > maxHintCandidates {
			shown = shown[:maxHintCandidates]
		}
		m.hint = strings.Join(shown, "  ")
		if len(cands) > maxHintCandidates {
			m.hint += fmt.Sprintf("  (+%d more)", len(cands)-maxHintCandidates)
		}
		return m
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxScrollback {
		m.lines = m.lines[len(m.lines)-maxScrollback:]
	}
	if !m.ready {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderHint())
	return b.String()
}

func (m Model) renderHeader() string {
	sep := sepStyle.Render(" | ")

	left := brandStyle.Render("forgecraft " + server.Version)
	right := strings.Join([]string{
		statStyle.Render(m.srv.World().Name()),
		statStyle.Render(fmt.Sprintf("%d/%d online", m.srv.Roster().Count(), m.srv.Config().Server.MaxPlayers)),
		statStyle.Render("up " + m.srv.Uptime().Truncate(time.Second).String()),
	}, sep)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	switch {
	case gap >= 1:
		return headerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
	case m.width > lipgloss.Width(left)+2:
		return headerStyle.Width(m.width).Render(left)
	default:
		return headerStyle.Render(left)
	}
}

func (m Model) renderHint() string {
	hint := m.hint
	if hint == "" {
		hint = "tab complete · ctrl+l clear · ctrl+d stop server"
	}
	// Wrapping would push the chrome past its reserved rows.
	if m.width > 1 {
		hint = runewidth.Truncate(hint, m.width-1, "…")
	}
	return hintStyle.Render(hint)
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run drives the dashboard until the context is cancelled or the user quits.
// It takes over the console sink so broadcasts and command feedback land in
// the viewport instead of stdout.
func Run(ctx context.Context, srv *server.Server, log *slog.Logger) error {
	p := tea.NewProgram(newModel(ctx, srv, log), tea.WithAltScreen())

	srv.SetConsoleSink(func(msg *chat.Message) {
		p.Send(logMsg{line: msg.ANSI()})
	})

	stop := context.AfterFunc(ctx, func() { p.Send(shutdownMsg{}) })
	defer stop()
	go func() {
		<-srv.Done()
		p.Send(shutdownMsg{})
	}()

	_, err := p.Run()
	return err
}
