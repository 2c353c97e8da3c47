// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console runs the interactive server console on stdin: a
// liner REPL with persistent history and tab completion backed by the
// dispatcher's suggestion walk. Lines dispatch as the Console sender;
// server output lands on stdout through the console sink.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/config"
	"github.com/jeranaias/forgecraft/internal/server"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

// Console owns the liner state and the history file location.
type Console struct {
	srv         *server.Server
	log         *slog.Logger
	line        *liner.State
	historyFile string
}

// New prepares the REPL. History persists under dataDir when cfg
// names a history file; an empty name disables it.
func New(srv *server.Server, cfg config.ConsoleConfig, dataDir string, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &Console{
		srv:  srv,
		log:  log,
		line: line,
	}
	if cfg.History != "" {
		c.historyFile = filepath.Join(dataDir, cfg.History)
		c.loadHistory()
	}

	line.SetWordCompleter(c.complete)
	return c
}

// Run reads and dispatches lines until ctx is canceled or the
// operator closes stdin. Ctrl+C abandons the current line; Ctrl+D
// stops the server.
func (c *Console) Run(ctx context.Context) error {
	defer c.Close()

	// A canceled context (server stopping) unblocks the pending
	// prompt by closing the liner.
	stop := context.AfterFunc(ctx, func() { c.line.Close() })
	defer stop()

	c.srv.SetConsoleSink(func(m *chat.Message) {
		fmt.Println(m.ANSI())
	})

	fmt.Println(chat.Textf("forgecraft %s", server.Version).Color(chat.Gold).ANSI())
	fmt.Println(chat.Text("Type help to list commands. Ctrl+D stops the server.").Color(chat.Gray).ANSI())

	prompt := promptStyle.Render("> ")
	for {
		input, err := c.line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			// Ctrl+D or stdin gone: bring the server down with us.
			fmt.Println()
			c.srv.Stop()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)

		if err := c.srv.Dispatcher().Dispatch(ctx, input, c.srv.Console()); err != nil {
			c.log.Debug("console command failed", "line", input, "err", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close persists history and restores the terminal.
func (c *Console) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// COMPLETION
// =============================================================================

// complete adapts the dispatcher's suggestion walk to liner's word
// completer: candidates replace the token under the cursor, and a
// leading slash on the command name survives completion.
func (c *Console) complete(line string, pos int) (string, []string, string) {
	if pos < 0 || pos > len(line) {
		pos = len(line)
	}
	head, tail := line[:pos], line[pos:]

	start := strings.LastIndexAny(head, " \t") + 1
	if start == 0 && strings.HasPrefix(head, "/") {
		start = 1
	}

	return head[:start], c.srv.Dispatcher().Suggest(head, pos, c.srv.Console()), tail
}

// =============================================================================
// HISTORY
// =============================================================================

func (c *Console) loadHistory() {
	f, err := os.Open(c.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.ReadHistory(f)
}

func (c *Console) saveHistory() {
	if c.historyFile == "" {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		c.log.Warn("could not save console history", "path", c.historyFile, "err", err)
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}
