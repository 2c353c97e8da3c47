// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/server"
)

func helpCommand(srv *server.Server, d *command.Dispatcher) builtin {
	tree := command.NewTree("help", "List commands or show usage for one", "?").
		Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
			entries := d.Commands(s)
			widest := 0
			for _, e := range entries {
				if w := runewidth.StringWidth(e.Tree.Name()); w > widest {
					widest = w
				}
			}
			msg := chat.Textf("Available commands (%d):", len(entries)).Color(chat.Gold)
			for _, e := range entries {
				name := e.Tree.Name()
				line := chat.Textf("\n/%s", name).Color(chat.Yellow)
				if desc := e.Tree.Description(); desc != "" {
					pad := strings.Repeat(" ", widest-runewidth.StringWidth(name))
					line.Append(chat.Text(pad + " - " + desc).Color(chat.Gray))
				}
				msg.Append(line)
			}
			s.SendMessage(msg)
			return nil
		})).
		Then(command.Arg("command", args.Word()).
			Executes(command.HandlerFunc(func(ctx context.Context, s command.Sender, a command.ConsumedArgs) error {
				name, _ := a.String("command")
				name = strings.TrimPrefix(name, "/")
				entry, ok := d.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown command %q", name)
				}
				t := entry.Tree
				msg := chat.Textf("/%s", t.Name()).Color(chat.Yellow)
				if desc := t.Description(); desc != "" {
					msg.Append(chat.Text(" - " + desc).Color(chat.Gray))
				}
				if aliases := t.Aliases(); len(aliases) > 0 {
					msg.Append(chat.Textf("\nAliases: %s", strings.Join(aliases, ", ")).Color(chat.Gray))
				}
				for _, u := range t.Usage() {
					msg.Append(chat.Text("\n" + u))
				}
				s.SendMessage(msg)
				return nil
			}))).
		MustBuild()

	return builtin{tree: tree, node: "forgecraft.help", level: perm.Zero}
}
