// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the forgecraft rcon client - dial, authenticate,
// run one command or an interactive session.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/forgecraft/internal/rcon"
)

// maxFrame caps accepted response frames. The server chunks bodies well
// below this.
const maxFrame = 64 << 10

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "127.0.0.1:25575", "rcon address of the server")
	password := flag.String("password", "", "rcon password (defaults to $FORGECRAFT_RCON_PASSWORD, then a prompt)")
	timeout := flag.Duration("timeout", 10*time.Second, "dial and per-request timeout")
	flag.Parse()

	pass := *password
	if pass == "" {
		pass = os.Getenv("FORGECRAFT_RCON_PASSWORD")
	}
	if pass == "" {
		read, err := promptPassword()
		if err != nil {
			return err
		}
		pass = read
	}

	c, err := dialClient(*addr, pass, *timeout)
	if err != nil {
		return err
	}
	defer c.Close()

	if args := flag.Args(); len(args) > 0 {
		out, err := c.Exec(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Println(out)
		}
		return nil
	}
	return repl(c, *addr)
}

func promptPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no password given and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

// repl runs the interactive session until EOF or an exit command.
func repl(c *client, addr string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Printf("Connected to %s. Type exit to quit.\n", addr)
	for {
		input, err := line.Prompt("rcon> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == "exit" || input == "quit" {
			return nil
		}

		out, err := c.Exec(input)
		if err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// client is one authenticated rcon connection.
type client struct {
	conn    net.Conn
	timeout time.Duration
	nextID  int32
}

func dialClient(addr, password string, timeout time.Duration) (*client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c := &client{conn: conn, timeout: timeout}
	if err := c.auth(password); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *client) Close() error { return c.conn.Close() }

func (c *client) auth(password string) error {
	id := c.next()
	if err := c.write(rcon.Packet{ID: id, Type: rcon.TypeAuth, Body: password}); err != nil {
		return err
	}
	p, err := c.read()
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if p.ID == rcon.AuthFailedID {
		return errors.New("authentication refused")
	}
	return nil
}

// Exec sends one command and collects the full response. A sentinel
// frame after the command marks the end of chunked output, since the
// server answers requests strictly in order.
func (c *client) Exec(cmd string) (string, error) {
	id := c.next()
	sentinel := c.next()

	if err := c.write(rcon.Packet{ID: id, Type: rcon.TypeCommand, Body: cmd}); err != nil {
		return "", err
	}
	if err := c.write(rcon.Packet{ID: sentinel, Type: rcon.TypeResponse}); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		p, err := c.read()
		if err != nil {
			return "", err
		}
		switch p.ID {
		case sentinel:
			return b.String(), nil
		case id:
			b.WriteString(p.Body)
		}
	}
}

func (c *client) next() int32 {
	c.nextID++
	return c.nextID
}

func (c *client) write(p rcon.Packet) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	return rcon.WritePacket(c.conn, p)
}

func (c *client) read() (rcon.Packet, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return rcon.Packet{}, err
	}
	return rcon.ReadPacket(c.conn, maxFrame)
}
