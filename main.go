// forgecraft - a Minecraft-flavored server core with console, RCON and dashboard.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/jeranaias/forgecraft/internal/command/commands"
	"github.com/jeranaias/forgecraft/internal/config"
	"github.com/jeranaias/forgecraft/internal/console"
	"github.com/jeranaias/forgecraft/internal/rcon"
	"github.com/jeranaias/forgecraft/internal/server"
	"github.com/jeranaias/forgecraft/internal/store"
	"github.com/jeranaias/forgecraft/internal/tui"
)

// Build information (set at build time)
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath, "path to the server configuration file")
	hashPassword := flag.Bool("hash-password", false, "prompt for an rcon password, print its bcrypt hash and exit")
	useTUI := flag.Bool("tui", false, "start the full-screen dashboard instead of the line console")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("forgecraft %s (commit %s, built %s)\n", server.Version, gitCommit, buildDate)
		return nil
	}
	if *hashPassword {
		return printPasswordHash()
	}

	cfg, err := config.LoadFromPath(*configPath)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(log)

	if err := os.MkdirAll(cfg.Server.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	st, err := store.Open(filepath.Join(cfg.Server.DataDir, "forgecraft.db"), log)
	if err != nil {
		return err
	}
	defer st.Close()

	overlay := filepath.Join(cfg.Server.DataDir, "permissions.toml")
	if err := st.WatchPermissions(overlay); err != nil {
		log.Warn("permissions overlay not live-reloading", "path", overlay, "error", err)
	}

	srv := server.New(cfg, log, st)
	if err := commands.RegisterDefaults(srv.Dispatcher(), srv); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	srv.Dispatcher().Freeze()
	srv.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-srv.Done()
		cancel()
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case s := <-sig:
			log.Info("signal received, stopping", "signal", s.String())
			srv.Stop()
		case <-srv.Done():
		}
	}()

	if cfg.Rcon.Enabled {
		l, err := rcon.Listen(cfg.Rcon, srv, log)
		if err != nil {
			return fmt.Errorf("failed to start rcon: %w", err)
		}
		log.Info("rcon listening", "addr", l.Addr().String())
		go func() {
			if err := l.Serve(ctx); err != nil {
				log.Error("rcon listener failed", "error", err)
			}
		}()
	}

	switch {
	case *useTUI || cfg.Console.TUI:
		if err := tui.Run(ctx, srv, log); err != nil {
			return fmt.Errorf("dashboard failed: %w", err)
		}
	case cfg.Console.Enabled:
		if err := console.New(srv, cfg.Console, cfg.Server.DataDir, log).Run(ctx); err != nil {
			return fmt.Errorf("console failed: %w", err)
		}
	}

	<-srv.Done()
	log.Info("server stopped")
	return nil
}

// printPasswordHash reads a password without echo when stdin is a
// terminal and prints the bcrypt hash for the rcon config.
func printPasswordHash() error {
	fmt.Fprint(os.Stderr, "Password: ")

	var (
		raw []byte
		err error
	)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err = term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
	} else {
		line, rerr := bufio.NewReader(os.Stdin).ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			err = rerr
		}
		raw = []byte(strings.TrimRight(line, "\r\n"))
	}
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fmt.Println(string(hash))
	return nil
}
