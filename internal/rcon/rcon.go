// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rcon serves the classic Source remote-console protocol on
// TCP. Clients authenticate once with the configured password, then
// submit command lines that run through the dispatcher as an Rcon
// sender; whatever the command answers drains back in response
// frames.
//
// Authentication verifies against a bcrypt hash so the plaintext
// password never sits in the config, and attempts are rate limited
// per client address. Connections from banned addresses are dropped
// before the first frame is read.
package rcon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jeranaias/forgecraft/internal/config"
	"github.com/jeranaias/forgecraft/internal/server"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// authTimeout bounds how long a fresh connection may sit before
	// sending its auth frame.
	authTimeout = 30 * time.Second

	// idleTimeout disconnects authenticated sessions with no traffic.
	idleTimeout = 5 * time.Minute

	// writeTimeout bounds each response write.
	writeTimeout = 10 * time.Second

	// maxResponseBody splits long command output across frames, the
	// size vanilla clients expect.
	maxResponseBody = 4096
)

// =============================================================================
// LISTENER
// =============================================================================

// Listener accepts RCON connections and runs one session goroutine
// per client.
type Listener struct {
	cfg config.RconConfig
	srv *server.Server
	log *slog.Logger
	ln  net.Listener

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	sessions atomic.Int64
	rejected atomic.Int64

	wg sync.WaitGroup
}

// Listen binds the configured address. The listener does not accept
// connections until Serve runs.
func Listen(cfg config.RconConfig, srv *server.Server, log *slog.Logger) (*Listener, error) {
	if cfg.PasswordHash == "" {
		return nil, errors.New("rcon: password hash not configured")
	}
	if log == nil {
		log = slog.Default()
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("rcon: listen on %s: %w", cfg.Addr, err)
	}

	return &Listener{
		cfg:      cfg,
		srv:      srv,
		log:      log,
		ln:       ln,
		limiters: make(map[string]*rate.Limiter),
	}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Stats reports sessions served and refused authentication attempts.
func (l *Listener) Stats() (sessions, rejected int64) {
	return l.sessions.Load(), l.rejected.Load()
}

// Serve accepts connections until ctx is canceled, then waits for
// in-flight sessions to finish.
func (l *Listener) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { l.ln.Close() })
	defer stop()

	l.log.Info("rcon listening", "addr", l.ln.Addr().String())

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			l.wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				l.log.Info("rcon listener stopped",
					"sessions", l.sessions.Load(),
					"rejected", l.rejected.Load())
				return nil
			}
			return fmt.Errorf("rcon: accept: %w", err)
		}

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.handle(ctx, conn)
		}()
	}
}

// =============================================================================
// SESSION
// =============================================================================

func (l *Listener) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	addr := remoteIP(conn)

	if ban, banned, err := l.srv.Store().IPBanned(addr); err == nil && banned {
		l.log.Warn("rcon connection from banned address dropped",
			"addr", addr, "reason", ban.Reason)
		return
	}

	if !l.authenticate(conn, addr) {
		return
	}
	l.sessions.Add(1)
	l.log.Info("rcon session authenticated", "addr", addr)

	sender := server.NewRcon()
	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		req, err := ReadPacket(conn, l.cfg.MaxPacket)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				l.log.Debug("rcon session closed", "addr", addr, "err", err)
			}
			return
		}

		if req.Type != TypeCommand {
			// Anything but a command after auth earns an empty
			// response with the same id.
			if l.respond(conn, Packet{ID: req.ID, Type: TypeResponse}) != nil {
				return
			}
			continue
		}

		// Failures render into the sender's buffer the same way they
		// reach a player, so the client sees them in the response.
		if err := l.srv.Dispatcher().Dispatch(ctx, req.Body, sender); err != nil {
			l.log.Debug("rcon command failed", "addr", addr, "line", req.Body, "err", err)
		}
		if l.respondBody(conn, req.ID, sender.TakeOutput()) != nil {
			return
		}
	}
}

// authenticate runs the single-attempt auth exchange. Every refusal
// answers with AuthFailedID before the connection drops.
func (l *Listener) authenticate(conn net.Conn, addr string) bool {
	conn.SetReadDeadline(time.Now().Add(authTimeout))
	req, err := ReadPacket(conn, l.cfg.MaxPacket)
	if err != nil {
		return false
	}
	if req.Type != TypeAuth {
		l.refuse(conn, addr, "expected auth frame")
		return false
	}
	if !l.limiter(addr).Allow() {
		l.refuse(conn, addr, "rate limited")
		return false
	}
	if bcrypt.CompareHashAndPassword([]byte(l.cfg.PasswordHash), []byte(req.Body)) != nil {
		l.refuse(conn, addr, "bad password")
		return false
	}
	return l.respond(conn, Packet{ID: req.ID, Type: TypeAuthResponse}) == nil
}

func (l *Listener) refuse(conn net.Conn, addr, reason string) {
	l.rejected.Add(1)
	l.log.Warn("rcon auth refused", "addr", addr, "reason", reason)
	l.respond(conn, Packet{ID: AuthFailedID, Type: TypeAuthResponse})
}

// respondBody writes body as one or more response frames. Empty
// output still answers with one empty frame so the client's request
// ids stay paired.
func (l *Listener) respondBody(conn net.Conn, id int32, body string) error {
	for {
		chunk := body
		if len(chunk) > maxResponseBody {
			chunk = chunk[:maxResponseBody]
		}
		body = body[len(chunk):]
		if err := l.respond(conn, Packet{ID: id, Type: TypeResponse, Body: chunk}); err != nil {
			return err
		}
		if body == "" {
			return nil
		}
	}
}

func (l *Listener) respond(conn net.Conn, p Packet) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return WritePacket(conn, p)
}

// =============================================================================
// HELPERS
// =============================================================================

// limiter returns the auth limiter for addr, creating it on first
// contact. Attempts refill at the configured per-minute rate.
func (l *Listener) limiter(addr string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[addr]
	if !ok {
		perMin := l.cfg.AuthPerMin
		if perMin < 1 {
			perMin = 1
		}
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
		l.limiters[addr] = lim
	}
	return lim
}

func remoteIP(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}
