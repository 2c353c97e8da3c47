// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/config"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/store"
	"github.com/jeranaias/forgecraft/internal/world"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// Version is the server version.
	Version = "0.4.0"

	// TicksPerSecond is the simulation rate.
	TicksPerSecond = 20

	// tickInterval is the wall-clock duration of one tick.
	tickInterval = time.Second / TicksPerSecond
)

// spawnPos is where new players appear.
var spawnPos = world.Pos{X: 0.5, Y: 64, Z: 0.5}

// ============================================================================
// SERVER
// ============================================================================

// Server owns the world, the roster, and the command dispatcher. One
// Server runs one world.
type Server struct {
	cfg *config.Config
	log *slog.Logger
	st  *store.Store

	w      *world.World
	roster *Roster
	d      *command.Dispatcher

	barMu sync.RWMutex
	bars  map[string]*BossBar

	sinkMu sync.RWMutex
	sink   func(*chat.Message)

	console   *Console
	startedAt time.Time
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// New builds a Server from its configuration. A zero configured seed
// draws a random one. The store carries ops, bans, and the whitelist;
// it must outlive the server.
func New(cfg *config.Config, log *slog.Logger, st *store.Store) *Server {
	if log == nil {
		log = slog.Default()
	}

	seed := cfg.Server.Seed
	if seed == 0 {
		seed = rand.Int63()
		log.Info("generated world seed", "seed", seed)
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		st:        st,
		w:         world.New(cfg.Server.LevelName, seed),
		roster:    NewRoster(),
		d:         command.NewDispatcher(),
		bars:      make(map[string]*BossBar),
		startedAt: time.Now(),
		stopCh:    make(chan struct{}),
	}
	s.console = &Console{s: s}
	return s
}

// Dispatcher returns the command dispatcher.
func (s *Server) Dispatcher() *command.Dispatcher { return s.d }

// World returns the world the server runs.
func (s *Server) World() *world.World { return s.w }

// Roster returns the online-player registry.
func (s *Server) Roster() *Roster { return s.roster }

// Store returns the persistence layer.
func (s *Server) Store() *store.Store { return s.st }

// Config returns the server configuration.
func (s *Server) Config() *config.Config { return s.cfg }

// Console returns the console sender.
func (s *Server) Console() *Console { return s.console }

// Uptime reports how long the server has been up.
func (s *Server) Uptime() time.Duration { return time.Since(s.startedAt) }

// ============================================================================
// LIFECYCLE
// ============================================================================

// Start begins ticking the world. It returns immediately; the tick
// loop runs until Stop.
func (s *Server) Start() {
	s.log.Info("server started",
		"level", s.cfg.Server.LevelName,
		"seed", s.w.Seed(),
		"version", Version)

	go s.tickLoop()
}

func (s *Server) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.w.Tick()
		}
	}
}

// Stop halts the tick loop. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.log.Info("server stopped", "uptime", s.Uptime().Round(time.Second))
	})
}

// Done is closed when the server has been stopped.
func (s *Server) Done() <-chan struct{} { return s.stopCh }

// ============================================================================
// JOIN / LEAVE
// ============================================================================

// Join admits a player: capacity, ban, and whitelist checks, then op
// level and permission overlay from the store, then the roster. The
// join is announced to everyone.
func (s *Server) Join(p *Player) error {
	if max := s.cfg.Server.MaxPlayers; max > 0 && s.roster.Count() >= max {
		return fmt.Errorf("server is full")
	}

	if ban, found, err := s.st.BanByName(p.Name()); err != nil {
		return err
	} else if found {
		return fmt.Errorf("you are banned from this server: %s", ban.Reason)
	}

	if s.cfg.Server.Whitelist {
		listed, err := s.st.Whitelisted(p.Name())
		if err != nil {
			return err
		}
		if !listed {
			return fmt.Errorf("you are not white-listed on this server")
		}
	}

	if lvl, found, err := s.st.OpLevel(p.UUID()); err != nil {
		return err
	} else if found {
		p.SetLevel(lvl)
	}
	p.setExtra(func(node string) bool {
		return s.st.PermissionNodes(p.Name()).Has(node)
	})

	p.SetWorld(s.w)
	if pos, _ := p.Position(); pos == (world.Pos{}) {
		p.SetPosition(spawnPos)
	}

	if err := s.roster.Join(p); err != nil {
		return err
	}

	s.Broadcast(chat.Textf("%s joined the game", p.Name()).Color(chat.Yellow))
	s.log.Info("player joined", "player", p.Name(), "online", s.roster.Count())
	return nil
}

// Leave removes a player and announces the departure.
func (s *Server) Leave(id uuid.UUID) bool {
	p, ok := s.roster.Leave(id)
	if !ok {
		return false
	}

	s.Broadcast(chat.Textf("%s left the game", p.Name()).Color(chat.Yellow))
	s.log.Info("player left", "player", p.Name(), "online", s.roster.Count())
	return true
}

// ============================================================================
// CHAT
// ============================================================================

// Broadcast sends a message to every online player and the console.
func (s *Server) Broadcast(m *chat.Message) {
	for _, p := range s.roster.Players() {
		p.SendMessage(m)
	}
	s.consoleWrite(m)
}

// SetConsoleSink routes console output, replacing the log fallback.
// The interactive console and the TUI install themselves here.
func (s *Server) SetConsoleSink(fn func(*chat.Message)) {
	s.sinkMu.Lock()
	s.sink = fn
	s.sinkMu.Unlock()
}

func (s *Server) consoleWrite(m *chat.Message) {
	s.sinkMu.RLock()
	sink := s.sink
	s.sinkMu.RUnlock()

	if sink != nil {
		sink(m)
		return
	}
	s.log.Info(m.Plain())
}

// ============================================================================
// BOSS BARS
// ============================================================================

// AddBossBar creates a custom bar under a unique id.
func (s *Server) AddBossBar(id, name string) (*BossBar, error) {
	s.barMu.Lock()
	defer s.barMu.Unlock()

	if _, exists := s.bars[id]; exists {
		return nil, fmt.Errorf("a boss bar with id %q already exists", id)
	}
	b := newBossBar(id, name)
	s.bars[id] = b
	return b, nil
}

// RemoveBossBar deletes a bar, reporting whether it existed.
func (s *Server) RemoveBossBar(id string) bool {
	s.barMu.Lock()
	defer s.barMu.Unlock()

	if _, exists := s.bars[id]; !exists {
		return false
	}
	delete(s.bars, id)
	return true
}

// BossBar looks up a bar by id.
func (s *Server) BossBar(id string) (*BossBar, bool) {
	s.barMu.RLock()
	defer s.barMu.RUnlock()
	b, ok := s.bars[id]
	return b, ok
}

// BossBars returns all bars ordered by id.
func (s *Server) BossBars() []*BossBar {
	s.barMu.RLock()
	defer s.barMu.RUnlock()

	bars := make([]*BossBar, 0, len(s.bars))
	for _, b := range s.bars {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].id < bars[j].id })
	return bars
}

// BossBarIDs returns the ids of all bars, sorted.
func (s *Server) BossBarIDs() []string {
	s.barMu.RLock()
	defer s.barMu.RUnlock()

	ids := make([]string, 0, len(s.bars))
	for id := range s.bars {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ============================================================================
// CONSOLE SENDER
// ============================================================================

// Console is the sender behind the local terminal. It holds the top
// permission level and passes every permission check.
type Console struct {
	s *Server
}

// Name returns the console's display name.
func (c *Console) Name() string { return "Server" }

// Level returns the top operator level.
func (c *Console) Level() perm.Level { return perm.Four }

// HasPermission always grants.
func (c *Console) HasPermission(node string) bool { return true }

// SendMessage writes to the console sink.
func (c *Console) SendMessage(m *chat.Message) { c.s.consoleWrite(m) }

// IsPlayer reports false.
func (c *Console) IsPlayer() bool { return false }

// IsConsole reports true.
func (c *Console) IsConsole() bool { return true }

// Position reports that the console has no position.
func (c *Console) Position() (world.Pos, bool) { return world.Pos{}, false }

// World reports that the console is in no world.
func (c *Console) World() (*world.World, bool) { return nil, false }

var _ command.Sender = (*Console)(nil)
