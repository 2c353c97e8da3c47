// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// resolve.go - Target selector resolution against the live roster.

package server

import (
	"fmt"
	"math/rand"

	"github.com/jeranaias/forgecraft/internal/command"
	"github.com/jeranaias/forgecraft/internal/command/args"
	"github.com/jeranaias/forgecraft/internal/world"
)

// Target is one resolved selector match. Exactly one of Player and
// Entity is set.
type Target struct {
	Player *Player
	Entity *Entity
}

// Name returns the target's display name.
func (t Target) Name() string {
	if t.Player != nil {
		return t.Player.Name()
	}
	return t.Entity.DisplayName()
}

// Pos returns the target's position.
func (t Target) Pos() world.Pos {
	if t.Player != nil {
		pos, _ := t.Player.Position()
		return pos
	}
	return t.Entity.Pos
}

// ResolvePlayers resolves a selector to online players. Selectors
// that match entities (@e) must go through ResolveTargets instead;
// here @e is rejected.
func (s *Server) ResolvePlayers(sel args.Selector, sender command.Sender) ([]*Player, error) {
	switch sel.Kind {
	case args.SelectName:
		p, ok := s.roster.ByName(sel.Name)
		if !ok {
			return nil, fmt.Errorf("player %q is not online", sel.Name)
		}
		return []*Player{p}, nil

	case args.SelectSelf:
		p, ok := sender.(*Player)
		if !ok {
			return nil, fmt.Errorf("an entity is required to run this command here")
		}
		return []*Player{p}, nil

	case args.SelectAll:
		all := s.roster.Players()
		if len(all) == 0 {
			return nil, fmt.Errorf("no player was found")
		}
		if sel.Single && len(all) > 1 {
			return nil, fmt.Errorf("only one target is allowed, but %d matched", len(all))
		}
		return all, nil

	case args.SelectNearest:
		p, ok := s.nearestPlayer(sender)
		if !ok {
			return nil, fmt.Errorf("no player was found")
		}
		return []*Player{p}, nil

	case args.SelectRandom:
		all := s.roster.Players()
		if len(all) == 0 {
			return nil, fmt.Errorf("no player was found")
		}
		return []*Player{all[rand.Intn(len(all))]}, nil

	case args.SelectEntities:
		return nil, fmt.Errorf("only players may be affected by this command")

	default:
		return nil, fmt.Errorf("unknown selector")
	}
}

// ResolveTargets resolves a selector to players and entities. Every
// player selector resolves as in ResolvePlayers; @e additionally
// matches spawned entities.
func (s *Server) ResolveTargets(sel args.Selector, sender command.Sender) ([]Target, error) {
	if sel.Kind == args.SelectEntities {
		targets := make([]Target, 0, s.roster.Count()+s.roster.EntityCount())
		for _, p := range s.roster.Players() {
			targets = append(targets, Target{Player: p})
		}
		for _, e := range s.roster.Entities() {
			targets = append(targets, Target{Entity: e})
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("no entity was found")
		}
		if sel.Single && len(targets) > 1 {
			return nil, fmt.Errorf("only one target is allowed, but %d matched", len(targets))
		}
		return targets, nil
	}

	players, err := s.ResolvePlayers(sel, sender)
	if err != nil {
		return nil, err
	}
	targets := make([]Target, len(players))
	for i, p := range players {
		targets[i] = Target{Player: p}
	}
	return targets, nil
}

// nearestPlayer picks the online player closest to the sender. A
// sender with no position measures from the world origin.
func (s *Server) nearestPlayer(sender command.Sender) (*Player, bool) {
	origin, _ := sender.Position()
	var (
		best     *Player
		bestDist float64
	)
	for _, p := range s.roster.Players() {
		pos, _ := p.Position()
		d := origin.Dist(pos)
		if best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, best != nil
}
