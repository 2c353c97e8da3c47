// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/forgecraft/internal/chat"
	"github.com/jeranaias/forgecraft/internal/perm"
	"github.com/jeranaias/forgecraft/internal/world"
)

// =============================================================================
// TEST FAKES
// =============================================================================

// testSender is a canned Sender. Console senders hold every permission
// node; player senders carry an explicit set.
type testSender struct {
	name   string
	level  perm.Level
	perms  perm.Set
	player bool
	sent   []*chat.Message
}

func console() *testSender {
	return &testSender{name: "Console", level: perm.Four}
}

func player(level perm.Level, nodes ...string) *testSender {
	return &testSender{name: "Steve", level: level, perms: perm.NewSet(nodes...), player: true}
}

func (s *testSender) Name() string      { return s.name }
func (s *testSender) Level() perm.Level { return s.level }
func (s *testSender) IsPlayer() bool    { return s.player }
func (s *testSender) IsConsole() bool   { return !s.player }

func (s *testSender) HasPermission(node string) bool {
	if !s.player {
		return true
	}
	return s.perms.Has(node)
}

func (s *testSender) SendMessage(m *chat.Message) { s.sent = append(s.sent, m) }
func (s *testSender) Position() (world.Pos, bool) { return world.Pos{}, false }
func (s *testSender) World() (*world.World, bool) { return nil, false }

// countHandler records how often it ran and with which arguments.
type countHandler struct {
	calls int
	last  ConsumedArgs
	err   error
}

func (h *countHandler) Execute(_ context.Context, _ Sender, args ConsumedArgs) error {
	h.calls++
	h.last = args
	return h.err
}

var nop = HandlerFunc(func(context.Context, Sender, ConsumedArgs) error { return nil })

// takeWord consumes one token verbatim.
type takeWord struct{ cands []string }

func (p takeWord) Kind() string { return "word" }

func (p takeWord) Parse(in *Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected a word")
	}
	return tok.Text, nil
}

func (p takeWord) Suggest(string, Sender) []string { return p.cands }

// takeInt consumes one base-10 integer token.
type takeInt struct{ cands []string }

func (p takeInt) Kind() string { return "integer" }

func (p takeInt) Parse(in *Input) (any, error) {
	tok, ok := in.Next()
	if !ok {
		return nil, in.Errorf("expected an integer")
	}
	v, err := strconv.Atoi(tok.Text)
	if err != nil {
		return nil, in.ErrorfAt(tok, "expected an integer, got %q", tok.Text)
	}
	return v, nil
}

func (p takeInt) Suggest(string, Sender) []string { return p.cands }

// takeRest greedily consumes the rest of the line.
type takeRest struct{}

func (takeRest) Kind() string { return "rest" }

func (takeRest) Parse(in *Input) (any, error) {
	rest := in.Rest()
	if rest == "" {
		return nil, in.Errorf("expected text")
	}
	return rest, nil
}

func (takeRest) Suggest(string, Sender) []string { return nil }
func (takeRest) Greedy() bool                    { return true }

func mustRegister(t *testing.T, d *Dispatcher, tree *Tree, node string, level perm.Level) {
	t.Helper()
	if err := d.Register(tree, node, level); err != nil {
		t.Fatalf("Register(%s): %v", tree.Name(), err)
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestDispatchRunsHandlerExactlyOnce(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("gamemode", "Change a game mode").Then(
		Arg("mode", takeWord{}).Executes(h),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.gamemode", perm.Two)

	s := console()
	if err := d.Dispatch(context.Background(), "gamemode creative", s); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if h.calls != 1 {
		t.Errorf("handler ran %d times, want 1", h.calls)
	}
	if mode, _ := h.last.String("mode"); mode != "creative" {
		t.Errorf("mode = %q, want creative", mode)
	}
	if len(s.sent) != 0 {
		t.Errorf("sender got %d messages, want none on success", len(s.sent))
	}
}

func TestDispatchAcceptsLeadingSlash(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("list", "List players").Executes(h).MustBuild()
	mustRegister(t, d, tree, "forgecraft.list", perm.Zero)

	if err := d.Dispatch(context.Background(), "/list", console()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if h.calls != 1 {
		t.Errorf("handler ran %d times, want 1", h.calls)
	}
}

func TestDispatchBlankLineIsNoOp(t *testing.T) {
	d := NewDispatcher()
	s := console()
	for _, line := range []string{"", "   ", "/"} {
		if err := d.Dispatch(context.Background(), line, s); err != nil {
			t.Errorf("Dispatch(%q): %v", line, err)
		}
	}
	if len(s.sent) != 0 {
		t.Errorf("sender got %d messages, want none", len(s.sent))
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := NewDispatcher()
	s := console()
	err := d.Dispatch(context.Background(), "bogus arg", s)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("error = %v, want ErrUnknownCommand", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("sender got %d messages, want exactly 1", len(s.sent))
	}
	if plain := s.sent[0].Plain(); !strings.Contains(plain, "Unknown command: bogus") {
		t.Errorf("message = %q", plain)
	}
}

func TestDispatchBelowLevelNeverRunsHandler(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("stop", "Stop the server").Executes(h).MustBuild()
	mustRegister(t, d, tree, "forgecraft.stop", perm.Four)

	s := player(perm.Two, "forgecraft.*")
	err := d.Dispatch(context.Background(), "stop", s)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
	if h.calls != 0 {
		t.Errorf("handler ran %d times, want 0", h.calls)
	}
	if len(s.sent) != 1 {
		t.Errorf("sender got %d messages, want exactly 1", len(s.sent))
	}
}

func TestDispatchPlayerNodeCheck(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("gamemode", "Change a game mode").Then(
		Arg("mode", takeWord{}).Executes(h),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.gamemode", perm.Two)

	// Right level, missing node.
	denied := player(perm.Two, "forgecraft.list")
	if err := d.Dispatch(context.Background(), "gamemode creative", denied); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("error = %v, want ErrPermissionDenied", err)
	}
	if h.calls != 0 {
		t.Errorf("handler ran %d times, want 0", h.calls)
	}

	// Exact node.
	if err := d.Dispatch(context.Background(), "gamemode creative", player(perm.Two, "forgecraft.gamemode")); err != nil {
		t.Errorf("Dispatch with node: %v", err)
	}
	// Wildcard node.
	if err := d.Dispatch(context.Background(), "gamemode creative", player(perm.Two, "forgecraft.*")); err != nil {
		t.Errorf("Dispatch with wildcard: %v", err)
	}
	// Console skips the node check entirely.
	if err := d.Dispatch(context.Background(), "gamemode creative", console()); err != nil {
		t.Errorf("Dispatch as console: %v", err)
	}
	if h.calls != 3 {
		t.Errorf("handler ran %d times, want 3", h.calls)
	}
}

func TestDispatchIncompleteCommand(t *testing.T) {
	d := NewDispatcher()
	tree := NewTree("gamemode", "Change a game mode").Then(
		Arg("mode", takeWord{}).Executes(nop),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.gamemode", perm.Zero)

	err := d.Dispatch(context.Background(), "gamemode", console())
	if !errors.Is(err, ErrIncompleteCommand) {
		t.Fatalf("error = %v, want ErrIncompleteCommand", err)
	}
	if off, ok := Offset(err); !ok || off != len("gamemode") {
		t.Errorf("offset = %d (%v), want end of line", off, ok)
	}
}

func TestDispatchReportsDeepestFailure(t *testing.T) {
	// Two overlapping branches; the error must come from the branch
	// that consumed furthest, whichever order the branches were
	// declared in.
	branches := [][]*NodeBuilder{
		{
			Literal("up").Then(Literal("fast").Executes(nop)),
			Arg("factor", takeInt{}).Then(Arg("times", takeInt{}).Executes(nop)),
		},
		{
			Arg("factor", takeInt{}).Then(Arg("times", takeInt{}).Executes(nop)),
			Literal("up").Then(Literal("fast").Executes(nop)),
		},
	}
	for i, bs := range branches {
		d := NewDispatcher()
		tree := NewTree("scale", "").Then(bs...).MustBuild()
		mustRegister(t, d, tree, "forgecraft.scale", perm.Zero)

		err := d.Dispatch(context.Background(), "scale 5 q", console())
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("order %d: error = %v, want *ParseError from the deeper branch", i, err)
		}
		if pe.Offset != 8 {
			t.Errorf("order %d: offset = %d, want 8 at %q", i, pe.Offset, "q")
		}
	}
}

func TestDispatchDeepLiteralFailureBeatsShallowSibling(t *testing.T) {
	d := NewDispatcher()
	tree := NewTree("scale", "").Then(
		Literal("up").Then(Literal("fast").Executes(nop)),
		Arg("factor", takeInt{}).Executes(nop),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.scale", perm.Zero)

	// "up" matches the literal and fails at "slow"; the integer
	// sibling fails earlier, at "up".
	err := d.Dispatch(context.Background(), "scale up slow", console())
	if !errors.Is(err, ErrNoMatchingBranch) {
		t.Fatalf("error = %v, want ErrNoMatchingBranch", err)
	}
	if off, _ := Offset(err); off != 9 {
		t.Errorf("offset = %d, want 9 at %q", off, "slow")
	}
}

func TestDispatchMatchedLiteralFallsThroughToArgument(t *testing.T) {
	hSet := &countHandler{}
	hText := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("label", "").Then(
		Literal("set").Then(Arg("value", takeInt{}).Executes(hSet)),
		Arg("text", takeWord{}).Executes(hText),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.label", perm.Zero)

	// "set" matches the literal but its subtree needs more input; the
	// argument sibling accepts the same token.
	if err := d.Dispatch(context.Background(), "label set", console()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if hSet.calls != 0 || hText.calls != 1 {
		t.Errorf("handlers ran set=%d text=%d, want 0 and 1", hSet.calls, hText.calls)
	}
	if text, _ := hText.last.String("text"); text != "set" {
		t.Errorf("text = %q, want set", text)
	}
}

func TestDispatchAliasEquivalence(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("teleport", "Teleport players", "tp").Then(
		Arg("n", takeInt{}).Executes(h),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.teleport", perm.Two)

	if err := d.Dispatch(context.Background(), "teleport 7", console()); err != nil {
		t.Fatalf("Dispatch canonical: %v", err)
	}
	canonical := h.last
	if err := d.Dispatch(context.Background(), "tp 7", console()); err != nil {
		t.Fatalf("Dispatch alias: %v", err)
	}
	if h.calls != 2 {
		t.Fatalf("handler ran %d times, want 2", h.calls)
	}
	if n1, _ := canonical.Int("n"); n1 != 7 {
		t.Errorf("canonical n = %d, want 7", n1)
	}
	if n2, _ := h.last.Int("n"); n2 != 7 {
		t.Errorf("alias n = %d, want 7", n2)
	}

	ct, ok1 := d.Lookup("teleport")
	at, ok2 := d.Lookup("tp")
	if !ok1 || !ok2 || ct != at {
		t.Error("alias resolves to a different registration")
	}
}

func TestDispatchLastRegistrationWins(t *testing.T) {
	hOld := &countHandler{}
	hNew := &countHandler{}
	d := NewDispatcher()
	old := NewTree("say", "").Then(Arg("m", takeRest{}).Executes(hOld)).MustBuild()
	mustRegister(t, d, old, "forgecraft.say", perm.Two)
	repl := NewTree("say", "").Then(Arg("m", takeRest{}).Executes(hNew)).MustBuild()
	mustRegister(t, d, repl, "forgecraft.say", perm.Two)

	if err := d.Dispatch(context.Background(), "say one  two", console()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if hOld.calls != 0 || hNew.calls != 1 {
		t.Errorf("handlers ran old=%d new=%d, want 0 and 1", hOld.calls, hNew.calls)
	}
	if m, _ := hNew.last.String("m"); m != "one  two" {
		t.Errorf("m = %q, want raw remainder with spacing kept", m)
	}
}

func TestDispatchRedirect(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	msg := NewTree("msg", "Whisper to a player").Then(
		Arg("target", takeWord{}).Then(Arg("text", takeRest{}).Executes(h)),
	).MustBuild()
	mustRegister(t, d, msg, "forgecraft.msg", perm.Zero)
	w := NewTree("w", "Alias of msg").Then(RedirectTo("msg")).MustBuild()
	mustRegister(t, d, w, "forgecraft.msg", perm.Zero)

	if err := d.Dispatch(context.Background(), "w Steve hello there", console()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if h.calls != 1 {
		t.Fatalf("handler ran %d times, want 1", h.calls)
	}
	if target, _ := h.last.String("target"); target != "Steve" {
		t.Errorf("target = %q", target)
	}
	if text, _ := h.last.String("text"); text != "hello there" {
		t.Errorf("text = %q", text)
	}
}

func TestDispatchUnresolvedRedirectSkipped(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("fallback", "").Then(
		RedirectTo("ghost"),
		Arg("n", takeInt{}).Executes(h),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.fallback", perm.Zero)

	if err := d.Dispatch(context.Background(), "fallback 3", console()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if n, _ := h.last.Int("n"); h.calls != 1 || n != 3 {
		t.Errorf("calls = %d, n = %d", h.calls, n)
	}
}

func TestRegisterRejectsRedirectCycle(t *testing.T) {
	d := NewDispatcher()
	first := NewTree("first", "").Then(RedirectTo("second")).MustBuild()
	mustRegister(t, d, first, "forgecraft.first", perm.Zero)

	second := NewTree("second", "").Then(RedirectTo("first")).MustBuild()
	err := d.Register(second, "forgecraft.second", perm.Zero)
	if err == nil || !strings.Contains(err.Error(), "redirect cycle") {
		t.Errorf("Register error = %v, want redirect cycle", err)
	}

	loop := NewTree("loop", "").Then(RedirectTo("loop")).MustBuild()
	err = d.Register(loop, "forgecraft.loop", perm.Zero)
	if err == nil || !strings.Contains(err.Error(), "redirect cycle") {
		t.Errorf("Register self-cycle error = %v, want redirect cycle", err)
	}
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	boom := errors.New("world is read-only")
	h := &countHandler{err: boom}
	d := NewDispatcher()
	tree := NewTree("seed", "").Executes(h).MustBuild()
	mustRegister(t, d, tree, "forgecraft.seed", perm.Zero)

	s := console()
	err := d.Dispatch(context.Background(), "seed", s)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the handler's error", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("sender got %d messages, want exactly 1", len(s.sent))
	}
	if plain := s.sent[0].Plain(); !strings.Contains(plain, "World is read-only") {
		t.Errorf("message = %q", plain)
	}
}

func TestRegisterAfterFreezeFails(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("list", "").Executes(h).MustBuild()
	mustRegister(t, d, tree, "forgecraft.list", perm.Zero)
	d.Freeze()

	late := NewTree("late", "").Executes(nop).MustBuild()
	if err := d.Register(late, "forgecraft.late", perm.Zero); err == nil || !strings.Contains(err.Error(), "frozen") {
		t.Errorf("Register error = %v, want frozen", err)
	}
	// Dispatch keeps working after the freeze.
	if err := d.Dispatch(context.Background(), "list", console()); err != nil {
		t.Errorf("Dispatch after Freeze: %v", err)
	}
	if h.calls != 1 {
		t.Errorf("handler ran %d times, want 1", h.calls)
	}
}

func TestRequiresHidesBranch(t *testing.T) {
	hSecret := &countHandler{}
	hOpen := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("door", "").Then(
		Literal("secret").Requires(RequireLevel(perm.Four)).Executes(hSecret),
		Arg("what", takeWord{}).Executes(hOpen),
	).MustBuild()
	mustRegister(t, d, tree, "forgecraft.door", perm.Zero)

	// Below the gate the literal is invisible and the argument takes
	// the token instead.
	if err := d.Dispatch(context.Background(), "door secret", player(perm.Zero, "forgecraft.*")); err != nil {
		t.Fatalf("Dispatch as player: %v", err)
	}
	if hSecret.calls != 0 || hOpen.calls != 1 {
		t.Errorf("handlers ran secret=%d open=%d, want 0 and 1", hSecret.calls, hOpen.calls)
	}
	if what, _ := hOpen.last.String("what"); what != "secret" {
		t.Errorf("what = %q", what)
	}

	if err := d.Dispatch(context.Background(), "door secret", console()); err != nil {
		t.Fatalf("Dispatch as console: %v", err)
	}
	if hSecret.calls != 1 {
		t.Errorf("gated handler ran %d times as console, want 1", hSecret.calls)
	}
}

func TestRootRequiresDeniesEntry(t *testing.T) {
	h := &countHandler{}
	d := NewDispatcher()
	tree := NewTree("shutdown", "").
		Requires(func(s Sender) bool { return s.IsConsole() }).
		Executes(h).
		MustBuild()
	mustRegister(t, d, tree, "forgecraft.shutdown", perm.Zero)

	err := d.Dispatch(context.Background(), "shutdown", player(perm.Four, "forgecraft.*"))
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
	if h.calls != 0 {
		t.Errorf("handler ran %d times, want 0", h.calls)
	}
	if err := d.Dispatch(context.Background(), "shutdown", console()); err != nil {
		t.Errorf("Dispatch as console: %v", err)
	}
}

func TestNamesAndCommandsFiltering(t *testing.T) {
	d := NewDispatcher()
	gm := NewTree("gamemode", "", "gm").Then(Arg("mode", takeWord{}).Executes(nop)).MustBuild()
	mustRegister(t, d, gm, "forgecraft.gamemode", perm.Two)
	list := NewTree("list", "").Executes(nop).MustBuild()
	mustRegister(t, d, list, "forgecraft.list", perm.Zero)

	all := d.Names(nil)
	want := []string{"gamemode", "gm", "list"}
	if len(all) != len(want) {
		t.Fatalf("Names(nil) = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("Names(nil)[%d] = %q, want %q", i, all[i], want[i])
		}
	}

	got := d.Names(player(perm.Zero, "forgecraft.*"))
	if len(got) != 1 || got[0] != "list" {
		t.Errorf("Names(player) = %v, want [list]", got)
	}

	cmds := d.Commands(console())
	if len(cmds) != 2 || cmds[0].Tree.Name() != "gamemode" || cmds[1].Tree.Name() != "list" {
		t.Errorf("Commands(console) = %d entries", len(cmds))
	}
}

func TestDispatchConcurrent(t *testing.T) {
	var n atomic.Int64
	h := HandlerFunc(func(context.Context, Sender, ConsumedArgs) error {
		n.Add(1)
		return nil
	})
	d := NewDispatcher()
	tree := NewTree("ping", "").Executes(h).MustBuild()
	mustRegister(t, d, tree, "forgecraft.ping", perm.Zero)
	d.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := console()
			for j := 0; j < 25; j++ {
				if err := d.Dispatch(context.Background(), "ping", s); err != nil {
					t.Errorf("Dispatch: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if n.Load() != 16*25 {
		t.Errorf("handler ran %d times, want %d", n.Load(), 16*25)
	}
}
