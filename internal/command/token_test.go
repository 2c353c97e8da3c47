// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"errors"
	"testing"
)

func TestTokenizeOffsets(t *testing.T) {
	toks, err := Tokenize("give @s stone 1")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{
		{Text: "give", Start: 0, End: 4},
		{Text: "@s", Start: 5, End: 7},
		{Text: "stone", Start: 8, End: 13},
		{Text: "1", Start: 14, End: 15},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i] != w {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], w)
		}
	}
}

func TestTokenizeQuotedGrouping(t *testing.T) {
	toks, err := Tokenize(`say "hello world"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Text != "say" || toks[1].Text != "hello world" {
		t.Errorf("texts = %q, %q", toks[0].Text, toks[1].Text)
	}
	// The quoted span covers the quotes even though Text drops them.
	if toks[1].Start != 4 || toks[1].End != 17 {
		t.Errorf("quoted span = [%d,%d), want [4,17)", toks[1].Start, toks[1].End)
	}
}

func TestTokenizeQuoteEscapes(t *testing.T) {
	toks, err := Tokenize(`msg Steve "a \"quoted\" bit"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[2].Text != `a "quoted" bit` {
		t.Errorf("text = %q", toks[2].Text)
	}

	// A backslash before anything else stays literal.
	toks, err = Tokenize(`say "a\nb"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[1].Text != `a\nb` {
		t.Errorf("text = %q, want a\\nb", toks[1].Text)
	}
}

func TestTokenizeBareQuoteIsLiteral(t *testing.T) {
	toks, err := Tokenize(`it's ab"cd`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 2 || toks[0].Text != "it's" || toks[1].Text != `ab"cd` {
		t.Errorf("tokens = %+v", toks)
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`msg Steve "oops`)
	if !errors.Is(err, ErrUnterminatedQuote) {
		t.Fatalf("error = %v, want ErrUnterminatedQuote", err)
	}
	off, ok := Offset(err)
	if !ok || off != 10 {
		t.Errorf("offset = %d (%v), want 10 at the opening quote", off, ok)
	}
}

func TestTokenizeBlank(t *testing.T) {
	for _, line := range []string{"", "   ", " \t "} {
		toks, err := Tokenize(line)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", line, err)
		}
		if len(toks) != 0 {
			t.Errorf("Tokenize(%q) = %+v, want none", line, toks)
		}
	}
}
