// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// token.go - Command line tokenizer.

package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one word of a command line with its byte span. For a quoted
// token the span includes the quotes while Text holds the unquoted
// content.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits line on unquoted whitespace. A double quote at the
// start of a token groups text, whitespace included, until the closing
// quote; inside quotes \" and \\ escape, any other backslash is
// literal. A blank line yields an empty sequence. An unclosed quote
// fails with ErrUnterminatedQuote at the opening quote's offset.
func Tokenize(line string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '"':
			tok, next, err := readQuoted(line, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		default:
			tok, next := readBare(line, i)
			toks = append(toks, tok)
			i = next
		}
	}
	return toks, nil
}

// readBare scans an unquoted token starting at start. Quotes inside a
// bare token are literal characters.
func readBare(line string, start int) (Token, int) {
	i := start
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return Token{Text: line[start:i], Start: start, End: i}, i
}

// readQuoted scans a quoted token whose opening quote sits at start.
func readQuoted(line string, start int) (Token, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch r {
		case '\\':
			if i+size < len(line) {
				nr, nsize := utf8.DecodeRuneInString(line[i+size:])
				if nr == '"' || nr == '\\' {
					b.WriteRune(nr)
					i += size + nsize
					continue
				}
			}
			b.WriteRune(r)
			i += size
		case '"':
			return Token{Text: b.String(), Start: start, End: i + size}, i + size, nil
		default:
			b.WriteRune(r)
			i += size
		}
	}
	return Token{}, 0, &SyntaxError{Err: ErrUnterminatedQuote, Offset: start}
}
