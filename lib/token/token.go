// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package token

import "fmt"

// Kind classifies a lexical unit. Classification affects only where
// the chunker prefers to cut; it never affects reconstruction.
type Kind uint8

const (
	// KindIdentifier is a run of letters, digits, and underscores
	// starting with a letter or underscore. Bytes ≥ 0x80 are treated
	// as letters so multi-byte UTF-8 sequences stay in one token.
	KindIdentifier Kind = iota

	// KindNumber is a run starting with an ASCII digit, continuing
	// through digits, letters, and dots. Covers decimal, hex, and
	// float spellings loosely.
	KindNumber

	// KindString is a quoted literal: a quote character through its
	// matching close quote, honoring backslash escapes. An
	// unterminated literal ends at the line end.
	KindString

	// KindPunct is a run of bytes that start no other kind:
	// operators, brackets, control bytes, and similar.
	KindPunct

	// KindSpace is a run of spaces and tabs.
	KindSpace

	// KindNewline is a single line terminator: "\r\n", "\n", or "\r".
	KindNewline
)

// String returns the kind's lowercase name.
func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindPunct:
		return "punct"
	case KindSpace:
		return "space"
	case KindNewline:
		return "newline"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Token is a classified lexical unit. Text is the exact input bytes
// the token covers.
type Token struct {
	Kind Kind
	Text string
}

// Scanner iterates over the tokens of a byte slice. Create one with
// [NewScanner] and call [Scanner.Next] until it reports false. The
// data slice is not copied; the caller must not modify it while
// scanning.
type Scanner struct {
	data     []byte
	position int
}

// NewScanner creates a scanner over the given data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next returns the next token. The second return value is false when
// the input is exhausted.
func (s *Scanner) Next() (Token, bool) {
	if s.position >= len(s.data) {
		return Token{}, false
	}

	start := s.position
	b := s.data[start]

	var kind Kind
	switch {
	case b == '\n':
		s.position++
		kind = KindNewline

	case b == '\r':
		s.position++
		if s.position < len(s.data) && s.data[s.position] == '\n' {
			s.position++
		}
		kind = KindNewline

	case b == ' ' || b == '\t':
		for s.position < len(s.data) && (s.data[s.position] == ' ' || s.data[s.position] == '\t') {
			s.position++
		}
		kind = KindSpace

	case isIdentifierStart(b):
		for s.position < len(s.data) && isIdentifierByte(s.data[s.position]) {
			s.position++
		}
		kind = KindIdentifier

	case b >= '0' && b <= '9':
		for s.position < len(s.data) && isNumberByte(s.data[s.position]) {
			s.position++
		}
		kind = KindNumber

	case b == '"' || b == '\'' || b == '`':
		s.scanString(b)
		kind = KindString

	default:
		for s.position < len(s.data) && isPunctByte(s.data[s.position]) {
			s.position++
		}
		kind = KindPunct
	}

	return Token{Kind: kind, Text: string(s.data[start:s.position])}, true
}

// scanString advances past a quoted literal opened by quote. The
// closing quote is consumed. A backslash escapes the following byte.
// The literal never crosses a line terminator: if none of the above
// ends it first, it ends just before the newline (or at end of
// input), keeping the tokenizer robust on text that merely looks like
// it opens a string.
func (s *Scanner) scanString(quote byte) {
	s.position++ // opening quote
	for s.position < len(s.data) {
		b := s.data[s.position]
		switch {
		case b == quote:
			s.position++
			return
		case b == '\n' || b == '\r':
			return
		case b == '\\' && s.position+1 < len(s.data) &&
			s.data[s.position+1] != '\n' && s.data[s.position+1] != '\r':
			s.position += 2
		default:
			s.position++
		}
	}
}

// Tokenize splits data into its complete token sequence. The
// concatenation of the returned tokens' texts equals data exactly.
func Tokenize(data []byte) []Token {
	if len(data) == 0 {
		return nil
	}

	// Most source text averages a few bytes per token.
	tokens := make([]Token, 0, len(data)/4+1)
	scanner := NewScanner(data)
	for {
		t, ok := scanner.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, t)
	}
}

func isIdentifierStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentifierByte(b byte) bool {
	return isIdentifierStart(b) || (b >= '0' && b <= '9')
}

func isNumberByte(b byte) bool {
	return b == '.' || isIdentifierByte(b)
}

// isPunctByte reports whether b continues a punctuation run: any byte
// that would not start another token kind.
func isPunctByte(b byte) bool {
	switch {
	case b == '\n' || b == '\r' || b == ' ' || b == '\t':
		return false
	case isIdentifierStart(b):
		return false
	case b >= '0' && b <= '9':
		return false
	case b == '"' || b == '\'' || b == '`':
		return false
	default:
		return true
	}
}
