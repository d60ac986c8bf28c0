// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package skeleton

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// commentLines reports, per line, whether the line's non-whitespace
// content is entirely comment text.
//
// When a chroma lexer matches the file name, the file is tokenized
// and comment token spans are mapped back onto lines; this handles
// block comments, docstrings, and languages whose comment markers the
// regex fallback does not know. The lexer path is abandoned — falling
// back to the prefix heuristics — if the token stream does not cover
// the input exactly, so a misbehaving lexer can only degrade line
// selection, never corrupt it.
func commentLines(path string, content []byte, lines []string) []bool {
	if marked, ok := lexerCommentLines(path, content, lines); ok {
		return marked
	}

	marked := make([]bool, len(lines))
	for i, line := range lines {
		marked[i] = hasCommentPrefix(line)
	}
	return marked
}

// lexerCommentLines classifies lines through a chroma lexer. The
// second return value is false when no lexer matched or the token
// stream did not reproduce the input.
func lexerCommentLines(path string, content []byte, lines []string) ([]bool, bool) {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return nil, false
	}

	iterator, err := lexer.Tokenise(nil, string(content))
	if err != nil {
		return nil, false
	}

	// comment[i] is true when byte i lies inside a comment token.
	comment := make([]bool, len(content))
	offset := 0
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		end := offset + len(tok.Value)
		if end > len(content) {
			return nil, false
		}
		// Docstrings are literals to chroma but comments to a reader.
		if tok.Type.InCategory(chroma.Comment) || tok.Type == chroma.LiteralStringDoc {
			for i := offset; i < end; i++ {
				comment[i] = true
			}
		}
		offset = end
	}
	if offset != len(content) {
		// The lexer dropped or rewrote bytes; its spans cannot be
		// trusted to line up with the file.
		return nil, false
	}

	marked := make([]bool, len(lines))
	position := 0
	for i, line := range lines {
		sawContent := false
		allComment := true
		for j := 0; j < len(line); j++ {
			b := line[j]
			if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
				continue
			}
			sawContent = true
			if !comment[position+j] {
				allComment = false
				break
			}
		}
		marked[i] = sawContent && allComment
		position += len(line)
	}
	return marked, true
}

// commentPrefixes cover the line-comment and block-comment openers of
// the mainstream languages; used when no lexer is available.
var commentPrefixes = []string{
	"//", "#", "--", ";", "/*", "*", "*/", "'''", `"""`, "<!--",
}

func hasCommentPrefix(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
