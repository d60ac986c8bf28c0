// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package skeleton

import (
	"regexp"
	"strings"
)

// Skeleton is the structural view of one file: the full line split
// plus the indices of the lines judged structural.
type Skeleton struct {
	// Lines is every line of the file with terminators attached. The
	// concatenation of Lines reproduces the file exactly.
	Lines []string

	// Structural holds indices into Lines, ascending and unique.
	Structural []int
}

// StructuralLines returns the structural lines in order.
func (s Skeleton) StructuralLines() []string {
	lines := make([]string, len(s.Structural))
	for i, index := range s.Structural {
		lines[i] = s.Lines[index]
	}
	return lines
}

// Text returns the concatenated structural lines.
func (s Skeleton) Text() string {
	var b strings.Builder
	for _, index := range s.Structural {
		b.WriteString(s.Lines[index])
	}
	return b.String()
}

// SplitLines splits content into lines with terminators attached.
// The final line may lack a terminator. Concatenating the result
// reproduces content exactly; an empty input yields no lines.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	var lines []string
	start := 0
	for i, b := range content {
		if b == '\n' {
			lines = append(lines, string(content[start:i+1]))
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, string(content[start:]))
	}
	return lines
}

// Extract computes the skeleton of one file. Deterministic: the same
// path and content always produce the same skeleton.
func Extract(path string, content []byte) Skeleton {
	lines := SplitLines(content)
	structural := make([]bool, len(lines))
	comments := commentLines(path, content, lines)

	// Top-of-file comment block: comment lines (blank lines allowed
	// inside the block) before the first line of code.
	for i := 0; i < len(lines); i++ {
		if isBlank(lines[i]) {
			continue
		}
		if !comments[i] {
			break
		}
		structural[i] = true
	}

	for i, line := range lines {
		if !isImportLine(line) && !isSignatureLine(line) {
			continue
		}
		structural[i] = true

		// Pull in the comment block directly above the declaration.
		for j := i - 1; j >= 0 && comments[j]; j-- {
			structural[j] = true
		}
	}

	skeleton := Skeleton{Lines: lines}
	for i, keep := range structural {
		if keep {
			skeleton.Structural = append(skeleton.Structural, i)
		}
	}
	return skeleton
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// importPattern matches module-inclusion lines across the common
// language families.
var importPattern = regexp.MustCompile(
	`^\s*(?:import|from\s+\S+\s+import|using|require|require_relative|include|#include|use|extern\s+crate|package|module|open)\b`)

// signaturePatterns match declaration lines. Adapted from the shapes
// the surrounding system recognized (functions, arrow functions,
// classes, decorators, routes) and broadened to cover the usual
// statically-typed spellings.
var signaturePatterns = []*regexp.Regexp{
	// Keyword-led declarations.
	regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?(?:function|func|fn|def|class|interface|trait|impl|enum|struct|type|namespace|contract)\b`),
	// Modifier-led declarations that open a block or parameter list.
	regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|final|abstract|override|virtual)\b.*[({]`),
	// Arrow functions bound to a name.
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+\w+\s*=\s*(?:async\s*)?\([^)]*\)\s*=>`),
	// Decorators and annotations (includes route registrations).
	regexp.MustCompile(`^\s*@\w`),
	// C-style definitions: a parameter list closing into an opening
	// brace on the same line.
	regexp.MustCompile(`^\s*[A-Za-z_][\w\s\*&:<>,\[\]\.]*\([^)]*\)\s*\{\s*$`),
}

// controlKeywords are excluded from the C-style rule: `if (x) {` has
// the same shape as a function definition but is body text.
var controlKeywords = regexp.MustCompile(`^\s*(?:if|else|for|while|switch|catch|return|defer|go|select)\b`)

func isImportLine(line string) bool {
	return importPattern.MatchString(line)
}

func isSignatureLine(line string) bool {
	if controlKeywords.MatchString(line) {
		return false
	}
	for _, pattern := range signaturePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
