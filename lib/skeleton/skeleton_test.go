// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package skeleton

import (
	"strings"
	"testing"
)

const pythonSample = `"""Module docstring.

Spans multiple lines.
"""
import os
from pathlib import Path

CONSTANT = 42


# Helper for the main path.
def helper(x):
    value = x * 2
    return value


class Widget:
    def __init__(self, name):
        self.name = name
        self.count = 0
`

const goSample = `// Package sample does sample things.
package sample

import (
	"fmt"
)

// Greet prints a greeting.
func Greet(name string) {
	message := fmt.Sprintf("hello %s", name)
	fmt.Println(message)
}
`

func TestSplitLinesReconstruction(t *testing.T) {
	inputs := []string{
		"",
		"one line no terminator",
		"a\nb\nc\n",
		"trailing\n\n\n",
		"crlf\r\nlines\r\n",
		"\n",
		"mixed\rterminators\r\nhere\n",
	}
	for _, input := range inputs {
		lines := SplitLines([]byte(input))
		if strings.Join(lines, "") != input {
			t.Errorf("SplitLines reconstruction failed for %q", input)
		}
	}
}

func TestExtractPython(t *testing.T) {
	s := Extract("widget.py", []byte(pythonSample))
	text := s.Text()

	mustContain := []string{
		`"""Module docstring.`,
		"import os",
		"from pathlib import Path",
		"def helper(x):",
		"# Helper for the main path.",
		"class Widget:",
		"def __init__(self, name):",
	}
	for _, want := range mustContain {
		if !strings.Contains(text, want) {
			t.Errorf("skeleton missing %q", want)
		}
	}

	mustOmit := []string{
		"value = x * 2",
		"return value",
		"self.count = 0",
	}
	for _, body := range mustOmit {
		if strings.Contains(text, body) {
			t.Errorf("skeleton contains body line %q", body)
		}
	}
}

func TestExtractGo(t *testing.T) {
	s := Extract("sample.go", []byte(goSample))
	text := s.Text()

	mustContain := []string{
		"// Package sample does sample things.",
		"package sample",
		"import (",
		"// Greet prints a greeting.",
		"func Greet(name string) {",
	}
	for _, want := range mustContain {
		if !strings.Contains(text, want) {
			t.Errorf("skeleton missing %q", want)
		}
	}

	if strings.Contains(text, "message :=") {
		t.Error("skeleton contains function body")
	}
}

func TestExtractOrderedSubsequence(t *testing.T) {
	s := Extract("widget.py", []byte(pythonSample))

	previous := -1
	for _, index := range s.Structural {
		if index <= previous {
			t.Fatalf("structural indices not strictly ascending: %v", s.Structural)
		}
		if index < 0 || index >= len(s.Lines) {
			t.Fatalf("structural index %d out of range", index)
		}
		previous = index
	}
}

func TestExtractDeterministic(t *testing.T) {
	first := Extract("widget.py", []byte(pythonSample))
	second := Extract("widget.py", []byte(pythonSample))

	if len(first.Structural) != len(second.Structural) {
		t.Fatal("structural counts differ between runs")
	}
	for i := range first.Structural {
		if first.Structural[i] != second.Structural[i] {
			t.Fatal("structural indices differ between runs")
		}
	}
}

func TestExtractEmptyFile(t *testing.T) {
	s := Extract("empty.go", nil)
	if len(s.Lines) != 0 || len(s.Structural) != 0 {
		t.Errorf("empty file skeleton = %+v, want empty", s)
	}
}

func TestExtractUnknownLanguage(t *testing.T) {
	content := []byte("; assembler-style comment\nmov ax, bx\n")
	s := Extract("boot.weird-ext", content)

	// The fallback prefix heuristics must still find the top comment.
	if len(s.Structural) == 0 {
		t.Fatal("no structural lines for unknown language")
	}
	if s.Lines[s.Structural[0]] != "; assembler-style comment\n" {
		t.Errorf("first structural line = %q", s.Lines[s.Structural[0]])
	}
}

func TestControlFlowNotSignature(t *testing.T) {
	content := []byte("func real() {\n\tif (x) {\n\t\twork()\n\t}\n}\n")
	s := Extract("flow.go", content)

	for _, index := range s.Structural {
		if strings.Contains(s.Lines[index], "if (x)") {
			t.Error("control-flow line classified as structural")
		}
	}
}
