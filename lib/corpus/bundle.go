// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBundle parses a combined markdown document into a Corpus. The
// expected shape is a sequence of level-2 headings naming file paths,
// each followed by a fenced code block holding the file content.
// Headings without a following code block are skipped. Other document
// content (titles, prose between files) is ignored.
func ParseBundle(source []byte) (Corpus, error) {
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var files []File
	var pendingPath string
	havePending := false

	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		switch typed := node.(type) {
		case *ast.Heading:
			if typed.Level == 2 {
				pendingPath = strings.TrimSpace(nodeText(typed, source))
				havePending = pendingPath != ""
			}

		case *ast.FencedCodeBlock:
			if !havePending {
				continue
			}
			var content bytes.Buffer
			lines := typed.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				content.Write(segment.Value(source))
			}
			files = append(files, File{Path: pendingPath, Content: content.Bytes()})
			havePending = false
		}
	}

	return New(files)
}

// FormatBundle renders a Corpus as a combined markdown document, the
// inverse of [ParseBundle]. File content lacking a trailing newline
// gains one so the closing fence sits on its own line; this is the
// bundle format's one lossy edge, inherent to fenced blocks.
func FormatBundle(c Corpus) []byte {
	var out bytes.Buffer
	out.WriteString("# Corpus Bundle\n")

	for _, f := range c {
		fmt.Fprintf(&out, "\n## %s\n\n", f.Path)

		fence := fenceFor(f.Content)
		out.WriteString(fence)
		if language := languageFor(f.Path); language != "" {
			out.WriteString(language)
		}
		out.WriteByte('\n')
		out.Write(f.Content)
		if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
			out.WriteByte('\n')
		}
		out.WriteString(fence)
		out.WriteByte('\n')
	}

	return out.Bytes()
}

// nodeText collects the raw text of a node's inline children.
func nodeText(node ast.Node, source []byte) string {
	var out bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if textNode, ok := n.(*ast.Text); ok {
			out.Write(textNode.Segment.Value(source))
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(node)
	return out.String()
}

// fenceFor returns a backtick fence long enough that content
// containing backtick runs cannot close it early.
func fenceFor(content []byte) string {
	longest := 0
	current := 0
	for _, b := range content {
		if b == '`' {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	length := longest + 1
	if length < 3 {
		length = 3
	}
	return strings.Repeat("`", length)
}

// languageFor maps a file extension to the fenced-block info string.
// Unknown extensions get no language tag.
func languageFor(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rb":
		return "ruby"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".cs":
		return "csharp"
	case ".sh", ".bash":
		return "bash"
	case ".css":
		return "css"
	case ".html", ".htm":
		return "html"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".md":
		return "markdown"
	case ".sql":
		return "sql"
	default:
		return ""
	}
}
