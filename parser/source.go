// Copyright © 2026 The iota authors

package parser

import (
	"sort"

	"github.com/iotalang/iota/ast"
)

const endOfInput = "end of input"

// source maps byte offsets of a source text to line and column positions.
type source struct {
	text  []byte
	lines []int // offset of the first byte of each line
}

func newSource(text []byte) *source {
	lines := []int{0}
	for i, b := range text {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &source{text: text, lines: lines}
}

func (s *source) pos(offset int) ast.Pos {
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return ast.Pos{Line: line + 1, Col: offset - s.lines[line] + 1}
}

// near returns the token-ish text starting at offset, for error messages.
func (s *source) near(offset int) string {
	if offset >= len(s.text) {
		return endOfInput
	}
	end := offset
	for end < len(s.text) && end-offset < 16 {
		c := s.text[end]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		end++
	}
	if end == offset {
		end++
	}
	return "'" + string(s.text[offset:end]) + "'"
}

// stripComments blanks out // line comments, keeping every byte offset and
// newline in place so positions stay correct.
func stripComments(text []byte) []byte {
	out := make([]byte, len(text))
	copy(out, text)
	for i := 0; i+1 < len(out); i++ {
		if out[i] != '/' || out[i+1] != '/' {
			continue
		}
		for i < len(out) && out[i] != '\n' {
			out[i] = ' '
			i++
		}
	}
	return out
}
