// Package linenumber maps byte offsets of a source buffer to the line and column
// positions shown to users.
package linenumber

import (
	"fmt"
	"sort"
)

// Position is a one-based line and column
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Map converts byte offsets to and from line and column pairs. Offsets, lines and
// columns are zero-based unless they come wrapped in a Position.
type Map struct {
	ByteCount   int   // number of bytes in the buffer
	LineOffsets []int // byte offset of the first char of each line
}

// NewMap creates a map for the given buffer.
func NewMap(buf []byte) *Map {
	m := Map{
		ByteCount:   len(buf),
		LineOffsets: []int{0},
	}
	for i, c := range buf {
		if c == '\n' {
			m.LineOffsets = append(m.LineOffsets, i+1)
		}
	}
	return &m
}

// Offset converts a zero-based line and column to a byte offset
func (m *Map) Offset(line, column int) int {
	return m.LineOffsets[line] + column
}

// LineCol converts a byte offset to a zero-based line and column. A newline
// belongs to the line it ends. Offsets past the end are clamped to the buffer.
func (m *Map) LineCol(offset int) (line, column int) {
	if offset > m.ByteCount {
		offset = m.ByteCount
	}
	if offset < 0 {
		offset = 0
	}
	line = sort.Search(len(m.LineOffsets)-1, func(i int) bool { return offset < m.LineOffsets[i+1] })
	return line, offset - m.LineOffsets[line]
}

// Line gets the zero-based line number for a byte offset
func (m *Map) Line(offset int) int {
	line, _ := m.LineCol(offset)
	return line
}

// Position gets the one-based position of a byte offset
func (m *Map) Position(offset int) Position {
	line, col := m.LineCol(offset)
	return Position{Line: line + 1, Column: col + 1}
}

// LineBounds gets the begin and end of a zero-based line, such that buf[begin:end]
// is the line without its newline
func (m *Map) LineBounds(line int) (begin, end int) {
	begin = m.LineOffsets[line]
	end = m.ByteCount
	if line+1 < len(m.LineOffsets) {
		end = m.LineOffsets[line+1] - 1
	}
	return
}

// LineCount is the number of newlines plus one
func (m *Map) LineCount() int {
	return len(m.LineOffsets)
}
