// Package gutter renders the line-number column to the left of the text.
//
// The gutter consumes the document's line index (the identifiers
// 0..N-1) and turns each identifier into a right-aligned label. In
// absolute mode identifier i is labeled i+1.
package gutter

import "strconv"

// Config holds gutter configuration.
type Config struct {
	// MinWidth is the minimum number of digit columns.
	MinWidth int

	// Mode selects absolute, relative or hybrid numbering.
	Mode Mode
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		MinWidth: 3,
		Mode:     ModeAbsolute,
	}
}

// Gutter holds the line index being displayed and formats its labels.
type Gutter struct {
	config      Config
	lines       []int
	currentLine int
}

// New creates a gutter with the given configuration.
func New(config Config) *Gutter {
	if config.MinWidth < 1 {
		config.MinWidth = 1
	}
	return &Gutter{config: config}
}

// SetLines replaces the displayed line index. The gutter keeps the slice;
// callers hand over a copy they no longer modify.
func (g *Gutter) SetLines(lines []int) {
	g.lines = lines
}

// SetCurrentLine sets the cursor line used by relative modes.
func (g *Gutter) SetCurrentLine(line int) {
	g.currentLine = line
}

// LineCount returns the number of lines in the displayed index.
func (g *Gutter) LineCount() int {
	return len(g.lines)
}

// DigitWidth returns the number of columns used by labels.
func (g *Gutter) DigitWidth() int {
	return CalculateWidth(len(g.lines), g.config.MinWidth)
}

// Width returns the full gutter width: the labels plus one separator column.
func (g *Gutter) Width() int {
	return g.DigitWidth() + 1
}

// Label returns the padded label for row, or blank padding when row is
// past the end of the index.
func (g *Gutter) Label(row int) string {
	width := g.DigitWidth()
	if row < 0 || row >= len(g.lines) {
		return PadLeft("", width)
	}
	return PadLeft(strconv.Itoa(g.number(g.lines[row])), width)
}

// IsCurrent reports whether row holds the cursor line.
func (g *Gutter) IsCurrent(row int) bool {
	return row >= 0 && row < len(g.lines) && g.lines[row] == g.currentLine
}

// Labels returns one label per entry of the line index.
func (g *Gutter) Labels() []string {
	out := make([]string, len(g.lines))
	for i := range g.lines {
		out[i] = g.Label(i)
	}
	return out
}

// number returns the number displayed for a line identifier.
func (g *Gutter) number(line int) int {
	switch g.config.Mode {
	case ModeRelative:
		return absDiff(line, g.currentLine)
	case ModeHybrid:
		if line == g.currentLine {
			return line + 1
		}
		return absDiff(line, g.currentLine)
	default:
		return line + 1
	}
}
