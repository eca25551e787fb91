package gutter

import (
	"fmt"
	"strings"
)

// Mode defines how line numbers are displayed.
type Mode uint8

const (
	// ModeAbsolute shows 1, 2, 3, ...
	ModeAbsolute Mode = iota

	// ModeRelative shows the distance from the cursor line (0 on it).
	ModeRelative

	// ModeHybrid shows the absolute number on the cursor line and
	// relative numbers elsewhere.
	ModeHybrid
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRelative:
		return "relative"
	case ModeHybrid:
		return "hybrid"
	default:
		return "absolute"
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "absolute":
		return ModeAbsolute, nil
	case "relative":
		return ModeRelative, nil
	case "hybrid":
		return ModeHybrid, nil
	default:
		return ModeAbsolute, fmt.Errorf("unknown line number mode %q", s)
	}
}

// PadLeft pads s with spaces on the left to width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// CalculateWidth returns the columns needed to print lineCount, but at
// least minWidth.
func CalculateWidth(lineCount, minWidth int) int {
	return max(countDigits(lineCount), minWidth)
}

func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
