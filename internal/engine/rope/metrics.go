package rope

import (
	"strings"
	"unicode/utf8"
)

// Summary holds aggregated metrics for a span of text.
// Summaries of adjacent spans combine with Add.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Runes is the number of Unicode code points.
	Runes int

	// Newlines is the number of '\n' bytes.
	Newlines int
}

// Add combines two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes:    s.Bytes + other.Bytes,
		Runes:    s.Runes + other.Runes,
		Newlines: s.Newlines + other.Newlines,
	}
}

// Summarize computes the metrics for a string.
func Summarize(s string) Summary {
	if len(s) == 0 {
		return Summary{}
	}
	return Summary{
		Bytes:    len(s),
		Runes:    utf8.RuneCountInString(s),
		Newlines: strings.Count(s, "\n"),
	}
}

// nthNewline returns the byte index of the nth '\n' in s (1-indexed),
// or -1 if s has fewer than n newlines.
func nthNewline(s string, n int) int {
	if n <= 0 {
		return -1
	}
	pos := 0
	for {
		i := strings.IndexByte(s[pos:], '\n')
		if i < 0 {
			return -1
		}
		n--
		if n == 0 {
			return pos + i
		}
		pos += i + 1
	}
}
