package vfs

import "bytes"

// LineEnding is the line terminator style found in a file.
type LineEnding string

const (
	// LineEndingNone means the content has no terminators.
	LineEndingNone LineEnding = "none"

	// LineEndingLF is Unix-style (\n).
	LineEndingLF LineEnding = "lf"

	// LineEndingCRLF is Windows-style (\r\n).
	LineEndingCRLF LineEnding = "crlf"

	// LineEndingCR is classic Mac-style (\r).
	LineEndingCR LineEnding = "cr"

	// LineEndingMixed means more than one style occurs.
	LineEndingMixed LineEnding = "mixed"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DetectLineEnding reports which terminator style content uses. It is
// informational only: content is never rewritten.
func DetectLineEnding(content []byte) LineEnding {
	var lf, crlf, cr int
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}

	styles := 0
	for _, n := range []int{lf, crlf, cr} {
		if n > 0 {
			styles++
		}
	}

	switch {
	case styles == 0:
		return LineEndingNone
	case styles > 1:
		return LineEndingMixed
	case crlf > 0:
		return LineEndingCRLF
	case cr > 0:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// HasBOM reports whether content starts with a UTF-8 byte order mark.
// The mark stays part of the text; it is reported so the UI can show it.
func HasBOM(content []byte) bool {
	return bytes.HasPrefix(content, bomUTF8)
}
