package rope

import "unicode/utf8"

// Chunk size bounds for leaf text.
const (
	// MinChunkSize is the smallest chunk produced when splitting (except the last).
	MinChunkSize = 128

	// MaxChunkSize is the largest chunk stored in a leaf.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred split point.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded, immutable piece of text stored in a leaf.
type Chunk struct {
	data    string
	summary Summary
}

// NewChunk creates a chunk and computes its summary.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: Summarize(s)}
}

// String returns the chunk text.
func (c Chunk) String() string { return c.data }

// Summary returns the chunk metrics.
func (c Chunk) Summary() Summary { return c.summary }

// Len returns the chunk length in bytes.
func (c Chunk) Len() int { return len(c.data) }

// splitIntoChunks cuts s into chunks no longer than MaxChunkSize.
// Cuts always land on a rune boundary.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := splitPoint(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:cut]))
		s = s[cut:]
	}
	return append(chunks, NewChunk(s))
}

// splitPoint picks a cut position near target. A newline within a quarter
// chunk of target wins; otherwise the nearest rune start at or before target.
func splitPoint(s string, target int) int {
	lo := target - MinChunkSize/4
	hi := target + MinChunkSize/4
	if hi > len(s) {
		hi = len(s)
	}

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	cut := target
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		// No rune start found behind target; invalid UTF-8, cut anywhere.
		return target
	}
	return cut
}
