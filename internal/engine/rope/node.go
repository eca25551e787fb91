package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the fan-out of internal nodes.
	MaxChildren = 8

	// MaxChunksPerLeaf is the number of chunks held by one leaf.
	MaxChunksPerLeaf = 4
)

// node is a rope tree node. Leaves (height 0) hold chunks; internal nodes
// hold children. Every node caches the summary of its subtree.
type node struct {
	height   uint8
	summary  Summary
	children []*node
	chunks   []Chunk
}

func newLeaf(chunks []Chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

// build assembles a balanced tree bottom-up from chunks.
func build(chunks []Chunk) *node {
	if len(chunks) == 0 {
		return newLeaf(nil)
	}

	level := make([]*node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		level = append(level, newLeaf(leafChunks))
	}

	for len(level) > 1 {
		parents := make([]*node, 0, len(level)/MaxChildren+1)
		for i := 0; i < len(level); i += MaxChildren {
			end := min(i+MaxChildren, len(level))
			parents = append(parents, newInternal(level[i:end:end]))
		}
		level = parents
	}
	return level[0]
}

// appendTo writes the subtree text to sb.
func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange writes the subtree text in [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if n.isLeaf() {
		offset := 0
		for _, c := range n.chunks {
			cEnd := offset + len(c.data)
			if cEnd > start && offset < end {
				sb.WriteString(c.data[max(start-offset, 0):min(end-offset, len(c.data))])
			}
			offset = cEnd
		}
		return
	}

	offset := 0
	for _, child := range n.children {
		cEnd := offset + child.summary.Bytes
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end-offset, child.summary.Bytes))
		}
		offset = cEnd
	}
}

// newlineOffset returns the byte offset of the kth '\n' in the subtree
// (1-indexed). k must be in [1, n.summary.Newlines].
func (n *node) newlineOffset(k int) int {
	offset := 0
	for !n.isLeaf() {
		next := n.children[len(n.children)-1]
		for _, child := range n.children {
			if k <= child.summary.Newlines {
				next = child
				break
			}
			k -= child.summary.Newlines
			offset += child.summary.Bytes
		}
		n = next
	}

	for _, c := range n.chunks {
		if k <= c.summary.Newlines {
			return offset + nthNewline(c.data, k)
		}
		k -= c.summary.Newlines
		offset += len(c.data)
	}
	return offset
}
