package rope

// ChunkIterator walks the chunks of a rope in order.
type ChunkIterator struct {
	stack  []iterFrame
	chunk  Chunk
	offset int
	next   int
}

type iterFrame struct {
	node *node
	idx  int
}

// Chunks returns an iterator over the rope's chunks.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]iterFrame, 0, 8)}
	if r.root != nil {
		it.stack = append(it.stack, iterFrame{node: r.root})
	}
	return it
}

// Next advances to the next non-empty chunk and reports whether one exists.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.isLeaf() {
			if top.idx < len(top.node.chunks) {
				c := top.node.chunks[top.idx]
				top.idx++
				if c.Len() == 0 {
					continue
				}
				it.chunk = c
				it.offset = it.next
				it.next += c.Len()
				return true
			}
		} else if top.idx < len(top.node.children) {
			child := top.node.children[top.idx]
			top.idx++
			it.stack = append(it.stack, iterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.offset
}
