package cavemesh

// openList is an indexed binary min-heap keyed by total cost, ordered
// `(f, index)` so that ties break deterministically on node index
// (spec.md §5, "node expansion order is a total order on (f, index)").
//
// Unlike the teacher's detour.nodeQueue, which finds a node already in
// the heap with an O(n) linear scan (see detour/nodequeue.go's modify),
// this keeps each node's current heap slot in its scratch entry so
// "contains" and "decrease-key" are both O(log n) — the exact upgrade
// spec.md §9 calls for ("the reimplementation SHOULD use a proper
// indexed priority queue").
type openList struct {
	heap  []int32 // node indices, heap-ordered
	pool  *searchPool
	nodes nodeGeometry
}

// nodeGeometry abstracts over level-0 vs level-1 registries so openList
// can be shared between both A* invocations.
type nodeGeometry interface {
	total(i int32) float32 // f = g + h
}

func newOpenList(pool *searchPool, nodes nodeGeometry) *openList {
	return &openList{pool: pool, nodes: nodes}
}

func (q *openList) reset() {
	q.heap = q.heap[:0]
}

func (q *openList) empty() bool {
	return len(q.heap) == 0
}

func (q *openList) less(i, j int32) bool {
	ni, nj := q.heap[i], q.heap[j]
	fi, fj := q.nodes.total(ni), q.nodes.total(nj)
	if fi != fj {
		return fi < fj
	}
	return ni < nj
}

func (q *openList) swap(i, j int32) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.pool.get(q.heap[i]).slot = i
	q.pool.get(q.heap[j]).slot = j
}

func (q *openList) siftUp(i int32) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.less(i, parent) {
			break
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *openList) siftDown(i int32) {
	n := int32(len(q.heap))
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && q.less(left, smallest) {
			smallest = left
		}
		if right < n && q.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.swap(i, smallest)
		i = smallest
	}
}

// push inserts idx, which MUST NOT already be open.
func (q *openList) push(idx int32) {
	q.heap = append(q.heap, idx)
	slot := int32(len(q.heap) - 1)
	q.pool.get(idx).slot = slot
	q.pool.touch(idx)
	q.siftUp(slot)
}

// pop removes and returns the index with the smallest f.
func (q *openList) pop() int32 {
	top := q.heap[0]
	last := int32(len(q.heap) - 1)
	q.heap[0] = q.heap[last]
	q.pool.get(q.heap[0]).slot = 0
	q.heap = q.heap[:last]
	if len(q.heap) > 0 {
		q.siftDown(0)
	}
	q.pool.get(top).slot = -1
	return top
}

// fixup restores heap order for idx after its cost decreased. idx MUST
// already be open.
func (q *openList) fixup(idx int32) {
	slot := q.pool.get(idx).slot
	q.siftUp(slot)
	// a cost decrease can only move a node up, never down, so siftDown
	// is unnecessary here.
}
