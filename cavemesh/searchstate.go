package cavemesh

// searchFlags marks the per-node transient state during one A* run.
type searchFlags uint8

const (
	flagOpen searchFlags = 1 << iota
	flagClosed
)

// scratch is the per-node transient search state: best known cost, the
// heuristic, and a parent back-pointer. Per spec.md §9 ("per-node
// mutable search state carried on the graph node"), this lives in a
// dense array indexed by registry index, entirely separate from the
// persistent Level0Node/Level1Node, rather than being stashed as fields
// on the graph node the way the teacher's detour.Node does with
// Cost/Total/PIdx. This is what makes the graph genuinely read-only
// during queries (spec.md §5).
type scratch struct {
	g      float32
	h      float32
	parent int32 // -1 means no parent
	flags  searchFlags
	slot   int32 // position in the open-list heap, -1 if not open
}

// searchPool is a reusable scratch table sized to a node registry. The
// caller MUST reset it (via reset) before each A* invocation; failing to
// do so corrupts the next query, per spec.md §5's explicit warning about
// buffer reuse.
type searchPool struct {
	entries []scratch
	// touched records which indices were written this round, so reset
	// can clear in O(touched) rather than O(len(entries)) on large
	// graphs queried for small sub-paths.
	touched []int32
}

func newSearchPool(n int) *searchPool {
	return &searchPool{entries: make([]scratch, n)}
}

// reset clears every entry touched since the last reset.
func (p *searchPool) reset() {
	for _, i := range p.touched {
		p.entries[i] = scratch{parent: -1, slot: -1}
	}
	p.touched = p.touched[:0]
}

// growIfNeeded resizes the pool if the registry it scratches for has
// grown (used defensively; in practice registries are frozen after
// build).
func (p *searchPool) growIfNeeded(n int) {
	if n <= len(p.entries) {
		return
	}
	grown := make([]scratch, n)
	copy(grown, p.entries)
	p.entries = grown
}

// touch marks index i as written this round (so reset clears it) and
// returns its scratch entry. Safe to call more than once per round for
// the same index.
func (p *searchPool) touch(i int32) *scratch {
	p.touched = append(p.touched, i)
	return &p.entries[i]
}

func (p *searchPool) get(i int32) *scratch {
	return &p.entries[i]
}

func (p *searchPool) isClosed(i int32) bool {
	return p.entries[i].flags&flagClosed != 0
}

func (p *searchPool) isOpen(i int32) bool {
	return p.entries[i].flags&flagOpen != 0
}
