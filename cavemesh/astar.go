package cavemesh

import (
	"github.com/arl/gogeo/f32/d3"
)

// searchLevel abstracts over the level-0 and level-1 registries so a
// single A* core (spec.md §4.6) serves both the per-zone and the
// cross-zone searches the hierarchical driver (§4.7) needs.
type searchLevel interface {
	size() int
	pos(i int32) d3.Vec3
	clearance(i int32) float32
	neighbors(i int32) []int32
	distTo(i, j int32) float32
}

type level0Search struct{ reg []*Level0Node }

func (s level0Search) size() int                     { return len(s.reg) }
func (s level0Search) pos(i int32) d3.Vec3           { return s.reg[i].Pos }
func (s level0Search) clearance(i int32) float32     { return s.reg[i].Clearance }
func (s level0Search) distTo(i, j int32) float32     { return s.reg[i].distTo(j) }
func (s level0Search) neighbors(i int32) []int32 {
	return s.reg[i].IntraZone
}

type level1Search struct{ reg []*Level1Node }

func (s level1Search) size() int                 { return len(s.reg) }
func (s level1Search) pos(i int32) d3.Vec3       { return s.reg[i].Pos }
func (s level1Search) clearance(i int32) float32 { return s.reg[i].Clearance }
func (s level1Search) distTo(i, j int32) float32 { return s.reg[i].distTo(j) }
func (s level1Search) neighbors(i int32) []int32 { return s.reg[i].Neighbors }

// searchOptions mirrors spec.md §4.6's option table.
type searchOptions struct {
	Avoid            map[int32]bool
	MinHeight        float32
	InitialDir       d3.Vec3
	FinalTargetNode  int32
	HasFinalTarget   bool
	ReturnDebugInfo  bool
}

// DebugInfo is the optional `(open, closed, end_nodes)` snapshot spec.md
// §4.6 allows a caller to request.
type DebugInfo struct {
	Open     []int32
	Closed   []int32
	EndNodes []int32
}

// searchResult is what the A* core hands back to its caller (driver.go,
// which the public NavMesh facade goes through); Path holds registry
// indices in level order, start to goal inclusive.
type searchResult struct {
	Path  []int32
	Debug *DebugInfo
}

// geometryView adapts a searchPool to the openList's nodeGeometry
// interface.
type geometryView struct {
	pool *searchPool
}

func (g geometryView) total(i int32) float32 {
	e := g.pool.get(i)
	return e.g + e.h
}

// runAStar implements spec.md §4.6's main loop over lvl, from start to
// any of endNodes. It is pure per-level: neighbours are resolved
// entirely through lvl.neighbors, so it never crosses zone or level
// boundaries on its own — hierarchical stitching across boundaries is
// driver.go's job (spec.md §4.7).
//
// Grounded on detour/query.go's FindPath (pop-best / goal-check / expand
// loop shape), restructured per spec.md §9 to keep g/h/parent off the
// graph node (searchPool) and to use an indexed heap (openlist.go)
// instead of detour.nodeQueue's O(n) modify scan.
func runAStar(lvl searchLevel, pool *searchPool, start int32, endNodes []int32, opts searchOptions) (*searchResult, error) {
	pool.reset()
	pool.growIfNeeded(lvl.size())

	isEnd := make(map[int32]bool, len(endNodes))
	for _, e := range endNodes {
		isEnd[e] = true
	}

	heuristicTargets := endNodes
	if opts.HasFinalTarget {
		heuristicTargets = []int32{opts.FinalTargetNode}
	}
	h := func(n int32) float32 {
		best := float32(-1)
		np := lvl.pos(n)
		for _, t := range heuristicTargets {
			d := np.Dist(lvl.pos(t))
			if best < 0 || d < best {
				best = d
			}
		}
		if best < 0 {
			return 0
		}
		return best
	}

	open := newOpenList(pool, geometryView{pool: pool})

	for idx := range opts.Avoid {
		e := pool.touch(idx)
		e.flags |= flagClosed
	}

	startEntry := pool.touch(start)
	startEntry.g = 0
	startEntry.h = h(start)
	startEntry.parent = -1
	startEntry.flags |= flagOpen
	open.push(start)

	var found int32 = -1

loop:
	for !open.empty() {
		c := open.pop()
		pool.get(c).flags &^= flagOpen
		pool.get(c).flags |= flagClosed

		if isEnd[c] {
			found = c
			break loop
		}

		cEntry := pool.get(c)
		incoming := opts.InitialDir
		if cEntry.parent >= 0 {
			incoming = lvl.pos(c).Sub(lvl.pos(cEntry.parent))
			incoming.Normalize()
		}

		for _, m := range lvl.neighbors(c) {
			if pool.isClosed(m) {
				continue
			}
			if lvl.clearance(m) < opts.MinHeight {
				continue
			}

			vOut := lvl.pos(m).Sub(lvl.pos(c))
			penalty := angularPenalty(incoming, vOut)
			newG := cEntry.g + lvl.distTo(c, m) + penalty

			if !pool.isOpen(m) {
				e := pool.touch(m)
				e.g = newG
				e.h = h(m)
				e.parent = c
				e.flags |= flagOpen
				open.push(m)
			} else if mEntry := pool.get(m); mEntry.g > newG {
				mEntry.g = newG
				mEntry.parent = c
				open.fixup(m)
			}
		}
	}

	if found < 0 {
		if opts.ReturnDebugInfo {
			return &searchResult{Debug: snapshotDebug(pool, open, endNodes)}, unreachable("")
		}
		return nil, unreachable("")
	}

	path := reconstructPath(pool, found)
	res := &searchResult{Path: path}
	if opts.ReturnDebugInfo {
		res.Debug = snapshotDebug(pool, open, endNodes)
	}
	return res, nil
}

func reconstructPath(pool *searchPool, goal int32) []int32 {
	var rev []int32
	for n := goal; n >= 0; n = pool.get(n).parent {
		rev = append(rev, n)
	}
	path := make([]int32, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

func snapshotDebug(pool *searchPool, open *openList, endNodes []int32) *DebugInfo {
	closed := make([]int32, 0, len(pool.touched))
	for _, i := range pool.touched {
		if pool.isClosed(i) {
			closed = append(closed, i)
		}
	}
	openIdx := make([]int32, len(open.heap))
	copy(openIdx, open.heap)
	end := make([]int32, len(endNodes))
	copy(end, endNodes)
	return &DebugInfo{Open: openIdx, Closed: closed, EndNodes: end}
}
