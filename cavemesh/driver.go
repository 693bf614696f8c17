package cavemesh

import "github.com/arl/gogeo/f32/d3"

// PathIterator is the stepwise surface of the Hierarchical Driver
// (spec.md §4.7): each call to Next runs exactly one per-zone A*
// invocation and suspends, matching §5's "suspends between per-zone
// segments so a caller can act on the partial path before the next
// segment is computed".
//
// Grounded on original_source/nav_mesh.py's PathSectionFinder, which
// drives the same level-1-then-per-zone-level-0 loop as a Python
// generator; Go has no generator syntax, so this is an explicit state
// machine instead — the idiomatic substitute the teacher itself reaches
// for (see crowd/pathqueue.go's request/ready state fields rather than
// a goroutine-backed pipeline).
type PathIterator struct {
	m    *NavMesh
	end  NodeRef
	opts QueryOptions

	err      error
	finished bool

	level1Remaining []int32 // remaining level-1 path, current zone node first
	cur             int32   // current level-0 node (start of the next segment)
	curZone         int32
	endZone         int32
	initialDir      d3.Vec3

	curHigh HighLevelPath
	curLow  LowLevelPath
	debug   *DebugInfo
}

func newPathIterator(m *NavMesh, start, end NodeRef, opts QueryOptions) *PathIterator {
	it := &PathIterator{m: m, end: end, opts: opts, initialDir: opts.InitialDir}

	if int(start.Index) < 0 || int(start.Index) >= len(m.g.level0) ||
		int(end.Index) < 0 || int(end.Index) >= len(m.g.level0) {
		it.err = invalidInput("node reference out of range")
		return it
	}

	it.cur = start.Index
	it.curZone = m.g.level0[start.Index].ZoneID
	it.endZone = m.g.level0[end.Index].ZoneID

	if it.curZone == it.endZone {
		return it
	}

	startZoneNode := m.g.zones[it.curZone].Node
	endZoneNode := m.g.zones[it.endZone].Node
	if startZoneNode < 0 || endZoneNode < 0 {
		it.err = invalidInput("zone %d or %d has no members", it.curZone, it.endZone)
		return it
	}

	// Level-1 clearances are zone floors and entrance minima, so MinHeight
	// keeps the high-level route off zones and entrances too low to pass.
	res, err := runAStar(level1Search{m.g.level1}, m.pool1, startZoneNode, []int32{endZoneNode}, searchOptions{MinHeight: opts.MinHeight})
	if err != nil {
		it.err = err
		return it
	}
	it.level1Remaining = res.Path
	return it
}

// Err returns the terminal error, if Next returned false because the
// driver failed rather than because the path was exhausted normally.
// Use errors.Is(it.Err(), PathUnreachable) to test for unreachability
// specifically.
func (it *PathIterator) Err() error {
	return it.err
}

// Next advances the iterator by one zone segment. It returns false once
// the destination has been reached (or a search failed); Segment then
// returns the most recently computed segment.
func (it *PathIterator) Next() bool {
	if it.finished || it.err != nil {
		return false
	}

	if it.curZone == it.endZone {
		return it.finalSegment()
	}
	return it.crossingSegment()
}

// finalSegment runs the last level-0 A* into the destination zone and
// terminates the iterator.
func (it *PathIterator) finalSegment() bool {
	target := it.end.Index
	res, err := runAStar(level0Search{it.m.g.level0}, it.m.pool0, it.cur, []int32{target}, it.levelZeroOpts())
	if err != nil {
		it.err = err
		it.finished = true
		return false
	}

	low := pathNodesFromLevel0(it.m.g.level0, res.Path)
	if it.opts.HasEndPos {
		low = refineEndPosition(low, it.opts.EndPos)
	}
	it.debug = res.Debug

	it.curHigh = nil
	if len(it.level1Remaining) > 0 {
		it.curHigh = pathNodesFromLevel1(it.m.g.level1, it.level1Remaining)
		it.level1Remaining = nil
	}
	it.curLow = low
	it.finished = true
	return true
}

// crossingSegment runs one level-0 A* from cur to the current entrance's
// members in the current zone, then advances cur into the next zone
// across that entrance.
func (it *PathIterator) crossingSegment() bool {
	if len(it.level1Remaining) < 3 {
		it.err = invariantViolation("level-1 path too short to cross a zone boundary")
		it.finished = true
		return false
	}
	entranceLevel1 := it.level1Remaining[1]
	nextZoneLevel1 := it.level1Remaining[2]

	l1 := it.m.g.level1[entranceLevel1]
	entrance := it.m.g.entrances[l1.EntranceIdx]

	var targets []int32
	for _, mIdx := range entrance.Members {
		if it.m.g.level0[mIdx].ZoneID == it.curZone {
			targets = append(targets, mIdx)
		}
	}
	if len(targets) == 0 {
		it.err = invariantViolation("entrance %d has no members in zone %d", entrance.Index, it.curZone)
		it.finished = true
		return false
	}

	res, err := runAStar(level0Search{it.m.g.level0}, it.m.pool0, it.cur, targets, it.levelZeroOpts())
	if err != nil {
		it.err = err
		it.finished = true
		return false
	}

	lastIdx := res.Path[len(res.Path)-1]
	nextZoneID := it.m.g.level1[nextZoneLevel1].ZoneID

	nextNode, ok := nearestCrossNeighborInZone(it.m.g.level0, lastIdx, entrance, nextZoneID)
	if !ok {
		it.err = invariantViolation("entrance %d has no crossing edge from zone %d to %d", entrance.Index, it.curZone, nextZoneID)
		it.finished = true
		return false
	}

	it.curHigh = pathNodesFromLevel1(it.m.g.level1, it.level1Remaining[:2])
	it.curLow = pathNodesFromLevel0(it.m.g.level0, res.Path)
	it.debug = res.Debug

	exitPos := it.m.g.level0[lastIdx].Pos
	entryPos := it.m.g.level0[nextNode].Pos
	it.initialDir = entryPos.Sub(exitPos)

	it.cur = nextNode
	it.curZone = nextZoneID
	it.level1Remaining = it.level1Remaining[2:]
	return true
}

func (it *PathIterator) levelZeroOpts() searchOptions {
	o := it.opts.toSearchOptions()
	o.InitialDir = it.initialDir
	return o
}

// Segment returns the high-level suffix and low-level segment most
// recently produced by Next.
func (it *PathIterator) Segment() (HighLevelPath, LowLevelPath) {
	return it.curHigh, it.curLow
}

// DebugInfo returns the open/closed-set snapshot from the most recent
// segment's A* call, or nil if QueryOptions.ReturnDebugInfo was false.
func (it *PathIterator) DebugInfo() *DebugInfo {
	return it.debug
}

// nearestCrossNeighborInZone finds, among lastIdx's cross-zone
// neighbours that are members of entrance and belong to zone targetZone,
// the one nearest lastIdx (Euclidean) — spec.md §4.7's "advance the
// current start by selecting the nearest such neighbour".
func nearestCrossNeighborInZone(reg []*Level0Node, lastIdx int32, entrance *Entrance, targetZone int32) (int32, bool) {
	inEntrance := make(map[int32]bool, len(entrance.Members))
	for _, m := range entrance.Members {
		inEntrance[m] = true
	}

	best := int32(-1)
	bestDist := float32(-1)
	last := reg[lastIdx]
	for _, n := range last.CrossZone {
		if !inEntrance[n] || reg[n].ZoneID != targetZone {
			continue
		}
		d := last.distTo(n)
		if best < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best >= 0
}

func pathNodesFromLevel0(reg []*Level0Node, path []int32) LowLevelPath {
	out := make(LowLevelPath, len(path))
	for i, idx := range path {
		out[i] = pathNodeFromLevel0(reg[idx])
	}
	return out
}

func pathNodesFromLevel1(reg []*Level1Node, path []int32) HighLevelPath {
	out := make(HighLevelPath, len(path))
	for i, idx := range path {
		out[i] = pathNodeFromLevel1(reg[idx])
	}
	return out
}
