package cavemesh

import "github.com/arl/gogeo/f32/d3"

// spatialIndex is a static, array-backed k-d tree over level-0 node
// positions (spec.md §4.9). It answers nearest-neighbour and ball
// queries against continuous agent positions, for callers that do not
// already know a vertex index (NavMesh.FindClosestNode).
//
// None of the example repos in the retrieval pack vendor a k-d tree (the
// only candidate, gonum's kdtree package, appears solely as a go.mod
// manifest entry with no accompanying source to ground an
// implementation against), so this is written from scratch rather than
// adapted from a pack source — see DESIGN.md.
type spatialIndex struct {
	nodes []kdNode
	root  int32
	next  int32 // build-time allocation cursor
}

type kdNode struct {
	idx         int32 // level-0 registry index
	pos         d3.Vec3
	left, right int32 // -1 if absent
}

// buildSpatialIndex constructs a balanced k-d tree over reg by
// recursively partitioning on the median of alternating axes (x, y, z).
func buildSpatialIndex(reg []*Level0Node) *spatialIndex {
	positions := make([]d3.Vec3, len(reg))
	for i, n := range reg {
		positions[i] = n.Pos
	}
	return buildPositionIndex(positions)
}

// buildPositionIndex builds a k-d tree directly over a flat position
// array, independent of any registry shape. The zone partitioner's
// clearance-smoothing pass (spec.md §4.2) uses this directly, since it
// runs before level-0 nodes exist; buildSpatialIndex is a thin wrapper
// over the same routine once they do.
func buildPositionIndex(positions []d3.Vec3) *spatialIndex {
	n := len(positions)
	idx := make([]int32, n)
	for i := range idx {
		idx[i] = int32(i)
	}
	t := &spatialIndex{nodes: make([]kdNode, n)}
	t.root = t.build(positions, idx, 0)
	return t
}

func (t *spatialIndex) build(positions []d3.Vec3, idx []int32, depth int) int32 {
	if len(idx) == 0 {
		return -1
	}
	axis := depth % 3
	sortByAxis(positions, idx, axis)
	mid := len(idx) / 2
	nodeIdx := idx[mid]

	n := t.alloc(nodeIdx, positions[nodeIdx])
	t.nodes[n].left = t.build(positions, idx[:mid], depth+1)
	t.nodes[n].right = t.build(positions, idx[mid+1:], depth+1)
	return n
}

// alloc stores a node at the next free slot, sized in buildPositionIndex
// to exactly len(positions) so the cursor never overruns.
func (t *spatialIndex) alloc(regIdx int32, pos d3.Vec3) int32 {
	slot := t.next
	t.nodes[slot] = kdNode{idx: regIdx, pos: pos, left: -1, right: -1}
	t.next++
	return slot
}

func axisValue(pos d3.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return pos.X()
	case 1:
		return pos.Y()
	default:
		return pos.Z()
	}
}

// sortByAxis sorts idx (indices into positions) by the coordinate named by
// axis, using a simple insertion sort — k-d tree build sets are expected
// to be modest (one per navmesh build, not per query) so this trades
// asymptotic elegance for not needing to touch sort.Slice's reflection
// path on a hot structure.
func sortByAxis(positions []d3.Vec3, idx []int32, axis int) {
	for i := 1; i < len(idx); i++ {
		v := idx[i]
		vv := axisValue(positions[v], axis)
		j := i - 1
		for j >= 0 && axisValue(positions[idx[j]], axis) > vv {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// nearest returns the level-0 registry index of the node closest to pos.
func (t *spatialIndex) nearest(pos d3.Vec3) (int32, bool) {
	if t.root < 0 {
		return -1, false
	}
	best := int32(-1)
	bestDist := float32(-1)
	t.nearestRec(t.root, pos, 0, &best, &bestDist)
	return best, best >= 0
}

func (t *spatialIndex) nearestRec(n int32, pos d3.Vec3, depth int, best *int32, bestDist *float32) {
	if n < 0 {
		return
	}
	node := &t.nodes[n]
	d := node.pos.DistSqr(pos)
	if *best < 0 || d < *bestDist {
		*best = node.idx
		*bestDist = d
	}

	axis := depth % 3
	diff := axisValue(pos, axis) - axisValue(node.pos, axis)
	near, far := node.left, node.right
	if diff > 0 {
		near, far = node.right, node.left
	}
	t.nearestRec(near, pos, depth+1, best, bestDist)
	if diff*diff < *bestDist {
		t.nearestRec(far, pos, depth+1, best, bestDist)
	}
}

// ball returns every level-0 registry index within radius r of pos.
func (t *spatialIndex) ball(pos d3.Vec3, r float32) []int32 {
	var out []int32
	r2 := r * r
	t.ballRec(t.root, pos, r, r2, 0, &out)
	return out
}

func (t *spatialIndex) ballRec(n int32, pos d3.Vec3, r, r2 float32, depth int, out *[]int32) {
	if n < 0 {
		return
	}
	node := &t.nodes[n]
	if node.pos.DistSqr(pos) <= r2 {
		*out = append(*out, node.idx)
	}
	axis := depth % 3
	diff := axisValue(pos, axis) - axisValue(node.pos, axis)
	if diff <= r {
		t.ballRec(node.left, pos, r, r2, depth+1, out)
	}
	if -diff <= r {
		t.ballRec(node.right, pos, r, r2, depth+1, out)
	}
}
